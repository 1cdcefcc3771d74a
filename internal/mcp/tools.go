package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
)

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	registerDocResources(server)

	// Projetos
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projetos",
		Description: "List every projeto known to the backend",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, ListProjetosResult, error) {
		res := svc.Projetos.List(ctx)
		if !res.OK() {
			return nil, ListProjetosResult{}, backendError(failureText(projeto.OpList, res.Message, res.Err))
		}
		out := ListProjetosResult{Projetos: make([]ProjetoView, 0, len(res.Value))}
		for _, p := range res.Value {
			out.Projetos = append(out.Projetos, toProjetoView(p))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_gerentes",
		Description: "List users that can manage a projeto",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, ListGerentesResult, error) {
		res := svc.Projetos.ListManagers(ctx)
		if !res.OK() {
			return nil, ListGerentesResult{}, backendError(failureText(projeto.OpListManagers, res.Message, res.Err))
		}
		out := ListGerentesResult{Gerentes: make([]ManagerView, 0, len(res.Value))}
		for _, u := range res.Value {
			out.Gerentes = append(out.Gerentes, ManagerView{ID: u.ID, Name: u.Name, Email: u.Email})
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_projeto",
		Description: "Fetch one projeto by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjetoParams) (*sdkmcp.CallToolResult, ProjetoResult, error) {
		if err := requireID(in.ID); err != nil {
			return nil, ProjetoResult{}, toolError(err)
		}
		res := svc.Projetos.GetByID(ctx, in.ID)
		if !res.OK() || res.Value == nil {
			return nil, ProjetoResult{}, backendError(failureText(projeto.OpGet, res.Message, res.Err))
		}
		return nil, ProjetoResult{Projeto: toProjetoView(*res.Value)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_projeto",
		Description: "Create a projeto the way the create form does; dates are dd/mm/yyyy",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjetoParams) (*sdkmcp.CallToolResult, ProjetoResult, error) {
		ctrl := form.NewController(svc.Projetos, nil, logger)
		ctrl.Replace(form.Draft{
			Name:          in.Name,
			Description:   in.Description,
			Manager:       in.Manager,
			DateStart:     in.DateStart,
			DatePrevision: in.DatePrevision,
			DateEnd:       in.DateEnd,
			Risk:          in.Risk,
			Status:        in.Status,
		})

		saved := ctrl.OnSave(ctx)
		switch saved.Status {
		case form.SaveInvalid:
			return nil, ProjetoResult{}, toolError(saved.Err)
		case form.SaveFailed:
			return nil, ProjetoResult{}, backendError(failureText(projeto.OpCreate, saved.Message, saved.Err))
		}
		var view ProjetoView
		if saved.Projeto != nil {
			view = toProjetoView(*saved.Projeto)
		}
		return nil, ProjetoResult{Projeto: view, Message: saved.Message}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_projeto",
		Description: "Replace a projeto or one of its sub-resources (equipe, indicador, indicador-fase)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjetoParams) (*sdkmcp.CallToolResult, ProjetoResult, error) {
		if err := requireID(in.ID); err != nil {
			return nil, ProjetoResult{}, toolError(err)
		}
		p, err := projetoFromUpdate(in)
		if err != nil {
			return nil, ProjetoResult{}, toolError(err)
		}
		res := svc.Projetos.Update(ctx, p, projeto.Subtype(in.Subtype))
		if !res.OK() {
			return nil, ProjetoResult{}, backendError(failureText(projeto.OpUpdate, res.Message, res.Err))
		}
		var view ProjetoView
		if res.Value != nil {
			view = toProjetoView(*res.Value)
		}
		return nil, ProjetoResult{Projeto: view, Message: res.Message}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_projeto",
		Description: "Delete a projeto by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteProjetoParams) (*sdkmcp.CallToolResult, DeleteProjetoResult, error) {
		if err := requireID(in.ID); err != nil {
			return nil, DeleteProjetoResult{}, toolError(err)
		}
		res := svc.Projetos.Remove(ctx, in.ID)
		if !res.OK() {
			return nil, DeleteProjetoResult{}, backendError(failureText(projeto.OpDelete, res.Message, res.Err))
		}
		return nil, DeleteProjetoResult{Message: res.Message}, nil
	})

	// Notifications
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_messages",
		Description: "List notifications that have not been dismissed yet",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListMessagesParams) (*sdkmcp.CallToolResult, ListMessagesResult, error) {
		pending, err := svc.Messages.Pending(ctx)
		if err != nil {
			return nil, ListMessagesResult{}, toolError(err)
		}
		out := ListMessagesResult{Messages: make([]MessageView, 0, len(pending))}
		for _, m := range pending {
			out.Messages = append(out.Messages, toMessageView(m))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dismiss_message",
		Description: "Dismiss one notification, or all of them with all=true",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DismissMessageParams) (*sdkmcp.CallToolResult, DismissMessageResult, error) {
		if in.All {
			n, err := svc.Messages.DismissAll(ctx)
			if err != nil {
				return nil, DismissMessageResult{}, toolError(err)
			}
			return nil, DismissMessageResult{Dismissed: n}, nil
		}
		if err := svc.Messages.Dismiss(ctx, in.ID); err != nil {
			return nil, DismissMessageResult{}, toolError(err)
		}
		return nil, DismissMessageResult{Dismissed: 1}, nil
	})
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required: %w", projeto.ErrInvalidInput)
	}
	return nil
}

// failureText is the text a failed call reports. Silent listings carry no
// notification text, so it is derived from the error instead.
func failureText(op, msg string, err error) string {
	if msg != "" {
		return msg
	}
	return projeto.ErrorText(op, err)
}

func projetoFromUpdate(in UpdateProjetoParams) (projeto.Projeto, error) {
	p := projeto.Projeto{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Manager:     in.Manager,
		Team:        in.Team,
		Risk:        projeto.Risk(in.Risk),
		Status:      projeto.Status(in.Status),
	}
	indicators, err := indicatorsFromViews(in.Indicators)
	if err != nil {
		return projeto.Projeto{}, err
	}
	p.Indicators = indicators

	dates := []struct {
		name string
		raw  string
		dst  **time.Time
	}{
		{"date_start", in.DateStart, &p.DateStart},
		{"date_prevision", in.DatePrevision, &p.DatePrevision},
		{"date_end", in.DateEnd, &p.DateEnd},
	}
	for _, d := range dates {
		parsed, err := projeto.ParseDate(d.raw)
		if err != nil {
			return projeto.Projeto{}, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return p, nil
}

func indicatorsFromViews(views []IndicatorView) ([]projeto.Indicator, error) {
	if len(views) == 0 {
		return nil, nil
	}
	out := make([]projeto.Indicator, 0, len(views))
	for i, v := range views {
		ind := projeto.Indicator{ID: v.ID, Name: v.Name, Target: v.Target}
		for j, ph := range v.Phases {
			deadline, err := projeto.ParseDate(ph.Deadline)
			if err != nil {
				return nil, fmt.Errorf("indicators[%d].phases[%d].deadline: %w", i, j, err)
			}
			ind.Phases = append(ind.Phases, projeto.Phase{ID: ph.ID, Name: ph.Name, Value: ph.Value, Deadline: deadline})
		}
		out = append(out, ind)
	}
	return out, nil
}
