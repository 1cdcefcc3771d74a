package mcp

import (
	"time"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/domain/projeto"
)

type GetProjetoParams struct {
	ID string `json:"id" jsonschema:"Projeto identifier"`
}

// CreateProjetoParams mirrors the create form. Dates are dd/mm/yyyy.
type CreateProjetoParams struct {
	Name          string `json:"name" jsonschema:"Projeto name"`
	Description   string `json:"description,omitempty" jsonschema:"Free text description"`
	Manager       string `json:"manager,omitempty" jsonschema:"User id of the manager (see list_gerentes)"`
	DateStart     string `json:"date_start,omitempty" jsonschema:"Start date as dd/mm/yyyy"`
	DatePrevision string `json:"date_prevision,omitempty" jsonschema:"Planned end date as dd/mm/yyyy"`
	DateEnd       string `json:"date_end,omitempty" jsonschema:"End date as dd/mm/yyyy"`
	Risk          string `json:"risk,omitempty" jsonschema:"Risk level: baixo, medio or alto"`
	Status        string `json:"status,omitempty" jsonschema:"Status: planejado, andamento, concluido or cancelado"`
}

type UpdateProjetoParams struct {
	ID            string          `json:"id" jsonschema:"Projeto identifier"`
	Subtype       string          `json:"subtype,omitempty" jsonschema:"Resource to update: projeto (default), equipe, indicador or indicador-fase"`
	Name          string          `json:"name" jsonschema:"Projeto name"`
	Description   string          `json:"description,omitempty" jsonschema:"Free text description"`
	Manager       string          `json:"manager,omitempty" jsonschema:"User id of the manager"`
	Team          []string        `json:"team,omitempty" jsonschema:"User ids of the team"`
	DateStart     string          `json:"date_start,omitempty" jsonschema:"Start date as dd/mm/yyyy"`
	DatePrevision string          `json:"date_prevision,omitempty" jsonschema:"Planned end date as dd/mm/yyyy"`
	DateEnd       string          `json:"date_end,omitempty" jsonschema:"End date as dd/mm/yyyy"`
	Risk          string          `json:"risk,omitempty" jsonschema:"Risk level"`
	Status        string          `json:"status,omitempty" jsonschema:"Status"`
	Indicators    []IndicatorView `json:"indicators,omitempty" jsonschema:"Indicators with their phases; send them all, the backend replaces the list"`
}

type DeleteProjetoParams struct {
	ID string `json:"id" jsonschema:"Projeto identifier"`
}

type ListMessagesParams struct{}

type DismissMessageParams struct {
	ID  string `json:"id,omitempty" jsonschema:"Message identifier; omit with all=true"`
	All bool   `json:"all,omitempty" jsonschema:"Dismiss every pending message"`
}

// ProjetoView is the tool representation of a projeto; dates are dd/mm/yyyy.
type ProjetoView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Manager       string          `json:"manager,omitempty"`
	Team          []string        `json:"team,omitempty"`
	DateStart     string          `json:"date_start,omitempty"`
	DatePrevision string          `json:"date_prevision,omitempty"`
	DateEnd       string          `json:"date_end,omitempty"`
	Risk          string          `json:"risk,omitempty"`
	Status        string          `json:"status,omitempty"`
	Indicators    []IndicatorView `json:"indicators,omitempty"`
}

// IndicatorView carries an indicator and its phases; deadlines are dd/mm/yyyy.
type IndicatorView struct {
	ID     string      `json:"id,omitempty" jsonschema:"Indicator identifier, kept on update"`
	Name   string      `json:"name" jsonschema:"Indicator name"`
	Target float64     `json:"target,omitempty" jsonschema:"Target value"`
	Phases []PhaseView `json:"phases,omitempty" jsonschema:"Phases of the indicator"`
}

type PhaseView struct {
	ID       string  `json:"id,omitempty" jsonschema:"Phase identifier, kept on update"`
	Name     string  `json:"name" jsonschema:"Phase name"`
	Value    float64 `json:"value,omitempty" jsonschema:"Value reached in this phase"`
	Deadline string  `json:"deadline,omitempty" jsonschema:"Deadline as dd/mm/yyyy"`
}

type ManagerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type MessageView struct {
	ID        string `json:"id"`
	Level     string `json:"level"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type ListProjetosResult struct {
	Projetos []ProjetoView `json:"projetos"`
}

type ListGerentesResult struct {
	Gerentes []ManagerView `json:"gerentes"`
}

type ProjetoResult struct {
	Projeto ProjetoView `json:"projeto"`
	Message string      `json:"message,omitempty"`
}

type DeleteProjetoResult struct {
	Message string `json:"message"`
}

type ListMessagesResult struct {
	Messages []MessageView `json:"messages"`
}

type DismissMessageResult struct {
	Dismissed int64 `json:"dismissed"`
}

func toProjetoView(p projeto.Projeto) ProjetoView {
	return ProjetoView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Manager:       p.Manager,
		Team:          p.Team,
		DateStart:     projeto.FormatDisplayDate(p.DateStart),
		DatePrevision: projeto.FormatDisplayDate(p.DatePrevision),
		DateEnd:       projeto.FormatDisplayDate(p.DateEnd),
		Risk:          string(p.Risk),
		Status:        string(p.Status),
		Indicators:    toIndicatorViews(p.Indicators),
	}
}

func toIndicatorViews(in []projeto.Indicator) []IndicatorView {
	if len(in) == 0 {
		return nil
	}
	out := make([]IndicatorView, 0, len(in))
	for _, ind := range in {
		v := IndicatorView{ID: ind.ID, Name: ind.Name, Target: ind.Target}
		for _, ph := range ind.Phases {
			v.Phases = append(v.Phases, PhaseView{
				ID:       ph.ID,
				Name:     ph.Name,
				Value:    ph.Value,
				Deadline: projeto.FormatDisplayDate(ph.Deadline),
			})
		}
		out = append(out, v)
	}
	return out
}

func toMessageView(m message.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		Level:     string(m.Level),
		Text:      m.Text,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
