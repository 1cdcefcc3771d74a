package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     func() string
}

var docResources = []docResource{
	{
		URI:         "projeto://docs/form",
		Name:        "form",
		Title:       "Create form",
		Description: "Fields accepted by create_projeto and how they are converted",
		Content:     formDoc,
	},
	{
		URI:         "projeto://docs/update",
		Name:        "update",
		Title:       "Update subtypes",
		Description: "Endpoints targeted by update_projeto",
		Content:     updateDoc,
	},
}

func formDoc() string {
	var b strings.Builder
	b.WriteString("# Create form\n\n")
	b.WriteString("| field | label | kind | notes |\n|---|---|---|---|\n")
	for _, f := range form.Fields() {
		notes := f.Help
		if len(f.Options) > 0 {
			notes = strings.Join(f.Options, ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Field, f.Label, f.Kind, notes)
	}
	b.WriteString(`
Blank dates are sent as absent. A date that is not dd/mm/yyyy is rejected
before anything reaches the backend. Risk and status are passed through as
given.
`)
	return b.String()
}

func updateDoc() string {
	var b strings.Builder
	b.WriteString("# Update subtypes\n\n")
	for _, s := range projeto.Subtypes() {
		name := string(s)
		if name == "" {
			name = "(default)"
		}
		fmt.Fprintf(&b, "- %s: PUT %s/{id}\n", name, s.Path())
	}
	b.WriteString(`
Unknown subtypes go to the default endpoint. Every update is a full
replace: read the projeto with get_projeto first and send back every field,
indicators and their phases included, or they are cleared. Phase deadlines
are dd/mm/yyyy.
`)
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		content := doc.Content()
		uri := doc.URI

		server.AddResource(&sdkmcp.Resource{
			URI:         uri,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			target := uri
			if req != nil && req.Params != nil && req.Params.URI != "" {
				target = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      target,
					MIMEType: "text/markdown",
					Text:     content,
				}},
			}, nil
		})
	}
}
