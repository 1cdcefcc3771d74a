package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/domain/projeto"
)

// ProjetoService defines projeto operations needed by MCP.
type ProjetoService interface {
	List(ctx context.Context) projeto.Result[[]projeto.Projeto]
	ListManagers(ctx context.Context) projeto.Result[[]projeto.Usuario]
	GetByID(ctx context.Context, id string) projeto.Result[*projeto.Projeto]
	Create(ctx context.Context, p projeto.Projeto) projeto.Result[*projeto.Projeto]
	Update(ctx context.Context, p projeto.Projeto, subtype projeto.Subtype) projeto.Result[*projeto.Projeto]
	Remove(ctx context.Context, id string) projeto.Result[*projeto.DeleteResponse]
}

// MessageService defines notification operations needed by MCP.
type MessageService interface {
	Pending(ctx context.Context) ([]message.Message, error)
	Dismiss(ctx context.Context, id string) error
	DismissAll(ctx context.Context) (int64, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projetos ProjetoService
	Messages MessageService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

const serverInstructions = `Tools for the projeto REST backend.
Dates are exchanged as dd/mm/yyyy. Every write raises a notification; read
pending ones with list_messages and clear them with dismiss_message.`

// NewServer creates and configures an MCP server with all tools and call logging.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projeto",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	server.AddReceivingMiddleware(callLoggingMiddleware(cfg.Logger))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
