package form

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/projeto/internal/domain/projeto"
)

// Creator submits a new projeto.
type Creator interface {
	Create(ctx context.Context, p projeto.Projeto) projeto.Result[*projeto.Projeto]
}

// Navigator returns the operator to the previous screen.
type Navigator interface {
	Back()
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

// Back calls f.
func (f NavigatorFunc) Back() { f() }

// SaveStatus tags how OnSave ended.
type SaveStatus string

const (
	// SaveCreated means the backend stored the record.
	SaveCreated SaveStatus = "created"
	// SaveFailed means the service resolved to its fallback.
	SaveFailed SaveStatus = "failed"
	// SaveInvalid means the draft could not be converted; nothing was sent.
	SaveInvalid SaveStatus = "invalid"
)

// SaveResult is returned by OnSave.
type SaveResult struct {
	Status  SaveStatus
	Projeto *projeto.Projeto
	// Message is the notification text of the service call.
	Message string
	Err     error
}

// Controller owns the draft of the create screen.
type Controller struct {
	creator   Creator
	navigator Navigator
	logger    *slog.Logger

	draft *Draft
}

// NewController creates a controller with an empty draft. navigator may be
// nil when the caller handles navigation itself.
func NewController(creator Creator, navigator Navigator, logger *slog.Logger) *Controller {
	return &Controller{
		creator:   creator,
		navigator: navigator,
		logger:    logger,
		draft:     &Draft{},
	}
}

// Draft returns the current draft.
func (c *Controller) Draft() Draft {
	return *c.draft
}

// Replace swaps the current draft for d.
func (c *Controller) Replace(d Draft) {
	c.draft = &d
}

// Edit sets one field, replacing the current draft with the edited copy.
func (c *Controller) Edit(field Field, value string) error {
	next, err := c.draft.With(field, value)
	if err != nil {
		return err
	}
	c.draft = &next
	return nil
}

// Validate converts the draft into a projeto. Blank dates stay absent;
// risk and status are copied verbatim. The only rejection is a date that
// is not dd/mm/yyyy, reported with projeto.ErrMalformedDate.
func (c *Controller) Validate() (projeto.Projeto, error) {
	d := *c.draft

	p := projeto.Projeto{
		Name:        d.Name,
		Description: d.Description,
		Manager:     d.Manager,
		Risk:        projeto.Risk(d.Risk),
		Status:      projeto.Status(d.Status),
	}

	dates := []struct {
		field Field
		dst   **time.Time
	}{
		{FieldDateStart, &p.DateStart},
		{FieldDateEnd, &p.DateEnd},
		{FieldDatePrevision, &p.DatePrevision},
	}
	for _, dt := range dates {
		parsed, err := projeto.ParseDate(d.Value(dt.field))
		if err != nil {
			return projeto.Projeto{}, fmt.Errorf("%s: %w", dt.field, err)
		}
		*dt.dst = parsed
	}

	if c.logger != nil {
		c.logger.Debug("draft validated", "name", p.Name, "risk", p.Risk, "status", p.Status)
	}
	return p, nil
}

// OnSave validates the draft and submits it. On success the controller
// navigates back and starts a fresh draft; on failure it stays put and
// keeps the draft so the operator can retry.
func (c *Controller) OnSave(ctx context.Context) SaveResult {
	p, err := c.Validate()
	if err != nil {
		return SaveResult{Status: SaveInvalid, Err: err}
	}

	res := c.creator.Create(ctx, p)
	if !res.OK() {
		return SaveResult{Status: SaveFailed, Message: res.Message, Err: res.Err}
	}

	c.draft = &Draft{}
	if c.navigator != nil {
		c.navigator.Back()
	}
	return SaveResult{Status: SaveCreated, Projeto: res.Value, Message: res.Message}
}
