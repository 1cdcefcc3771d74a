// Package form turns raw operator input into a projeto record and submits it.
package form

import (
	"fmt"

	"github.com/rpggio/projeto/internal/domain/projeto"
)

// Field names an input of the create form.
type Field string

const (
	FieldName          Field = "name"
	FieldDescription   Field = "description"
	FieldManager       Field = "manager"
	FieldDateStart     Field = "dateStart"
	FieldDatePrevision Field = "datePrevision"
	FieldDateEnd       Field = "dateEnd"
	FieldRisk          Field = "risk"
	FieldStatus        Field = "status"
)

// Kind tells a UI how to render a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
)

// FieldSpec describes one form input.
type FieldSpec struct {
	Field   Field
	Label   string
	Kind    Kind
	Help    string
	Options []string
}

// Fields returns the create form layout in display order.
func Fields() []FieldSpec {
	risks := make([]string, 0, len(projeto.Risks()))
	for _, r := range projeto.Risks() {
		risks = append(risks, string(r))
	}
	statuses := make([]string, 0, len(projeto.Statuses()))
	for _, s := range projeto.Statuses() {
		statuses = append(statuses, string(s))
	}

	return []FieldSpec{
		{Field: FieldName, Label: "Nome", Kind: KindText},
		{Field: FieldDescription, Label: "Descrição", Kind: KindTextArea},
		{Field: FieldManager, Label: "Gerente", Kind: KindSelect},
		{Field: FieldDateStart, Label: "Data de início", Kind: KindDate, Help: "dd/mm/aaaa"},
		{Field: FieldDatePrevision, Label: "Data prevista", Kind: KindDate, Help: "dd/mm/aaaa"},
		{Field: FieldDateEnd, Label: "Data de término", Kind: KindDate, Help: "dd/mm/aaaa"},
		{Field: FieldRisk, Label: "Risco", Kind: KindSelect, Options: risks},
		{Field: FieldStatus, Label: "Status", Kind: KindSelect, Options: statuses},
	}
}

// Draft is the raw text of the form. It is a value: edits return a new
// Draft and never change the receiver.
type Draft struct {
	Name          string
	Description   string
	Manager       string
	DateStart     string
	DatePrevision string
	DateEnd       string
	Risk          string
	Status        string
}

// With returns a copy of d with field set to value.
func (d Draft) With(field Field, value string) (Draft, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldManager:
		d.Manager = value
	case FieldDateStart:
		d.DateStart = value
	case FieldDatePrevision:
		d.DatePrevision = value
	case FieldDateEnd:
		d.DateEnd = value
	case FieldRisk:
		d.Risk = value
	case FieldStatus:
		d.Status = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return d, nil
}

// Value returns the raw text of field.
func (d Draft) Value(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldDescription:
		return d.Description
	case FieldManager:
		return d.Manager
	case FieldDateStart:
		return d.DateStart
	case FieldDatePrevision:
		return d.DatePrevision
	case FieldDateEnd:
		return d.DateEnd
	case FieldRisk:
		return d.Risk
	case FieldStatus:
		return d.Status
	default:
		return ""
	}
}
