package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
)

// fieldPrompter asks for one form field.
type fieldPrompter interface {
	Ask(ctx context.Context, spec form.FieldSpec, current string) (string, error)
}

// fillDraft prompts every field in form order and edits the controller's
// draft as answers arrive. managers supplies the options of the manager field.
func fillDraft(ctx context.Context, p fieldPrompter, ctrl *form.Controller, managers []projeto.Usuario) error {
	for _, spec := range form.Fields() {
		if spec.Field == form.FieldManager {
			spec.Options = managerOptions(managers)
			if len(spec.Options) == 0 {
				spec.Kind = form.KindText
			}
		}
		answer, err := p.Ask(ctx, spec, ctrl.Draft().Value(spec.Field))
		if err != nil {
			return err
		}
		if spec.Field == form.FieldManager {
			answer = managerID(managers, answer)
		}
		if err := ctrl.Edit(spec.Field, answer); err != nil {
			return err
		}
	}
	return nil
}

func managerOptions(managers []projeto.Usuario) []string {
	opts := make([]string, 0, len(managers))
	for _, u := range managers {
		opts = append(opts, managerLabel(u))
	}
	return opts
}

func managerLabel(u projeto.Usuario) string {
	if u.Email == "" {
		return u.Name
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

func managerID(managers []projeto.Usuario, label string) string {
	for _, u := range managers {
		if managerLabel(u) == label {
			return u.ID
		}
	}
	return label
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(ctx context.Context, spec form.FieldSpec, current string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		out    string
		prompt survey.Prompt
		opts   []survey.AskOpt
	)
	switch spec.Kind {
	case form.KindTextArea:
		prompt = &survey.Multiline{Message: spec.Label, Help: spec.Help, Default: current}
	case form.KindSelect:
		sel := &survey.Select{Message: spec.Label, Help: spec.Help, Options: append([]string{""}, spec.Options...)}
		prompt = sel
	case form.KindDate:
		prompt = &survey.Input{Message: spec.Label, Help: spec.Help, Default: current}
		opts = append(opts, survey.WithValidator(validateDate))
	default:
		prompt = &survey.Input{Message: spec.Label, Help: spec.Help, Default: current}
	}
	if spec.Field == form.FieldName {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func validateDate(ans any) error {
	s, _ := ans.(string)
	_, err := projeto.ParseDate(s)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	return err
}
