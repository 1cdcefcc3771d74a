package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	// create command flags
	createValues      = map[form.Field]*string{}
	createInteractive bool

	// update command flags
	updateSubtype string
	updateFile    string

	// messages command flags
	msgDismiss string
	msgShow    string
	msgAll     bool
)

func init() {
	rootCmd.AddCommand(listCmd, managersCmd, getCmd, createCmd, updateCmd, deleteCmd, messagesCmd)

	for _, spec := range form.Fields() {
		v := new(string)
		createValues[spec.Field] = v
		createCmd.Flags().StringVar(v, flagName(spec.Field), "", createFlagUsage(spec))
	}
	createCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Prompt for every field")

	updateCmd.Flags().StringVar(&updateSubtype, "subtype", "", "Resource to update: equipe, indicador or indicador-fase (default projeto)")
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "YAML or JSON file with the full projeto (required)")
	_ = updateCmd.MarkFlagRequired("file")

	messagesCmd.Flags().StringVar(&msgDismiss, "dismiss", "", "Dismiss the message with this id")
	messagesCmd.Flags().StringVar(&msgShow, "show", "", "Show one message, even if already dismissed")
	messagesCmd.Flags().BoolVar(&msgAll, "all", false, "Dismiss every pending message")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projetos",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		res := a.projetos.List(ctx)
		if !res.OK() {
			return errOperationFailed
		}
		return printProjetos(cmd.OutOrStdout(), res.Value)
	}),
}

var managersCmd = &cobra.Command{
	Use:   "managers",
	Short: "List users that can manage a projeto",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		res := a.projetos.ListManagers(ctx)
		if !res.OK() {
			return errOperationFailed
		}
		out := cmd.OutOrStdout()
		if outputJSON {
			return writeJSON(out, res.Value)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tEMAIL")
		for _, u := range res.Value {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
		return w.Flush()
	}),
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one projeto",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		res := a.projetos.GetByID(ctx, args[0])
		if !res.OK() || res.Value == nil {
			return errOperationFailed
		}
		return printProjeto(cmd.OutOrStdout(), *res.Value)
	}),
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a projeto",
	Long: `Create a projeto from flags or, with --interactive, from prompts.
Dates are dd/mm/yyyy; blank dates are left out.

Examples:
  projeto create --name Portal --date-start 01/02/2024 --risk baixo
  projeto create -i`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		var nav form.Navigator
		if createInteractive {
			// Back returns to the listing, like the create screen does.
			nav = form.NavigatorFunc(func() {
				if res := a.projetos.List(ctx); res.OK() {
					_ = printProjetos(cmd.OutOrStdout(), res.Value)
				}
			})
		}
		ctrl := form.NewController(a.projetos, nav, a.logger)

		for field, v := range createValues {
			if err := ctrl.Edit(field, *v); err != nil {
				return err
			}
		}
		if createInteractive {
			managers := a.projetos.ListManagers(ctx)
			if err := fillDraft(ctx, surveyPrompter{}, ctrl, managers.Value); err != nil {
				return err
			}
		}

		saved := ctrl.OnSave(ctx)
		switch saved.Status {
		case form.SaveInvalid:
			return saved.Err
		case form.SaveFailed:
			return errOperationFailed
		}
		if createInteractive || saved.Projeto == nil {
			return nil
		}
		return printProjeto(cmd.OutOrStdout(), *saved.Projeto)
	}),
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a projeto or one of its sub-resources",
	Long: `Send the projeto read from --file to the backend. --subtype selects the
endpoint: equipe, indicador or indicador-fase; anything else updates the
projeto itself.

Examples:
  projeto update p1 -f portal.yaml
  projeto update p1 -f team.json --subtype equipe`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		p, err := readProjetoFile(updateFile)
		if err != nil {
			return err
		}
		p.ID = args[0]

		res := a.projetos.Update(ctx, p, projeto.Subtype(updateSubtype))
		if !res.OK() {
			return errOperationFailed
		}
		if res.Value == nil {
			return nil
		}
		return printProjeto(cmd.OutOrStdout(), *res.Value)
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a projeto",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, a *app, args []string) error {
		if res := a.projetos.Remove(ctx, args[0]); !res.OK() {
			return errOperationFailed
		}
		return nil
	}),
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List or dismiss pending notifications",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		out := cmd.OutOrStdout()
		switch {
		case msgAll:
			n, err := a.messages.DismissAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d dismissed\n", n)
			return nil
		case msgDismiss != "":
			return a.messages.Dismiss(ctx, msgDismiss)
		case msgShow != "":
			m, err := a.messages.Get(ctx, msgShow)
			if err != nil {
				return err
			}
			return printMessage(out, *m)
		}

		pending, err := a.messages.Pending(ctx)
		if err != nil {
			return err
		}
		if outputJSON {
			return writeJSON(out, pending)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNIVEL\tCRIADA\tTEXTO")
		for _, m := range pending {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Level, m.CreatedAt.Local().Format("02/01/2006 15:04"), m.Text)
		}
		return w.Flush()
	}),
}

type appRunFunc func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error

// withApp wires the services for a one-shot command and prints every
// notification to stderr while it runs.
func withApp(run appRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		a.messages.Subscribe(notificationPrinter(cmd.ErrOrStderr()))
		return run(cmd.Context(), cmd, a, args)
	}
}

func notificationPrinter(w io.Writer) message.Listener {
	return func(m message.Message) {
		mark := "ok"
		if m.Level == message.LevelError {
			mark = "erro"
		}
		fmt.Fprintf(w, "[%s] %s\n", mark, m.Text)
	}
}

func printProjetos(w io.Writer, projetos []projeto.Projeto) error {
	if outputJSON {
		return writeJSON(w, projetos)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tGERENTE\tINICIO\tPREVISAO\tRISCO\tSTATUS")
	for _, p := range projetos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Manager,
			projeto.FormatDisplayDate(p.DateStart),
			projeto.FormatDisplayDate(p.DatePrevision),
			p.Risk, p.Status)
	}
	return tw.Flush()
}

func printProjeto(w io.Writer, p projeto.Projeto) error {
	if outputJSON {
		return writeJSON(w, p)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

func printMessage(w io.Writer, m message.Message) error {
	if outputJSON {
		return writeJSON(w, m)
	}
	fmt.Fprintf(w, "id:       %s\n", m.ID)
	fmt.Fprintf(w, "nivel:    %s\n", m.Level)
	fmt.Fprintf(w, "criada:   %s\n", m.CreatedAt.Local().Format("02/01/2006 15:04"))
	if m.DismissedAt != nil {
		fmt.Fprintf(w, "removida: %s\n", m.DismissedAt.Local().Format("02/01/2006 15:04"))
	}
	_, err := fmt.Fprintf(w, "texto:    %s\n", m.Text)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readProjetoFile(path string) (projeto.Projeto, error) {
	var p projeto.Projeto
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read projeto file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return p, fmt.Errorf("parse projeto file: %w", err)
	}
	return p, nil
}

// flagName turns a form field into its kebab-case flag, e.g. dateStart
// becomes date-start.
func flagName(f form.Field) string {
	var b strings.Builder
	for _, r := range string(f) {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func createFlagUsage(spec form.FieldSpec) string {
	switch {
	case len(spec.Options) > 0:
		return fmt.Sprintf("%s (%s)", spec.Label, strings.Join(spec.Options, ", "))
	case spec.Help != "":
		return fmt.Sprintf("%s (%s)", spec.Label, spec.Help)
	default:
		return spec.Label
	}
}
