// Package convert provides the draft, apply and roundtrip commands, which
// move between controls documents and provider drafts.
package convert

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/internal/cmd/cmdutil"
	"github.com/agentstation/genctl/internal/cmd/input"
	"github.com/agentstation/genctl/internal/cmd/output"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/draft"
	"github.com/agentstation/genctl/pkg/errors"
)

// NewDraftCommand creates the draft command.
func NewDraftCommand(app appcontext.Interface) *cobra.Command {
	var (
		target       *cmdutil.TargetFlags
		controlsPath string
		writePath    string
		validate     bool
	)

	cmd := &cobra.Command{
		Use:     "draft",
		GroupID: "core",
		Short:   "Build a provider draft from a controls document",
		Long: `Draft projects a controls document onto the request parameters the
provider expects for the model. Without --controls the draft for empty
controls is printed.`,
		Example: `  genctl draft -p anthropic -m claude-opus-4-6 --controls controls.yaml
  cat controls.json | genctl draft -p gemini -m gemini-3-pro-preview --controls -
  genctl draft -p openai -m gpt-5 --controls c.yaml --write out/draft.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			family, model, err := target.Resolve(app.DefaultProvider())
			if err != nil {
				return err
			}
			c, err := input.Controls(cmd.InOrStdin(), controlsPath)
			if err != nil {
				return err
			}
			if validate {
				if err := c.Validate(); err != nil {
					return err
				}
			}

			engine, err := app.Engine()
			if err != nil {
				return err
			}
			d := engine.MakeDraft(family, model, c)

			app.Logger().Debug().
				Str("provider", string(family)).
				Str("model", model).
				Strs("keys", d.Keys()).
				Msg("built draft")

			if writePath != "" {
				return writeDraft(writePath, d)
			}
			return printDraft(cmd.OutOrStdout(), app.OutputFormat(), d)
		},
	}

	target = cmdutil.AddTargetFlags(cmd)
	cmd.Flags().StringVarP(&controlsPath, "controls", "c", "", "controls document (JSON or YAML, - for stdin)")
	cmd.Flags().StringVarP(&writePath, "write", "w", "", "write the draft to a file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", false, "reject controls with out-of-range values or unknown literals")

	return cmd
}

// printDraft writes d as indented JSON, or as YAML when asked to.
func printDraft(w io.Writer, format string, d draft.Draft) error {
	if output.Format(format) == output.FormatYAML {
		return output.NewFormatter(output.FormatYAML).Format(w, d)
	}
	data, err := d.JSON(true)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeDraft(path string, d draft.Draft) error {
	data, err := d.JSON(true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
