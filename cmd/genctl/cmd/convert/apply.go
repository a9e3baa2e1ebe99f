package convert

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/internal/cmd/cmdutil"
	"github.com/agentstation/genctl/internal/cmd/input"
	"github.com/agentstation/genctl/internal/cmd/output"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(app appcontext.Interface) *cobra.Command {
	var (
		target    *cmdutil.TargetFlags
		priorPath string
	)

	cmd := &cobra.Command{
		Use:     "apply DRAFT",
		GroupID: "core",
		Short:   "Infer a controls document from a provider draft",
		Long: `Apply reads a JSON draft and prints the controls it implies. Keys the
controls cannot reproduce are kept under provider_specific, so that
drafting the printed controls yields the same draft again.

The prior controls given with --controls supply settings a draft cannot
express, such as the cache strategy.`,
		Example: `  genctl apply -p openai -m gpt-5 draft.json
  pbpaste | genctl apply -p xai -m grok-4 -
  genctl apply -p anthropic -m claude-sonnet-4-5 --controls prior.yaml draft.json -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, model, err := target.Resolve(app.DefaultProvider())
			if err != nil {
				return err
			}
			d, err := input.Draft(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			c, err := input.Controls(cmd.InOrStdin(), priorPath)
			if err != nil {
				return err
			}

			engine, err := app.Engine()
			if err != nil {
				return err
			}
			remainder := engine.ApplyDraft(family, model, d, c)

			app.Logger().Debug().
				Str("provider", string(family)).
				Str("model", model).
				Strs("provider_specific", remainder.Keys()).
				Msg("applied draft")

			return output.NewFormatter(controlsFormat(app.OutputFormat())).Format(cmd.OutOrStdout(), c)
		},
	}

	target = cmdutil.AddTargetFlags(cmd)
	cmd.Flags().StringVarP(&priorPath, "controls", "c", "", "prior controls document (JSON or YAML, - for stdin)")

	return cmd
}

// controlsFormat picks the output format for a controls document. Tables
// cannot show nested controls, so anything but JSON prints YAML.
func controlsFormat(format string) output.Format {
	if output.Format(format) == output.FormatJSON {
		return output.FormatJSON
	}
	return output.FormatYAML
}
