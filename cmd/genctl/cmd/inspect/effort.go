package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/internal/cmd/cmdutil"
	"github.com/agentstation/genctl/internal/cmd/output"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/errors"
)

// EffortResult is the output of the effort command.
type EffortResult struct {
	Provider   string            `json:"provider" yaml:"provider"`
	Model      string            `json:"model" yaml:"model"`
	Requested  controls.Effort   `json:"requested" yaml:"requested"`
	Normalized controls.Effort   `json:"normalized" yaml:"normalized"`
	Supported  []controls.Effort `json:"supported" yaml:"supported"`
}

// NewEffortCommand creates the effort command.
func NewEffortCommand(app appcontext.Interface) *cobra.Command {
	var target *cmdutil.TargetFlags

	cmd := &cobra.Command{
		Use:     "effort LEVEL",
		GroupID: "inspect",
		Short:   "Show how an effort level maps onto a model",
		Long: `Effort projects a reasoning effort level (none, minimal, low, medium,
high, xhigh) onto the levels the model accepts.`,
		Example: `  genctl effort xhigh -p anthropic -m claude-sonnet-4-5
  genctl effort minimal -p openai -m o4-mini -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, model, err := target.Resolve(app.DefaultProvider())
			if err != nil {
				return err
			}
			level, ok := controls.ParseEffort(args[0])
			if !ok {
				return errors.NewValidationError("effort", args[0], "must be one of none, minimal, low, medium, high, xhigh")
			}

			engine, err := app.Engine()
			if err != nil {
				return err
			}
			caps := engine.Capabilities(family, model)
			result := EffortResult{
				Provider:   string(family),
				Model:      caps.ModelID,
				Requested:  level,
				Normalized: engine.NormalizeEffort(level, family, model),
				Supported:  caps.ReasoningEfforts,
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
		},
	}

	target = cmdutil.AddTargetFlags(cmd)

	return cmd
}
