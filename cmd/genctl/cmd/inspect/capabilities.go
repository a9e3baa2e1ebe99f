// Package inspect provides commands that report what the capability
// registry knows about models.
package inspect

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/internal/cmd/cmdutil"
	"github.com/agentstation/genctl/internal/cmd/output"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
)

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand(app appcontext.Interface) *cobra.Command {
	var target *cmdutil.TargetFlags

	cmd := &cobra.Command{
		Use:     "capabilities [MODEL...]",
		GroupID: "inspect",
		Aliases: []string{"caps"},
		Short:   "Show the capability set of models",
		Long: `Capabilities resolves each model against the capability tables of the
provider family and prints the wire shape and the features it supports.
Models may be given as arguments or with --model.`,
		Example: `  genctl capabilities -p anthropic claude-opus-4-6 claude-3-haiku
  genctl caps -p gemini -m gemini-3-pro-image-preview -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			family, model, err := target.Resolve(app.DefaultProvider())
			if err != nil {
				return err
			}
			models := args
			if model != "" {
				models = append([]string{model}, models...)
			}
			if len(models) == 0 {
				return cmd.Help()
			}

			engine, err := app.Engine()
			if err != nil {
				return err
			}
			sets := make([]capabilities.Set, 0, len(models))
			for _, m := range models {
				sets = append(sets, engine.Capabilities(family, m))
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), capabilitiesTable(sets))
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), sets)
		},
	}

	target = cmdutil.AddTargetFlags(cmd)

	return cmd
}

func capabilitiesTable(sets []capabilities.Set) output.Data {
	data := output.Data{
		Headers: []string{"Model", "Wire Shape", "Reasoning", "Efforts", "Web Search", "Context Cache", "Media"},
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignLeft, output.AlignCenter, output.AlignLeft,
			output.AlignCenter, output.AlignCenter, output.AlignLeft,
		},
	}
	for _, s := range sets {
		media := string(s.Media)
		if media == "" {
			media = "-"
		}
		data.Rows = append(data.Rows, []string{
			s.ModelID,
			s.WireShape.String(),
			strconv.FormatBool(s.SupportsReasoning),
			effortList(s.ReasoningEfforts),
			strconv.FormatBool(s.SupportsWebSearch),
			strconv.FormatBool(s.SupportsContextCache),
			media,
		})
	}
	return data
}

func effortList(efforts []controls.Effort) string {
	if len(efforts) == 0 {
		return "-"
	}
	names := make([]string, len(efforts))
	for i, e := range efforts {
		names[i] = e.String()
	}
	return strings.Join(names, ", ")
}
