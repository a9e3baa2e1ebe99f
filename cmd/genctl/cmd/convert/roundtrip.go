package convert

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/internal/appcontext"
	"github.com/agentstation/genctl/internal/cmd/cmdutil"
	"github.com/agentstation/genctl/internal/cmd/input"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(app appcontext.Interface) *cobra.Command {
	var (
		target *cmdutil.TargetFlags
		check  bool
	)

	cmd := &cobra.Command{
		Use:     "roundtrip DRAFT",
		GroupID: "core",
		Short:   "Check that a draft survives apply followed by draft",
		Long: `Roundtrip applies a draft to empty controls, rebuilds the draft from
the result and prints a unified diff of any difference. Null values are
dropped from the input before comparing.`,
		Example: `  genctl roundtrip -p gemini -m gemini-2.5-flash draft.json
  genctl roundtrip -p openai -m gpt-5 --check draft.json`,
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
			engine, err := app.Engine()
			if err != nil {
				return err
			}

			original := draft.PruneNulls(d)
			var c controls.GenerationControls
			engine.ApplyDraft(family, model, original, &c)
			rebuilt := engine.MakeDraft(family, model, &c)

			out := cmd.OutOrStdout()
			if draft.Equal(original, rebuilt) {
				fmt.Fprintln(out, "draft reproduced")
				return nil
			}

			diff, err := unifiedDiff(original, rebuilt)
			if err != nil {
				return err
			}
			fmt.Fprint(out, diff)
			if check {
				return fmt.Errorf("draft not reproduced for %s/%s", family, model)
			}
			return nil
		},
	}

	target = cmdutil.AddTargetFlags(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "exit with an error when the draft is not reproduced")

	return cmd
}

func unifiedDiff(a, b draft.Draft) (string, error) {
	aJSON, err := a.JSON(true)
	if err != nil {
		return "", err
	}
	bJSON, err := b.JSON(true)
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(aJSON) + "\n"),
		B:        difflib.SplitLines(string(bJSON) + "\n"),
		FromFile: "draft",
		ToFile:   "rebuilt",
		Context:  constants.DiffContextLines,
	})
}
