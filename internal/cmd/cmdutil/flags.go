// Package cmdutil provides shared flags for genctl commands.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/constants"
	"github.com/agentstation/genctl/pkg/errors"
)

// TargetFlags select the provider family and model a command works on.
type TargetFlags struct {
	Provider string
	Model    string
}

// AddTargetFlags adds --provider and --model to a command.
func AddTargetFlags(cmd *cobra.Command) *TargetFlags {
	flags := &TargetFlags{}

	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", "",
		fmt.Sprintf("Provider family (%s)", familyList()))
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "",
		"Model identifier")

	return flags
}

// Resolve validates the flags. An empty provider falls back to
// defaultProvider.
func (f *TargetFlags) Resolve(defaultProvider string) (capabilities.Family, string, error) {
	name := f.Provider
	if name == "" {
		name = defaultProvider
	}
	family, err := capabilities.ParseFamily(name)
	if errors.IsUnknownProvider(err) {
		if f.Provider == "" {
			return "", "", fmt.Errorf("configured default provider: %w", err)
		}
		return "", "", fmt.Errorf("--provider: %w", err)
	}
	if err != nil {
		return "", "", err
	}
	if len(f.Model) > constants.MaxModelNameLength {
		return "", "", errors.NewValidationError("model", f.Model,
			fmt.Sprintf("must be at most %d characters", constants.MaxModelNameLength))
	}
	return family, f.Model, nil
}

func familyList() string {
	names := make([]string, 0, len(capabilities.Families()))
	for _, f := range capabilities.Families() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
