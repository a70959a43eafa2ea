package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaryworks/fieldguide/internal/explain"
)

// roleDescriptions maps each audience role to a one-line summary shown by
// the roles command.
var roleDescriptions = map[explain.Role]string{
	explain.RoleGeneral:   "plain-language overview for a curious adult",
	explain.RoleYouth:     "short, playful explanation for young readers",
	explain.RoleTechnical: "precise, terminology-heavy summary for specialists",
	explain.RoleGuide:     "story-driven narration for tour and museum guides",
}

// NewRolesCommand creates the roles command listing the explanation audiences.
func (a *App) NewRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the available explanation audiences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, role := range explain.Roles() {
				params := role.Params()
				fmt.Fprintf(out, "%-10s %s (temperature %.1f, up to %d tokens)\n",
					role, roleDescriptions[role], params.Temperature, params.MaxOutputTokens)
			}
			return nil
		},
	}
}
