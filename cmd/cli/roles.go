package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkyc/kyc/internal/domain/access"
)

// rolesCmd prints the role policy table. It reads the compiled-in policy, so
// no database connection is needed.
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List defined roles and their permissions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range access.RoleNames() {
			role, _ := access.RoleByName(name)
			fmt.Printf("%s (%s)\n", role.Name, role.DisplayName)
			if role.Description != "" {
				fmt.Printf("  %s\n", role.Description)
			}

			grants := access.RolePermissions(name)
			for _, resource := range access.Resources {
				set, ok := grants[resource]
				if !ok || len(set) == 0 {
					continue
				}
				perms := make([]string, 0, len(set))
				for p := range set {
					perms = append(perms, string(p))
				}
				sort.Strings(perms)
				fmt.Printf("  %-12s %s\n", resource, strings.Join(perms, ", "))
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
