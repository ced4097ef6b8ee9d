package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/internal/dashboard/permission"
)

func newNavCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the dashboard sections the current profile may open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := e.hooks.Auth().Me().Fetch(cmd.Context())
			if err != nil {
				return err
			}

			sections := permission.AllowedSections(me.ProfileType)
			if len(sections) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sections available for profile %q\n", me.ProfileType)
				return nil
			}

			t := newTable(cmd.OutOrStdout(), "SECTION", "PATH")
			for _, s := range sections {
				t.row(string(s), sectionPath(s))
			}
			return t.flush()
		},
	}
}

// sectionPath is the first page route of s.
func sectionPath(s permission.Section) string {
	for _, r := range permission.Routes {
		if r.Section == s {
			return r.Path
		}
	}
	return "-"
}
