package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/internal/dashboard/servicegroup"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// serviceLimit matches the page size the utilities page requests.
const serviceLimit = 500

func newServiceGroupsCommand(e *env) *cobra.Command {
	var communityID string

	cmd := &cobra.Command{
		Use:   "service-groups",
		Short: "Show how services map onto the utilities cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.hooks.Services().List(zamanisdk.ListParams{
				Limit:       serviceLimit,
				CommunityID: communityID,
			}).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			cards, overflow := servicegroup.Build(list.Items, servicegroup.DefaultTemplates)

			out := cmd.OutOrStdout()
			t := newTable(out, "SLOT", "TITLE", "CATEGORY", "MATCHED", "SERVICES")
			for i, c := range cards {
				names := make([]string, 0, len(c.Services))
				for _, s := range c.Services {
					names = append(names, s.Name)
				}
				t.row(strconv.Itoa(i+1), c.Title, dash(c.Category), yesNo(c.Matched), dash(strings.Join(names, ", ")))
			}
			if err := t.flush(); err != nil {
				return err
			}
			if len(overflow) > 0 {
				fmt.Fprintf(out, "\nnot shown: %s\n", strings.Join(overflow, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&communityID, "community-id", "", "restrict to one community")
	return cmd
}
