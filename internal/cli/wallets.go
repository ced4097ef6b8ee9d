package cli

import (
	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

func newWalletsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wallets",
		Aliases: []string{"wallet"},
		Short:   "Inspect wallets",
	}

	var params zamanisdk.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List wallets and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.hooks.Wallets().List(params).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "NAME", "PROFILE", "BALANCE", "ACTIVE")
			for _, w := range list.Items {
				t.row(w.ID, w.Name, dash(w.ProfileType), w.Balance.StringFixed(2), yesNo(w.IsActive))
			}
			if err := t.flush(); err != nil {
				return err
			}
			pageFooter(out, list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			return nil
		},
	}
	addListFlags(list, &params)

	cmd.AddCommand(list)
	return cmd
}
