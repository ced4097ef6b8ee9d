package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// lookupLimit bounds the page fetched to find a code for cancellation.
const lookupLimit = 500

func newAccessCodesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "access-codes",
		Aliases: []string{"codes"},
		Short:   "Manage visitor access codes",
	}
	cmd.AddCommand(
		newAccessCodesListCommand(e),
		newAccessCodesCancelCommand(e),
		newAccessCodesValidateCommand(e),
	)
	return cmd
}

func newAccessCodesListCommand(e *env) *cobra.Command {
	var params zamanisdk.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List access codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.hooks.AccessCodes().List(params).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "CODE", "STATUS", "CATEGORY", "VISITOR", "EXPIRES", "CANCELLABLE")
			for _, c := range list.Items {
				t.row(c.ID, c.Code, string(c.Status), dash(c.Category), dash(c.VisitorName),
					formatTime(c.ExpiresAt), yesNo(c.CanCancel()))
			}
			if err := t.flush(); err != nil {
				return err
			}
			pageFooter(out, list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			return nil
		},
	}

	addListFlags(cmd, &params)
	cmd.Flags().StringVar(&params.Status, "status", "", "filter by status (Open, Used, Cancelled)")
	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	return cmd
}

func newAccessCodesCancelCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id|code>",
		Short: "Cancel an open access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			list, err := e.hooks.AccessCodes().List(zamanisdk.ListParams{Limit: lookupLimit}).Fetch(ctx)
			if err != nil {
				return err
			}

			var target *zamanisdk.AccessCode
			for i := range list.Items {
				if c := list.Items[i]; c.ID == args[0] || c.Code == args[0] {
					target = &list.Items[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("access code %q not found", args[0])
			}

			cancelled, err := e.hooks.AccessCodes().Cancel().Mutate(ctx, *target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access code %s is now %s\n", cancelled.Code, cancelled.Status)
			return nil
		},
	}
}

func newAccessCodesValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <code>",
		Short: "Validate a visitor's access code at the gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := e.hooks.AccessCodes().Validate().Mutate(cmd.Context(), zamanisdk.ValidateAccessCodeRequest{Code: args[0]})
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "CODE", "STATUS", "VISITOR", "EXPIRES")
			t.row(code.Code, string(code.Status), dash(code.VisitorName), formatTime(code.ExpiresAt))
			return t.flush()
		},
	}
}
