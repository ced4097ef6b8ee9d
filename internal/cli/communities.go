package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/internal/dashboard/forms"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

func newCommunitiesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "communities",
		Aliases: []string{"community"},
		Short:   "Manage communities",
	}
	cmd.AddCommand(newCommunitiesListCommand(e), newCommunitiesCreateCommand(e))
	return cmd
}

func newCommunitiesListCommand(e *env) *cobra.Command {
	var params zamanisdk.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List communities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.hooks.Communities().List(params).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "COMMUNITY ID", "NAME", "CITY", "ADMIN", "CREATED")
			for _, c := range list.Items {
				t.row(c.ID, c.CommunityID, c.Name, dash(c.Address.City), dash(c.AdminName), formatTime(c.CreatedAt))
			}
			if err := t.flush(); err != nil {
				return err
			}
			pageFooter(out, list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			return nil
		},
	}

	addListFlags(cmd, &params)
	return cmd
}

func newCommunitiesCreateCommand(e *env) *cobra.Command {
	var (
		req      zamanisdk.CreateCommunityRequest
		logoPath string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a community and its first administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logoPath != "" {
				logo, err := readLogo(logoPath)
				if err != nil {
					return err
				}
				req.Logo = logo
			}

			// Availability is resolved at submit time.
			form := forms.NewCommunityForm(e.hooks, e.notifier(cmd), 0)
			c, err := form.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created community %s (%s)\n", c.Name, c.CommunityID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.CommunityID, "community-id", "", "public community identifier")
	f.StringVar(&req.Name, "name", "", "community name")
	f.StringVar(&req.Address.Street, "street", "", "street address")
	f.StringVar(&req.Address.City, "city", "", "city")
	f.StringVar(&req.Address.State, "state", "", "state")
	f.StringVar(&req.Address.Country, "country", "", "country")
	f.StringVar(&req.Address.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&req.AdminFirstName, "admin-first-name", "", "administrator first name")
	f.StringVar(&req.AdminLastName, "admin-last-name", "", "administrator last name")
	f.StringVar(&req.AdminEmail, "admin-email", "", "administrator email")
	f.StringVar(&req.AdminPhone, "admin-phone", "", "administrator phone")
	f.StringVar(&req.AdminUsername, "admin-username", "", "administrator username")
	f.StringVar(&logoPath, "logo", "", "path to a png, jpeg, webp or svg logo")
	return cmd
}

func readLogo(path string) (*zamanisdk.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return &zamanisdk.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

func addListFlags(cmd *cobra.Command, p *zamanisdk.ListParams) {
	f := cmd.Flags()
	f.IntVar(&p.Page, "page", 1, "page number")
	f.IntVar(&p.Limit, "limit", 20, "page size")
	f.StringVar(&p.Search, "search", "", "search text")
}
