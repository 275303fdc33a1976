package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func cmdClubs() *cobra.Command {
	c := &cobra.Command{
		Use:   "clubs",
		Short: "Club directory",
	}
	c.AddCommand(cmdClubsList(), cmdClubsCreate())
	return c
}

func cmdClubsList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, code, err := apiCall(http.MethodGet, "/api/clubs", nil)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("list failed (%d): %s", code, resp)
			}
			return printJSON(resp)
		},
	}
}

func cmdClubsCreate() *cobra.Command {
	var name, country, city string
	var founded int

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a club (super admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || country == "" {
				return fmt.Errorf("--name and --country are required")
			}
			body, _ := json.Marshal(map[string]any{
				"name":    name,
				"country": country,
				"city":    city,
				"founded": founded,
			})
			resp, code, err := apiCall(http.MethodPost, "/admin/clubs", body)
			if err != nil {
				return err
			}
			if code != http.StatusCreated {
				return fmt.Errorf("create failed (%d): %s", code, resp)
			}
			return printJSON(resp)
		},
	}
	c.Flags().StringVar(&name, "name", "", "club name")
	c.Flags().StringVar(&country, "country", "", "ISO country code")
	c.Flags().StringVar(&city, "city", "", "home city")
	c.Flags().IntVar(&founded, "founded", 0, "year founded")
	return c
}
