package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func cmdLogin() *cobra.Command {
	var username string
	var password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the bearer token to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			body, _ := json.Marshal(map[string]string{
				"username": username,
				"password": password,
			})
			resp, status, err := httpDoJSON(http.MethodPost, apiBaseURL+"/auth/login", body, nil)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("login failed (%d): %s", status, resp)
			}

			var out struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(resp, &out); err != nil || out.Token == "" {
				return fmt.Errorf("login response had no token")
			}

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				cfg = &Config{APIBaseURL: apiBaseURL}
			}
			cfg.Token = out.Token
			if err := saveConfig(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s; token saved to %s\n", username, cfgPath)
			return nil
		},
	}
	c.Flags().StringVarP(&username, "username", "u", "", "account username")
	c.Flags().StringVarP(&password, "password", "p", "", "account password")
	return c
}
