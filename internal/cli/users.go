package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func cmdUsers() *cobra.Command {
	c := &cobra.Command{
		Use:   "users",
		Short: "Account moderation",
	}
	c.AddCommand(cmdUsersList(), cmdUsersApprove(), cmdUsersReject(), cmdUsersSuspend())
	return c
}

func cmdUsersList() *cobra.Command {
	var status string

	c := &cobra.Command{
		Use:   "list",
		Short: "List accounts, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/admin/users"
			if status != "" {
				path += "?status=" + url.QueryEscape(status)
			}
			resp, code, err := apiCall(http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("list failed (%d): %s", code, resp)
			}
			return printJSON(resp)
		},
	}
	c.Flags().StringVar(&status, "status", "", "PENDING|APPROVED|REJECTED|SUSPENDED")
	return c
}

func cmdUsersApprove() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <user-id>",
		Short: "Approve a pending account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return moderate(args[0], "approve", nil)
		},
	}
}

func cmdUsersReject() *cobra.Command {
	var reason string

	c := &cobra.Command{
		Use:   "reject <user-id>",
		Short: "Reject an account with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return fmt.Errorf("--reason is required")
			}
			body, _ := json.Marshal(map[string]string{"reason": reason})
			return moderate(args[0], "reject", body)
		},
	}
	c.Flags().StringVar(&reason, "reason", "", "why the account is rejected (shown to the user)")
	return c
}

func cmdUsersSuspend() *cobra.Command {
	return &cobra.Command{
		Use:   "suspend <user-id>",
		Short: "Suspend an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return moderate(args[0], "suspend", nil)
		},
	}
}

func moderate(userID, action string, body []byte) error {
	resp, code, err := apiCall(http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/"+action, body)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("%s failed (%d): %s", action, code, resp)
	}
	return printJSON(resp)
}
