package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// newTokenCmd creates the command that fetches a token and reports its state:
// validity, expiry, and the API actions the project is provisioned for.
func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the current access token and its permissions",
		Long: `Fetches an access token with the configured credentials and prints its
expiry and the API actions the project may call. Useful for checking which
API products are enabled on the marketplace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}
			defer client.Close()

			// TokenInfo reports on the cached slot only, so fetch first.
			if _, err := client.Token(cmd.Context()); err != nil {
				return err
			}

			info := client.TokenInfo()
			if flagOutput == "json" {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			t := createTable()
			t.AppendRow([]interface{}{text.FgHiCyan.Sprint("valid"), info.IsValid})
			t.AppendRow([]interface{}{text.FgHiCyan.Sprint("expires_at"), info.ExpiresAt.Format(time.RFC3339)})
			t.AppendRow([]interface{}{text.FgHiCyan.Sprint("client_name"), info.ClientName})
			t.AppendRow([]interface{}{text.FgHiCyan.Sprint("marketplace_user"), info.MarketplaceUser})
			t.AppendRow([]interface{}{text.FgHiCyan.Sprint("api_actions"), strings.Join(info.APIActions, "\n")})
			t.Render()
			return nil
		},
	}
}
