package cmd

import (
	"context"

	"verigate/pkg/gateway"

	"github.com/spf13/cobra"
)

// newBillersCmd creates the bill-payment discovery commands.
func newBillersCmd() *cobra.Command {
	var items string

	cmd := &cobra.Command{
		Use:   "billers",
		Short: "List bill-payment billers and their payment items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Loading billers...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				if items != "" {
					return client.BillerPaymentItems(ctx, items)
				}
				return client.Billers(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&items, "items", "", "list the payment items of the given biller ID")

	return cmd
}
