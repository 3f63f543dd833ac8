package cmd

import (
	"context"

	"verigate/pkg/gateway"

	"github.com/spf13/cobra"
)

// newVerifyCmd groups the identity verification subcommands.
func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an identity document or account",
	}

	cmd.AddCommand(newVerifyNINCmd())
	cmd.AddCommand(newVerifyBVNCmd())
	cmd.AddCommand(newVerifyAccountCmd())
	cmd.AddCommand(newVerifyTINCmd())
	cmd.AddCommand(newVerifyPassportCmd())
	cmd.AddCommand(newVerifyDriversLicenceCmd())

	return cmd
}

func newVerifyNINCmd() *cobra.Command {
	var firstName, lastName string

	cmd := &cobra.Command{
		Use:   "nin <number>",
		Short: "Verify a National Identification Number",
		Long: `Verifies a NIN and returns the full identity record. When --first-name
and --last-name are given, a boolean name match is performed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Verifying NIN...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				if firstName != "" || lastName != "" {
					return client.VerifyNIN(ctx, args[0], firstName, lastName)
				}
				return client.VerifyNINFull(ctx, args[0])
			})
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name to match against the record")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name to match against the record")

	return cmd
}

func newVerifyBVNCmd() *cobra.Command {
	var firstName, lastName string

	cmd := &cobra.Command{
		Use:   "bvn <number>",
		Short: "Verify a Bank Verification Number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Verifying BVN...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				if firstName != "" || lastName != "" {
					return client.VerifyBVNBoolean(ctx, args[0], firstName, lastName)
				}
				return client.VerifyBVNFull(ctx, args[0])
			})
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name to match against the record")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name to match against the record")

	return cmd
}

func newVerifyAccountCmd() *cobra.Command {
	var bankCode string

	cmd := &cobra.Command{
		Use:   "account <number>",
		Short: "Resolve a bank account number to its holder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Resolving account...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyBankAccount(ctx, args[0], bankCode)
			})
		},
	}

	cmd.Flags().StringVar(&bankCode, "bank-code", "", "bank code of the account's institution")
	_ = cmd.MarkFlagRequired("bank-code")

	return cmd
}

func newVerifyTINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tin <number>",
		Short: "Verify a Tax Identification Number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Verifying TIN...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyTIN(ctx, args[0])
			})
		},
	}
}

func newVerifyPassportCmd() *cobra.Command {
	var lastName, dateOfBirth string

	cmd := &cobra.Command{
		Use:   "passport <number>",
		Short: "Verify an international passport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Verifying passport...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyIntlPassport(ctx, args[0], lastName, dateOfBirth)
			})
		},
	}

	cmd.Flags().StringVar(&lastName, "last-name", "", "passport holder's last name")
	cmd.Flags().StringVar(&dateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("date-of-birth")

	return cmd
}

func newVerifyDriversLicenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers-licence <number>",
		Short: "Verify a driver's licence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Verifying licence...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyDriversLicence(ctx, args[0])
			})
		},
	}
}
