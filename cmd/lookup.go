package cmd

import (
	"context"

	"verigate/pkg/gateway"

	"github.com/spf13/cobra"
)

// newLookupCmd groups the registry and screening lookups.
func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Search corporate registries and screening lists",
	}

	cmd.AddCommand(newLookupCACCmd())
	cmd.AddCommand(newLookupPEPCmd())
	cmd.AddCommand(newLookupAMLCmd())

	return cmd
}

func newLookupCACCmd() *cobra.Command {
	var directors, secretary, shareholders string

	cmd := &cobra.Command{
		Use:   "cac [company name]",
		Short: "Search the corporate registry",
		Long: `Searches the corporate affairs registry by company name. With one of the
--directors, --secretary, or --shareholders flags, the registered officers of
the given company ID are listed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if directors == "" && secretary == "" && shareholders == "" && len(args) == 0 {
				return cmd.Help()
			}
			return runCall("Searching registry...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				switch {
				case directors != "":
					return client.LookupCACDirectors(ctx, directors)
				case secretary != "":
					return client.LookupCACSecretary(ctx, secretary)
				case shareholders != "":
					return client.LookupCACShareholders(ctx, shareholders)
				default:
					return client.LookupCAC(ctx, args[0])
				}
			})
		},
	}

	cmd.Flags().StringVar(&directors, "directors", "", "list the directors of the given company ID")
	cmd.Flags().StringVar(&secretary, "secretary", "", "show the secretary of the given company ID")
	cmd.Flags().StringVar(&shareholders, "shareholders", "", "list the shareholders of the given company ID")
	cmd.MarkFlagsMutuallyExclusive("directors", "secretary", "shareholders")

	return cmd
}

func newLookupPEPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pep <full name>",
		Short: "Screen a person against the domestic PEP list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall("Screening...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyDomesticPEP(ctx, args[0])
			})
		},
	}
}

func newLookupAMLCmd() *cobra.Command {
	var business bool

	cmd := &cobra.Command{
		Use:   "aml <query>",
		Short: "Screen a person or business against global AML lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity := gateway.EntityPerson
			if business {
				entity = gateway.EntityBusiness
			}
			return runCall("Screening...", func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error) {
				return client.VerifyGlobalAML(ctx, args[0], entity)
			})
		},
	}

	cmd.Flags().BoolVar(&business, "business", false, "screen as a business instead of a person")

	return cmd
}
