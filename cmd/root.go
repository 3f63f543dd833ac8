package cmd

import (
	"os"

	"verigate/pkg/apierror"
	"verigate/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// These follow common conventions for scripting and automation.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, business
	// rejection, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates missing or invalid credentials, or a project
	// not provisioned for the requested API product.
	ExitCodeConfig = 2
	// ExitCodeTransport indicates the gateway could not be reached or
	// authenticated to; retrying may help.
	ExitCodeTransport = 3
)

var (
	flagConfigPath   string
	flagClientID     string
	flagClientSecret string
	flagBaseURL      string
	flagOutput       string
	flagQuiet        bool
	flagVerbose      bool
)

// rootCmd represents the base command for the verigate application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "verigate",
	Short: "Query the verification gateway from the command line",
	Long: `verigate wraps the verification gateway's identity, business, and
bill-payment APIs. Credentials come from flags, a config file
(~/.config/verigate/config.yaml), or VERIGATE_* environment variables.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logging.Init(logging.LevelDebug, os.Stderr)
		}
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "verigate version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error's
// category. This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	apiErr, ok := apierror.As(err)
	if !ok {
		return ExitCodeError
	}

	switch apiErr.Category() {
	case apierror.CategoryConfiguration:
		return ExitCodeConfig
	case apierror.CategoryTransport:
		return ExitCodeTransport
	default:
		return ExitCodeError
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file (default is $HOME/.config/verigate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "gateway client ID")
	rootCmd.PersistentFlags().StringVar(&flagClientSecret, "client-secret", "", "gateway client secret")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "gateway base URL")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newBillersCmd())
}
