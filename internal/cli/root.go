package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scm-gateway/internal/config"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file")
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scm-gateway",
	Short: "Sectigo Certificate Manager gateway",
	Long: `
Sectigo Certificate Manager gateway

Synchronizes the SCM certificate inventory into a local record store and
enrolls, renews, reissues and revokes certificates through the SCM REST API.

Secrets may be supplied through the environment instead of the configuration file:

  ca.password                    (SCM_GATEWAY_CA_PASSWORD)
  ca.client_certificate.password (SCM_GATEWAY_CA_CLIENT_CERTIFICATE_PASSWORD)
  redis.password                 (SCM_GATEWAY_REDIS_PASSWORD)
  storage.password               (SCM_GATEWAY_STORAGE_PASSWORD)
`,
	SilenceUsage: true,
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configFile)
}
