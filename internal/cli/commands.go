package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/server"
	"scm-gateway/internal/version"
)

var (
	fullSync bool
	orgID    int
)

func init() {
	syncCmd.Flags().BoolVar(&fullSync, "full", false, "Reconcile every certificate regardless of its stored status")
	personsCmd.Flags().IntVar(&orgID, "org", 0, "Organization id to list persons of")
	_ = personsCmd.MarkFlagRequired("org")

	rootCmd.AddCommand(syncCmd, pingCmd, productsCmd, personsCmd, hashTokenCmd, versionCmd)
}

// withApp builds the shared components for a one-shot command and stops on SIGINT or SIGTERM.
func withApp(cmd *cobra.Command, run func(ctx context.Context, app *server.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := server.NewApp(ctx, cfg, server.SetupLogger(cfg))
	if err != nil {
		return err
	}
	defer app.Close()

	return run(ctx, app)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronization pass into the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *server.App) error {
			if app.SyncJob == nil {
				return errors.New("synchronization requires sync.enabled and storage.enabled")
			}
			run, err := app.SyncJob.RunOnce(ctx, fullSync)
			if encErr := writeJSON(cmd.OutOrStdout(), run); encErr != nil {
				return encErr
			}
			return err
		})
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the SCM credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *server.App) error {
			if err := app.Gateway.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		})
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the ssl profile ids available to the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *server.App) error {
			ids, err := app.Gateway.ProductIDs(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ids)
		})
	},
}

var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "List the persons of an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *server.App) error {
			persons, err := app.Client.ListPersons(ctx, orgID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), persons)
		})
	},
}

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Print the server.api_tokens digest of an api token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := middlewares.HashToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "scm-gateway "+version.GetFullVersion())
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
