// Command plmseed seeds a PLM server with demo data. It can run the built-in
// demo scenario, load a sample description file, or serve the bundled mock
// PLM server for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/config"
	"github.com/openplm/plmseed/internal/loader"
	"github.com/openplm/plmseed/internal/mockplm"
	"github.com/openplm/plmseed/internal/mockplm/database"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/sample"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	host     string
	user     string
	password string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "plmseed",
		Short:         "Seed a PLM server with demo data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// -h stays free for --host; help keeps its long form only.
	root.PersistentFlags().Bool("help", false, "show help")
	root.PersistentFlags().StringVarP(&opts.host, "host", "h", cfg.Host, "PLM server base URL")
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", cfg.User, "login of the seeding account")
	root.PersistentFlags().StringVarP(&opts.password, "password", "p", cfg.Password, "password of the seeding account")

	root.AddCommand(newDemoCmd(opts))
	root.AddCommand(newLoadCmd(opts))
	root.AddCommand(newMockCmd(cfg))
	return root
}

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var workspace string
	var deleteOnFinish bool
	var pollInterval, pollTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the full demo scenario against a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				workspace = "wks-" + uuid.NewString()[:8]
			}
			l := sample.New(sample.Options{
				Host:         opts.host,
				Login:        opts.user,
				Password:     opts.password,
				WorkspaceID:  workspace,
				PollInterval: pollInterval,
				PollTimeout:  pollTimeout,
			})
			ctx := cmd.Context()
			if err := l.Run(ctx); err != nil {
				return err
			}
			if deleteOnFinish {
				return l.Cleanup(ctx)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace id (default: a generated one)")
	cmd.Flags().BoolVar(&deleteOnFinish, "delete-on-finish", false, "delete the workspace after a successful run")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", sample.DefaultPollInterval, "conversion poll interval")
	cmd.Flags().DurationVar(&pollTimeout, "poll-timeout", sample.DefaultPollTimeout, "conversion poll timeout")
	return cmd
}

func newLoadCmd(opts *rootOptions) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "load [sample.json]",
		Short: "Load a sample description file into a workspace",
		Long:  "Load a sample description file into a workspace. Without an argument the bundled sample is loaded.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				return errors.New("a workspace is required, pass --workspace")
			}
			ctx := cmd.Context()
			c, err := client.Login(ctx, opts.host, opts.user, opts.password)
			if err != nil {
				return err
			}
			var rep *loader.Report
			if len(args) == 1 {
				rep, err = loader.LoadFile(ctx, c, workspace, args[0])
			} else {
				var spec *loader.SampleSpec
				spec, err = loader.ParseSample(loader.DefaultSample)
				if err == nil {
					rep, err = loader.Load(ctx, c, workspace, spec)
				}
			}
			if err != nil {
				return err
			}
			// Skipped items are already logged by the loader; only
			// failures make the run unsuccessful.
			if len(rep.Failed) > 0 {
				return fmt.Errorf("%d item(s) failed to load", len(rep.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "target workspace id")
	return cmd
}

func newMockCmd(cfg config.Config) *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve the bundled mock PLM server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMock(addr, dbPath)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&dbPath, "db", cfg.DBPath, "SQLite database path")
	return cmd
}

func runMock(addr, dbPath string) error {
	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: mockplm.NewHandler(store.New(db)),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting mock PLM server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
