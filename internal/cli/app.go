// Package cli wires the session controller to cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/adapters/printer"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/application/service"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/config"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/logging"
	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/infrastructure/storage"
)

// Options override how the app builds its dependencies. Zero values use
// the configured defaults.
type Options struct {
	// Store is used as is and never closed by the app.
	Store storage.Store
	// OpenStore replaces storage.Open. The store it returns is owned and
	// closed by the app.
	OpenStore func(config.StorageConfig) (storage.Store, error)
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() (string, error)
}

// App holds the state shared by all commands of one invocation.
type App struct {
	opts Options

	configPath string
	dbPath     string
	yes        bool

	// set by "bill print"
	printFormat string
	printDir    string

	cfg    *config.Config
	logger *slog.Logger
	store  storage.Store
	svc    *service.Service

	ownsStore bool
}

// setup loads configuration and opens the session. It runs before every
// command that needs the service.
func (a *App) setup(cmd *cobra.Command) error {
	if a.svc != nil {
		return nil
	}
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.LoadOrEnv()
	}
	if a.dbPath != "" {
		a.cfg.Storage.DatabasePath = a.dbPath
		a.cfg.Storage.Driver = config.DriverSQLite
	}
	if a.printFormat != "" {
		a.cfg.Printer.Format = a.printFormat
	}
	if a.printDir != "" {
		a.cfg.Printer.OutputDir = a.printDir
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = a.opts.Logger
	if a.logger == nil {
		a.logger = logging.NewLoggerWithSystem(a.cfg.Logging, "billing")
	}

	a.store = a.opts.Store
	if a.store == nil {
		open := a.opts.OpenStore
		if open == nil {
			open = storage.Open
		}
		store, err := open(a.cfg.Storage)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		a.store = store
		a.ownsStore = true
	}

	p, err := printer.New(a.cfg.Printer)
	if err != nil {
		return err
	}

	svc, err := service.New(cmd.Context(), service.Options{
		Store:    a.store,
		Logger:   a.logger,
		Confirm:  a.confirmer(cmd).Confirm,
		Printer:  p,
		SeedFile: a.cfg.Assets.SeedFile,
		Now:      a.opts.Now,
		NewID:    a.opts.NewID,
	})
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

// close releases a store opened by setup. It is safe to call more than once.
func (a *App) close() error {
	if !a.ownsStore || a.store == nil {
		return nil
	}
	store := a.store
	a.store, a.svc, a.ownsStore = nil, nil, false
	return store.Close()
}

func (a *App) confirmer(cmd *cobra.Command) *Confirmer {
	return &Confirmer{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr(), AutoYes: a.yes}
}

// NewRootCmd builds the shrimp-bill command tree. The store is closed after
// a successful run; callers that need it closed on failure too use Execute.
func NewRootCmd(opts Options) *cobra.Command {
	root, _ := newRootCmd(opts)
	return root
}

func newRootCmd(opts Options) (*cobra.Command, *App) {
	a := &App{opts: opts}

	root := &cobra.Command{
		Use:           "shrimp-bill",
		Short:         "Shrimp farm billing: farms, assets, bills and backups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.yaml")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "answer yes to every confirmation")

	root.AddCommand(
		newFarmCmd(a),
		newAssetCmd(a),
		newBillCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
	)
	return root, a
}

// Execute runs the root command and prints any error to stderr.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, Options{}, args, os.Stderr)
}

func execute(ctx context.Context, opts Options, args []string, stderr io.Writer) int {
	root, a := newRootCmd(opts)
	// cobra skips PersistentPostRunE when a command fails
	defer func() {
		if err := a.close(); err != nil {
			fmt.Fprintln(stderr, FormatError(err))
		}
	}()

	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, FormatError(err))
		return 1
	}
	return 0
}

func (a *App) now() time.Time {
	if a.opts.Now != nil {
		return a.opts.Now()
	}
	return time.Now()
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
