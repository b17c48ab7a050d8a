package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/infrastructure/auth"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/event"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/migration"
	"github.com/erp/ledger/internal/infrastructure/persistence"
	"github.com/erp/ledger/migrations"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type options struct {
	path     string
	logLevel string
	out      io.Writer
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations, root account bootstrap and access tokens for the ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.path, "path", "", "Migrations directory (default: embedded migrations)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations (negative N rolls back)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("steps requires a non-zero integer, got %q", args[0])
				}
				return opts.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(opts.out, "version: %d dirty: %t\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("force requires an integer version, got %q", args[0])
				}
				return opts.withMigrator(func(m *migration.Migrator) error { return m.Force(v) })
			},
		},
		opts.newCreateCommand(),
		&cobra.Command{
			Use:   "list",
			Short: "List migrations and flag any without a rollback",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.list()
			},
		},
		&cobra.Command{
			Use:   "bootstrap-roots",
			Short: "Create or re-canonicalize the four standard root accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.bootstrapRoots(cmd.Context())
			},
		},
		opts.newIssueTokenCommand(),
	)

	return rootCmd
}

func (o *options) newCreateCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := o.path
			if dir == "" {
				dir = defaultMigrationsDir
			}
			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(o.out, "created %s\ncreated %s\n", mf.UpPath, mf.DownPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Migration description")
	return cmd
}

func (o *options) newIssueTokenCommand() *cobra.Command {
	var (
		userID      string
		username    string
		permissions []string
	)
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign an access token for the ledger API with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.JWT.Secret == "" {
				return errors.New("jwt.secret is not configured")
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			token, expiresAt, err := auth.NewJWTService(cfg.JWT).GenerateAccessToken(auth.GenerateTokenInput{
				UserID:      id,
				Username:    username,
				Permissions: permissions,
			})
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			_, _ = fmt.Fprintf(o.out, "%s\nexpires at %s\n", token, expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID claim (default: random)")
	cmd.Flags().StringVar(&username, "username", "", "Username claim")
	cmd.Flags().StringSliceVar(&permissions, "permission", auth.AllAccountPermissions, "Permissions to grant")
	return cmd
}

func (o *options) migrationsFS() fs.FS {
	if o.path != "" {
		return os.DirFS(o.path)
	}
	return migrations.FS
}

func (o *options) list() error {
	fsys := o.migrationsFS()
	names, err := migration.ListMigrations(fsys)
	if err != nil {
		return err
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(o.out, name)
	}
	missing, err := migration.MissingRollbacks(fsys)
	if err != nil {
		return err
	}
	for _, name := range missing {
		_, _ = fmt.Fprintf(o.out, "missing rollback: %s\n", name)
	}
	return nil
}

func (o *options) newLogger() (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:  o.logLevel,
		Format: "console",
		Output: "stdout",
	})
}

func (o *options) withMigrator(fn func(*migration.Migrator) error) error {
	log, err := o.newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	var m *migration.Migrator
	if o.path != "" {
		m, err = migration.NewFromPath(db, o.path, log)
	} else {
		m, err = migration.New(db, migrations.FS, log)
	}
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()

	return fn(m)
}

func (o *options) bootstrapRoots(ctx context.Context) error {
	log, err := o.newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	service := ledgerapp.NewAccountTreeService(
		persistence.NewGormUnitOfWork(db.DB),
		event.NewInMemoryEventBus(log),
		ledgerapp.WithLogger(log),
	)
	changed, err := service.BootstrapRoots(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(o.out, "root accounts created or repaired: %d\n", changed)
	return nil
}
