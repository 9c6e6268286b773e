package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/app/config"
	"portfolio/app/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRootCommand builds the portfolio command tree.
func NewRootCommand(version string) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Personal portfolio website with an admin panel",
		Long: `portfolio serves a personal website (home, about, projects, blog and
contact pages) together with a password protected admin panel for managing
its content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		c.serveCommand(),
		versionCommand(version),
		c.dbCommand(),
	)
	return root
}

// setup loads the configuration and the logger. Commands that need them
// use it as their PreRunE.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the website",
		Args:    cobra.NoArgs,
		PreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer c.sync()
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, c.cfg, c.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func versionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio version %s\n", version)
		},
	}
}

func (c *cli) dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the on-disk database",
		Long: `Manage the Badger database configured by storage.path.

Available subcommands:
  init    - Create an empty database
  clean   - Delete the database
  seed    - Load the sample content into an empty database
  backup  - Write a snapshot into storage.backup_dir
  restore - Replace the database with a snapshot`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd, args); err != nil {
				return err
			}
			if c.cfg.Storage.Path == "" {
				return errNoDataPath
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.sync()
		},
	}

	var yes bool
	cmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create an empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.initDB(cmd)
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Delete the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.clean(cmd, yes)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the sample content into an empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.seed(cmd)
			},
		},
		&cobra.Command{
			Use:   "backup",
			Short: "Write a snapshot into the backup directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.backup(cmd)
			},
		},
		&cobra.Command{
			Use:   "restore [file]",
			Short: "Replace the database with a snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.restore(cmd, args[0], yes)
			},
		},
	)
	return cmd
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initDB creates an empty database.
func (c *cli) initDB(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	dbPath := c.cfg.Storage.Path
	if exists(dbPath) {
		fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}
	if err := os.MkdirAll(dbPath, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := openStore(c.cfg, c.logger)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

// clean removes the database.
func (c *cli) clean(cmd *cobra.Command, yes bool) error {
	out := cmd.OutOrStdout()
	dbPath := c.cfg.Storage.Path
	if !exists(dbPath) {
		fmt.Fprintln(out, "Database is already clean (does not exist)")
		return nil
	}
	if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}
	if err := os.RemoveAll(dbPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

// seed loads the sample content unless the database already has some.
func (c *cli) seed(cmd *cobra.Command) error {
	store, err := openStore(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	seeded, err := store.Seed()
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Sample content loaded")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Database is not empty, nothing to do")
	}
	return nil
}

// backup writes a snapshot named after the current time.
func (c *cli) backup(cmd *cobra.Command) error {
	if !exists(c.cfg.Storage.Path) {
		return errors.New("no database exists to backup")
	}
	backupDir := c.cfg.Storage.BackupDir
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	store, err := openStore(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%s.bak", time.Now().UTC().Format("20060102-150405")))
	f, err := os.Create(backupFile)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := store.Backup(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", backupFile)
	return nil
}

// restore replaces the database contents with backupFile.
func (c *cli) restore(cmd *cobra.Command, backupFile string, yes bool) error {
	out := cmd.OutOrStdout()
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}
	if exists(c.cfg.Storage.Path) && !yes &&
		!confirm(cmd.InOrStdin(), out, "Existing database found. Do you want to replace it?") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	store, err := openStore(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Restore(f); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
