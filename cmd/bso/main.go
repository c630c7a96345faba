package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/erazemk/bso/internal/config"
	"github.com/erazemk/bso/internal/db"
)

// app holds state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	cfg      *config.Config
	closeLog func()

	dbPath   string
	addr     string
	logPath  string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bso: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bso",
		Short: "Strict-reporting blank inventory",
		Long: `bso tracks serially numbered controlled forms (blanks), their status
changes, and produces monthly reports of issued, used, spoiled, lost and
unused number ranges.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.dbPath, "db", "d", "", "SQLite database path (env BSO_DB_PATH, default bso.sqlite3)")
	flags.StringVarP(&a.addr, "addr", "a", "", "listen address (env BSO_ADDR, default :8888)")
	flags.StringVarP(&a.logPath, "log", "l", "", "log file path (env BSO_LOG_PATH)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	cmd.AddCommand(
		newServeCmd(a),
		newInitCmd(a),
		newReportCmd(a),
		newWatchCmd(a),
	)
	return cmd
}

// load reads .env and the environment, applies flag overrides, validates
// the result and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("addr") {
		cfg.Addr = a.addr
	}
	if flags.Changed("log") {
		cfg.LogPath = a.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.LogPath, cfg.Level())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.closeLog = closeLog
	return nil
}

// openDatabase migrates the configured database and opens it.
func (a *app) openDatabase() (*sql.DB, error) {
	if err := db.Migrate(a.cfg.DBPath); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	database, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	slog.Info("database ready", "path", a.cfg.DBPath)
	return database, nil
}
