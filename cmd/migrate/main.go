package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prodstock/backend/internal/infrastructure/config"
	"github.com/prodstock/backend/internal/infrastructure/logger"
	"github.com/prodstock/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `prodstock-migrate - schema migrations for the stock reconciliation database

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply every pending migration
  down                  Roll the schema all the way back
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate the schema to a specific version
  version               Print the current schema version
  force <version>       Overwrite the recorded version (recovers a dirty state)
  drop -confirm         Drop every object in the database
  create <name> [desc]  Generate an empty up/down migration pair
  list                  Show the migration pairs on disk

Flags:
  -path string          Migrations directory (default: ./migrations)
  -log-level string     debug, info, warn or error (default: info)

Configuration is read from config.toml plus PRODSTOCK_DATABASE_* environment
overrides (HOST, PORT, USER, PASSWORD, DBNAME, SSL_MODE).

Examples:
  migrate up
  migrate step -1
  migrate create add_house_aliases "alias table for production houses"
  migrate version`

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(args, resolveMigrationsPath(migrationsPath), log); err != nil {
		log.Fatal("Migration command failed", zap.Error(err))
	}
}

// resolveMigrationsPath prefers the flag, then ./migrations, then the
// directory two levels above the binary (the repo root when running a
// built cmd/migrate binary).
func resolveMigrationsPath(flagPath string) string {
	const defaultDir = "migrations"

	path := flagPath
	if path == "" {
		if _, err := os.Stat(defaultDir); err == nil {
			path = defaultDir
		} else if execPath, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultDir)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	if path == "" {
		path = defaultDir
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func run(args []string, migrationsPath string, log *zap.Logger) error {
	command := args[0]

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list work offline
	switch command {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("migration name required: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			return err
		}
		log.Info("Migration pair created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil

	case "list":
		names, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Info("No migrations on disk")
			return nil
		}
		log.Info("Migrations on disk", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return runCommand(m, command, args[1:], log)
}

func runCommand(m *migration.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()

	case "down":
		return m.Down()

	case "step":
		if len(args) < 1 {
			return fmt.Errorf("step count required: migrate step <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)

	case "goto":
		if len(args) < 1 {
			return fmt.Errorf("target version required: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(version))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied yet")
		} else {
			log.Info("Current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
		return nil

	case "force":
		if len(args) < 1 {
			return fmt.Errorf("version required: migrate force <version>")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(version)

	case "drop":
		confirmed := false
		for _, arg := range args {
			if arg == "-confirm" || arg == "--confirm" {
				confirmed = true
			}
		}
		if !confirmed {
			return fmt.Errorf("drop destroys all data; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
