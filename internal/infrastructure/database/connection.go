package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"medreminder/internal/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	slowQueryThreshold = 200 * time.Millisecond
)

// Config selects the backing database.
type Config struct {
	Driver string // sqlite|postgres
	URL    string // file path (or :memory:) for sqlite, DSN for postgres
	Logger logger.Logger
}

// Open initializes the GORM connection and brings the schema up to date.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	dialector, gooseDialect, err := dialectorFor(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	// Route SQL logging through the application logger.
	gormLog := gormlogger.New(
		zap.NewStdLog(cfg.Logger.Zap()),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLog,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	if strings.EqualFold(cfg.Driver, DriverSQLite) {
		// SQLite is a single-writer engine, and every :memory: connection is its own database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := Migrate(sqlDB, gooseDialect, cfg.Logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cfg.Logger.Info("Database ready", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB, dialect string, log logger.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(log.Zap()))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// Close closes the database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func dialectorFor(driver, url string) (gorm.Dialector, string, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite:
		if url == "" {
			url = "med_reminder.db"
		}
		return sqlite.Open(sqliteDSN(url)), "sqlite3", nil
	case DriverPostgres:
		if url == "" {
			return nil, "", fmt.Errorf("postgres requires a DATABASE_URL")
		}
		return postgres.Open(url), "postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func sqliteDSN(path string) string {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}
