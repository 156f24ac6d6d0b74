package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	Driver string
}

// Counts holds the number of records per catalog entity.
type Counts struct {
	Authors int64
	Genres  int64
	Books   int64
}

// NewDatabase opens (and migrates) a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.Database{Driver: config.DriverSQLite, Path: dbPath})
}

// Open connects to the configured driver and migrates the catalog schema.
func Open(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_DSN")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}

	if driver == config.DriverSQLite {
		log.Printf("Database initialized successfully at %s", cfg.Path)
	} else {
		log.Printf("Database initialized successfully (%s)", driver)
	}

	return &Database{DB: db, Driver: driver}, nil
}

// sqliteDSN waits on a locked database instead of failing, since audit
// events are written alongside request handlers.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB exposes the underlying connection pool, e.g. for session storage.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

// Ping checks that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Counts returns how many authors, genres and books are stored.
func (d *Database) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	db := d.DB.WithContext(ctx)

	if err := db.Model(&entities.Author{}).Count(&counts.Authors).Error; err != nil {
		return Counts{}, fmt.Errorf("count authors: %w", err)
	}
	if err := db.Model(&entities.Genre{}).Count(&counts.Genres).Error; err != nil {
		return Counts{}, fmt.Errorf("count genres: %w", err)
	}
	if err := db.Model(&entities.Book{}).Count(&counts.Books).Error; err != nil {
		return Counts{}, fmt.Errorf("count books: %w", err)
	}
	return counts, nil
}
