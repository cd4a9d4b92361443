package psql

import (
	"context"
	"fmt"
	"time"

	"notes/notes/config"
	"notes/notes/sources/psql/models"
	"notes/notes/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// ConnectionError means the database could not be reached or prepared.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "database connection failed: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Schema namespaces every table. Empty uses the connection's search path.
	Schema          string
	PoolSize        int
	ConnMaxLifetime time.Duration
}

type Database struct {
	DB     *gorm.DB
	schema string
}

// NewDatabase connects to postgres with a bounded pool and creates the schema.
func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	logging.AppLogger.Info("connecting to database",
		zap.String("url", cfg.RedactedConnectionString()),
		zap.Int("pool_size", cfg.DBPoolSize),
	)

	db, err := Open(ctx, postgres.Open(cfg.BuildConnectionString()), Options{
		Schema:          cfg.DBSchema,
		PoolSize:        cfg.DBPoolSize,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Err: err}
	}
	return db, nil
}

// Open wraps any gorm dialector. The pool never grows past PoolSize.
func Open(ctx context.Context, dialector gorm.Dialector, opts Options) (*Database, error) {
	naming := schema.NamingStrategy{}
	if opts.Schema != "" {
		naming.TablePrefix = opts.Schema + "."
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy:       naming,
		Logger:               newGormLogger(),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	sqlDB.SetMaxOpenConns(opts.PoolSize)
	sqlDB.SetMaxIdleConns(opts.PoolSize)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Err: err}
	}
	return &Database{DB: db, schema: opts.Schema}, nil
}

// CreateSchema is idempotent: it creates the namespace and the notes table
// only when they are absent.
func (db *Database) CreateSchema(ctx context.Context) error {
	tx := db.DB.WithContext(ctx)
	if db.schema != "" {
		if err := tx.Exec("CREATE SCHEMA IF NOT EXISTS ?", clause.Table{Name: db.schema}).Error; err != nil {
			return fmt.Errorf("failed to create schema %q: %w", db.schema, err)
		}
	}
	if err := tx.AutoMigrate(&models.Note{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logging.ErrorLogger.Error("failed to close database", zap.Error(err))
	}
}

func newGormLogger() logger.Interface {
	return logger.New(
		zap.NewStdLog(logging.AppLogger),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
