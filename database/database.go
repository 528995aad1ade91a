package database

import (
	"fmt"
	"time"

	"cafeapi/config"
	"cafeapi/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the configured store, verifies the connection and makes
// sure the cafe table exists. A SQLite file is created if it is missing.
func Open(conf config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	if conf.Driver == "" {
		conf.Driver = DriverSQLite
	}

	dialector, err := dialectorFor(conf)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	if conf.Driver == DriverSQLite {
		// One connection keeps writes to the file serialized and keeps
		// in-memory databases alive across queries.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(time.Duration(0))
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlDB.Ping -> %w", err)
	}

	if err := InitTables(db); err != nil {
		return nil, fmt.Errorf("InitTables -> %w", err)
	}

	log.Info("database ready", zap.String("driver", conf.Driver))
	return db, nil
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&model.Cafe{})
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}
	return sqlDB.Close()
}

func dialectorFor(conf config.DatabaseConfig) (gorm.Dialector, error) {
	if conf.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	switch conf.Driver {
	case DriverSQLite:
		return sqlite.Open(conf.DSN), nil
	case DriverPostgres:
		return postgres.Open(conf.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}
