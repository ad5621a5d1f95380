package setup

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values of DBOptions.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DBOptions selects and locates the relational backend.
type DBOptions struct {
	Driver string
	// DSN, when set, is passed to the driver unchanged.
	DSN string
	// Path of the sqlite database file.
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// InitDB opens the database described by opts and configures the pool.
func InitDB(opts DBOptions, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Discard
	if log != nil {
		gormLogger = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		NamingStrategy: NamingConvention(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if log != nil {
		log.WithField("driver", opts.Driver).Info("Database connected")
	}
	return db, nil
}

func dialectorFor(opts DBOptions) (gorm.Dialector, error) {
	dsn, err := buildDSN(opts)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(opts.Driver) {
	case DriverSQLite, "":
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opts.Driver)
	}
}

// buildDSN returns opts.DSN when set and otherwise assembles one from the
// individual fields.
func buildDSN(opts DBOptions) (string, error) {
	if opts.DSN != "" {
		return opts.DSN, nil
	}
	switch strings.ToLower(opts.Driver) {
	case DriverSQLite, "":
		path := opts.Path
		if path == "" {
			path = "qa_forum.db"
		}
		// Foreign keys are off by default in sqlite.
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path), nil
	case DriverMySQL:
		if opts.User == "" {
			return "", fmt.Errorf("DB_USER environment variable not set")
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			opts.User, opts.Password, valueOr(opts.Host, "127.0.0.1"), valueOr(opts.Port, "3306"), valueOr(opts.Name, "qa_forum")), nil
	case DriverPostgres:
		if opts.User == "" {
			return "", fmt.Errorf("DB_USER environment variable not set")
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			valueOr(opts.Host, "localhost"), valueOr(opts.Port, "5432"), opts.User, opts.Password, valueOr(opts.Name, "qa_forum")), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", opts.Driver)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
