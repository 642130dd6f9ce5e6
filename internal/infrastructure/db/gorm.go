package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type options struct {
	log      logrus.FieldLogger
	logLevel logger.LogLevel
}

type Option func(*options)

// WithLogger routes gorm's own query logging through l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) { o.logLevel = level }
}

// Dialector picks the gorm dialector for the configured driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL, "":
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func OpenGorm(driver, dsn string, opts ...Option) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, opts...)
}

// OpenGormWithDialector opens, tunes the pool and pings before returning.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{log: logrus.StandardLogger(), logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(o.log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dial.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dial.Name(), err)
	}
	o.log.WithField("dialect", dial.Name()).Info("gorm: connected")
	return db, nil
}
