package config

import (
	"fmt"

	"eathub/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN returns the configured URL, or one assembled from the host fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	case "sqlite":
		return d.Database + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

func dialector(d DatabaseConfig) (gorm.Dialector, error) {
	switch d.Driver {
	case "mysql":
		return mysql.Open(d.DSN()), nil
	case "postgres":
		return postgres.Open(d.DSN()), nil
	case "sqlite":
		return sqlite.Open(d.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
}

func logMode(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// OpenDatabase connects without migrating.
func OpenDatabase(d DatabaseConfig) (*gorm.DB, error) {
	dial, err := dialector(d)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logMode(d.LogLevel)),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func SetupDatabase(d DatabaseConfig) (*gorm.DB, error) {
	db, err := OpenDatabase(d)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SetupRedisConnection returns nil when no address is configured.
func SetupRedisConnection(r RedisConfig) *redis.Client {
	if r.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.Database,
	})
}
