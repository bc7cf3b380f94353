package db

import (
	"fmt"
	"time"

	"pilotconnect/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// InitSQLX returns the sqlx handle used for raw read queries.
// Postgres gets its own pool with a short retry loop while the database starts;
// sqlite shares the GORM connection so both layers see the same file.
func InitSQLX(cfg *config.Config, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return WrapSQLX(orm, "sqlite3")
	}
	return InitPostgres(cfg.PostgresDSN())
}

func InitPostgres(dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// WrapSQLX exposes an open GORM pool through sqlx. driverName picks the bind style.
func WrapSQLX(orm *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
