package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool defaults.  Availability reads fan out per garage, so the open limit
// must comfortably exceed the garage count times the expected request rate.
const (
	defaultMaxConns = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open connects to the MySQL server holding the truck, layout and changelog
// tables and verifies the connection before the service starts serving.
// Pool limits come from configuration; non-positive or inconsistent values
// fall back to the defaults above.
func Open(user, pass, host, port, name string, maxOpen, maxIdle int) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps audit and
	// assignment timestamps consistent across replicas
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	open, idle := poolLimits(maxOpen, maxIdle)
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// poolLimits normalizes configured pool sizes: non-positive values take the
// default and the idle limit never exceeds the open limit.
func poolLimits(maxOpen, maxIdle int) (int, int) {
	if maxOpen <= 0 {
		maxOpen = defaultMaxConns
	}
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	return maxOpen, maxIdle
}
