package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

// PostgresConfig is the connection and pool setup of the billing database.
type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	ApplicationName string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// LoadPostgresConfig reads database.* settings. Pool sizes below one fall back
// to the defaults.
func LoadPostgresConfig() *PostgresConfig {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "tourdesk")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.application_name", "tourdesk-billing")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	viper.SetDefault("database.connect_timeout", 10*time.Second)

	cfg := &PostgresConfig{
		Host:            viper.GetString("database.host"),
		Port:            viper.GetString("database.port"),
		User:            viper.GetString("database.user"),
		Password:        viper.GetString("database.password"),
		Name:            viper.GetString("database.name"),
		SSLMode:         viper.GetString("database.ssl_mode"),
		ApplicationName: viper.GetString("database.application_name"),
		MaxOpenConns:    viper.GetInt("database.max_open_conns"),
		MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: viper.GetDuration("database.conn_max_lifetime"),
		ConnMaxIdleTime: viper.GetDuration("database.conn_max_idle_time"),
		ConnectTimeout:  viper.GetDuration("database.connect_timeout"),
	}
	if cfg.MaxOpenConns < 1 {
		log.Printf("[CONFIG] Invalid database.max_open_conns %d, using 20", cfg.MaxOpenConns)
		cfg.MaxOpenConns = 20
	}
	if cfg.MaxIdleConns < 1 || cfg.MaxIdleConns > cfg.MaxOpenConns {
		cfg.MaxIdleConns = min(5, cfg.MaxOpenConns)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return cfg
}

// DSN renders the lib/pq connection URL. Credentials are escaped.
func (c *PostgresConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", fmt.Sprint(secs))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Configure applies the pool limits to db and pings it within ConnectTimeout.
func Configure(ctx context.Context, db *sql.DB, cfg *PostgresConfig) error {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping %s@%s:%s/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Name, err)
	}
	return nil
}

// InitDatabase opens the billing database and checks it is reachable.
func InitDatabase(ctx context.Context, cfg *PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Configure(ctx, db, cfg); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[DATABASE] Connected to %s:%s/%s (max_open=%d)", cfg.Host, cfg.Port, cfg.Name, cfg.MaxOpenConns)
	return db, nil
}
