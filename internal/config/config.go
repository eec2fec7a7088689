// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: environment variables alone, falling back to env-default
//
// The defaults point at the same database the form has always used
// (MySQL on localhost:3306, schema crud_db, user root), so the window
// starts with no configuration at all on a developer machine.
package config

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
)

// Supported values of Database.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Database   `yaml:"database"`
	HTTPServer `yaml:"http_server"`
}

// Database holds the connection parameters handed to the store at
// construction. Nothing else in the program reads them.
type Database struct {
	Driver   string `yaml:"driver"   env:"DB_DRIVER"   env-default:"mysql"`
	Host     string `yaml:"host"     env:"DB_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"DB_PORT"     env-default:"3306"`
	User     string `yaml:"user"     env:"DB_USER"     env-default:"root"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-default:"crud_db"`

	// Path is the SQLite file; only read when Driver is "sqlite".
	Path string `yaml:"path" env:"DB_PATH" env-default:"storage/students.db"`

	// ConnectTimeout bounds dialing a fresh connection. Zero means the
	// driver default.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" env-default:"5s"`
}

// HTTPServer holds settings for the local server that renders the window.
type HTTPServer struct {
	// Addr is the TCP address the window is served on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// MustLoad reads, validates, and returns the application config.
// Functions prefixed with "Must" are allowed to fatal on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, or only the environment when path is
// empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d Database) validate() error {
	switch d.Driver {
	case DriverMySQL, DriverPostgres:
		if d.Host == "" || d.Name == "" {
			return fmt.Errorf("database %s needs host and name", d.Driver)
		}
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("database sqlite needs path")
		}
	default:
		return fmt.Errorf("unknown database driver %q", d.Driver)
	}
	return nil
}

// DSN builds the data source name for the configured driver.
func (d Database) DSN() string {
	addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	switch d.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = d.Name
		mc.Timeout = d.ConnectTimeout
		// UPDATE reports matched rather than changed rows, so rewriting
		// identical values is not mistaken for a missing id.
		mc.ClientFoundRows = true
		return mc.FormatDSN()

	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   addr,
			Path:   "/" + d.Name,
		}
		if d.ConnectTimeout > 0 {
			q := url.Values{}
			// pgx takes whole seconds and treats 0 as "no timeout".
			secs := int(math.Ceil(d.ConnectTimeout.Seconds()))
			q.Set("connect_timeout", strconv.Itoa(secs))
			u.RawQuery = q.Encode()
		}
		return u.String()

	default:
		return d.Path
	}
}
