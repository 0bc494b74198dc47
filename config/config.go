// Package config handles the server configuration: defaults, an optional ini file overlay and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/util"
)

const (
	BackendJSON = "json"
	BackendSQL  = "sql"
)

type Config struct {
	Listen          string        // ip:port
	Base            string        // URL prefix which is stripped from every request
	Backend         string        // BackendJSON or BackendSQL
	DB              string        // database url for BackendSQL, see github.com/xo/dburl
	DataDir         string        // directory for BackendJSON
	Domain          string        // required email suffix at registration
	CookieName      string
	SessionLifetime time.Duration // absolute, not extended by activity
	BcryptCost      int
	LogLevel        string
	LogFormat       string // text or json
	Seed            bool   // insert demo data into empty stores
}

func (c *Config) LoadDefaults() {
	c.Listen = "127.0.0.1:3000"
	c.Base = ""
	c.Backend = BackendJSON
	c.DB = "sqlite3:blog.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL"
	c.DataDir = "data"
	c.Domain = core.DefaultDomain
	c.CookieName = core.DefaultCookieName
	c.SessionLifetime = core.DefaultSessionLifetime
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Seed = false
}

// LoadIni overlays the keys of the default section of an ini file. Keys are named like the flags.
func (c *Config) LoadIni(filename string) error {

	values, err := util.Ini(filename)
	if err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}

	for key, value := range values {
		value = strings.TrimSpace(value)
		switch key {
		case "listen":
			c.Listen = value
		case "base":
			c.Base = value
		case "backend":
			c.Backend = value
		case "db":
			c.DB = value
		case "data-dir":
			c.DataDir = value
		case "domain":
			c.Domain = value
		case "cookie-name":
			c.CookieName = value
		case "session-lifetime":
			if c.SessionLifetime, err = time.ParseDuration(value); err != nil {
				return fmt.Errorf("config file: %s: %w", key, err)
			}
		case "bcrypt-cost":
			if c.BcryptCost, err = strconv.Atoi(value); err != nil {
				return fmt.Errorf("config file: %s: %w", key, err)
			}
		case "log-level":
			c.LogLevel = value
		case "log-format":
			c.LogFormat = value
		case "seed":
			if c.Seed, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("config file: %s: %w", key, err)
			}
		default:
			return fmt.Errorf("config file: unknown key %q", key)
		}
	}

	return nil
}

// RegisterFlags adds a flag for every field. The current values are the defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Listen, "listen", c.Listen, "serve HTTP content at this `ip:port`")
	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	fs.StringVar(&c.Base, "base", c.Base, "strip off this `prefix` from every HTTP request")
	fs.StringVar(&c.Backend, "backend", c.Backend, "storage `backend`, json or sql")
	fs.StringVar(&c.DB, "db", c.DB, "sql database url, see github.com/xo/dburl")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "`directory` of the json backend")
	fs.StringVar(&c.Domain, "domain", c.Domain, "required email `suffix` at registration")
	fs.StringVar(&c.CookieName, "cookie-name", c.CookieName, "session cookie `name`")
	fs.DurationVar(&c.SessionLifetime, "session-lifetime", c.SessionLifetime, "absolute session `lifetime`")
	fs.IntVar(&c.BcryptCost, "bcrypt-cost", c.BcryptCost, "bcrypt `cost` for new password hashes")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	fs.BoolVar(&c.Seed, "seed", c.Seed, "insert demo users and articles if the storage is empty")
}

// Validate checks values which flag and ini parsing can't check.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON:
		if c.DataDir == "" {
			return errors.New("json backend requires a data directory")
		}
	case BackendSQL:
		if c.DB == "" {
			return errors.New("sql backend requires a database url")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.SessionLifetime <= 0 {
		return errors.New("session lifetime must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range", c.BcryptCost)
	}
	if !strings.HasPrefix(c.Domain, "@") {
		return fmt.Errorf("domain %q must start with @", c.Domain)
	}
	return nil
}

// configFile looks for "-config path" or "-config=path" in args, so the file can be loaded before the flags are parsed.
func configFile(args []string) string {
	for i, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if len(name) == len(arg) || len(arg)-len(name) > 2 {
			continue // not a flag
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
	}
	return ""
}

// Load applies defaults, the ini file given by -config and the flags in args. The caller may register additional flags on fs before.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {

	var c = &Config{}
	c.LoadDefaults()

	if filename := configFile(args); filename != "" {
		if err := c.LoadIni(filename); err != nil {
			return nil, err
		}
	}

	fs.String("config", "", "load settings from this ini `file` before applying flags")
	c.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
