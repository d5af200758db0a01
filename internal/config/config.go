// Package config reads farmbook's settings. Each value comes from its
// command-line flag if set, then its FARMBOOK_* environment variable, then
// the default.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Config holds the process configuration.
type Config struct {
	DBPath    string
	Addr      string
	User      string // account created with a generated password on first run
	LogPath   string
	LogLevel  string
	LogFormat string

	LoginRPS   float64 // login attempts per second per client
	LoginBurst int
	TokenTTL   time.Duration
}

const usage = `Usage: farmbook [flags]

Flags:
  -d, -db <path>          SQLite database path (default: farmbook.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        create this account on first run (default: none)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -log-level <level>  debug, info, warn or error (default: info)
      -log-format <fmt>   text or json (default: text)
      -login-rps <n>      login attempts per second per client (default: 1)
      -login-burst <n>    login attempts allowed in a burst (default: 5)
      -token-ttl <dur>    lifetime of issued tokens (default: 24h)
  -h, -help               show this help and exit

Every flag can also be set with FARMBOOK_<NAME>, e.g. FARMBOOK_DB or FARMBOOK_LOG_LEVEL.
`

// Load parses args (without the program name). getenv is usually os.Getenv.
// It returns flag.ErrHelp when -h was given.
func Load(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("farmbook", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { fmt.Fprint(output, usage) }

	var dbPath, addr, user, logPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")
	fs.StringVar(&user, "user", "", "")
	fs.StringVar(&user, "u", "", "")
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	logLevel := fs.String("log-level", "", "")
	logFormat := fs.String("log-format", "", "")
	loginRPS := fs.String("login-rps", "", "")
	loginBurst := fs.String("login-burst", "", "")
	tokenTTL := fs.String("token-ttl", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg := &Config{
		DBPath:    value(dbPath, getenv("FARMBOOK_DB"), "farmbook.sqlite3"),
		Addr:      value(addr, getenv("FARMBOOK_ADDR"), ":8080"),
		User:      value(user, getenv("FARMBOOK_USER"), ""),
		LogPath:   value(logPath, getenv("FARMBOOK_LOG"), ""),
		LogLevel:  value(*logLevel, getenv("FARMBOOK_LOG_LEVEL"), "info"),
		LogFormat: value(*logFormat, getenv("FARMBOOK_LOG_FORMAT"), "text"),
	}

	var err error
	rps := value(*loginRPS, getenv("FARMBOOK_LOGIN_RPS"), "1")
	if cfg.LoginRPS, err = strconv.ParseFloat(rps, 64); err != nil || cfg.LoginRPS <= 0 {
		return nil, fmt.Errorf("invalid login rate %q", rps)
	}

	burst := value(*loginBurst, getenv("FARMBOOK_LOGIN_BURST"), "5")
	if cfg.LoginBurst, err = strconv.Atoi(burst); err != nil || cfg.LoginBurst < 1 {
		return nil, fmt.Errorf("invalid login burst %q", burst)
	}

	ttl := value(*tokenTTL, getenv("FARMBOOK_TOKEN_TTL"), "24h")
	if cfg.TokenTTL, err = time.ParseDuration(ttl); err != nil || cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid token lifetime %q", ttl)
	}

	return cfg, nil
}

// value returns the first non-empty of flagValue, envValue and def.
func value(flagValue, envValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue != "" {
		return envValue
	}
	return def
}
