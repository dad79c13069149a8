package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mfenwick/couchtv/internal/app"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig mirrors the optional TOML config file.
type fileConfig struct {
	Catalog        string `toml:"catalog"`
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	Footer         bool   `toml:"footer"`
	Verbose        bool   `toml:"verbose"`
	RefreshSeconds int    `toml:"refresh_seconds"`
	Logging        struct {
		File  string `toml:"file"`
		Trace bool   `toml:"trace"`
	} `toml:"logging"`
}

const (
	envConfigPath  = "COUCHTV_CONFIG"
	envCatalogPath = "COUCHTV_CATALOG"
	envWidth       = "COUCHTV_WIDTH"
	envHeight      = "COUCHTV_HEIGHT"
	envShowFooter  = "COUCHTV_FOOTER"
	envVerbose     = "COUCHTV_VERBOSE"
	envTrace       = "COUCHTV_TRACE"
	envLogFile     = "COUCHTV_LOG_FILE"
	envRefresh     = "COUCHTV_REFRESH_SECONDS"
)

const defaultCatalogPath = "couchtv.db"

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flags over environment over config file over built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	defaults := fileConfig{
		Catalog:        defaultCatalogPath,
		RefreshSeconds: 30,
	}
	if path := configFilePath(args, env); path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		mergeFile(&defaults, loaded)
	}

	fs := flag.NewFlagSet("couchtv", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", "", "path to a TOML config file")
	catalogPath := fs.String("catalog", envOrDefault(env, envCatalogPath, defaults.Catalog), "path to the channel catalog database")
	width := fs.Int("width", envOrInt(env, envWidth, defaults.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, defaults.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, defaults.Footer), "enable footer hint row")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, defaults.Verbose), "print advisory messages for actions")
	trace := fs.Bool("trace", envOrBool(env, envTrace, defaults.Logging.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaults.Logging.File), "path to the log file")
	refresh := fs.Int("refresh", envOrInt(env, envRefresh, defaults.RefreshSeconds), "lineup refresh interval in seconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *refresh <= 0 {
		return Config{}, fmt.Errorf("refresh must be > 0 (got %d)", *refresh)
	}

	cfg := Config{
		App: app.Config{
			CatalogPath:     *catalogPath,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
			RefreshInterval: time.Duration(*refresh) * time.Second,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"catalog": *catalogPath,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"verbose": strconv.FormatBool(*verbose),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
			"refresh": strconv.Itoa(*refresh),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configFilePath resolves the config file location before the main flag
// parse, since its contents supply flag defaults.
func configFilePath(args []string, env map[string]string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return env[envConfigPath]
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

func mergeFile(dst *fileConfig, src fileConfig) {
	if src.Catalog != "" {
		dst.Catalog = src.Catalog
	}
	if src.Width > 0 {
		dst.Width = src.Width
	}
	if src.Height > 0 {
		dst.Height = src.Height
	}
	if src.Footer {
		dst.Footer = true
	}
	if src.Verbose {
		dst.Verbose = true
	}
	if src.RefreshSeconds > 0 {
		dst.RefreshSeconds = src.RefreshSeconds
	}
	if src.Logging.File != "" {
		dst.Logging.File = src.Logging.File
	}
	if src.Logging.Trace {
		dst.Logging.Trace = true
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.CatalogPath) == "" {
		return fmt.Errorf("catalog path must not be empty")
	}
	return nil
}
