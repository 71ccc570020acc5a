package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/ghflow/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRepo         = "GHFLOW_REPO"
	envPR           = "GHFLOW_PR"
	envConfigFile   = "GHFLOW_CONFIG"
	envMergeMethod  = "GHFLOW_MERGE_METHOD"
	envTickRate     = "GHFLOW_TICK_RATE"
	envNotification = "GHFLOW_NOTIFICATION_DURATION"
	envTaskTimeout  = "GHFLOW_TASK_TIMEOUT"
	envAutoRefresh  = "GHFLOW_AUTO_REFRESH"
	envThrottle     = "GHFLOW_THROTTLE"
	envTrace        = "GHFLOW_TRACE"
	envLogFile      = "GHFLOW_LOG_FILE"
)

const (
	defaultMergeMethod  = "squash"
	defaultTickRate     = 100 * time.Millisecond
	defaultNotification = 3 * time.Second
	defaultTaskTimeout  = 30 * time.Second
	defaultThrottle     = 50 * time.Millisecond
)

// fileConfig mirrors the optional YAML configuration file. Durations are kept
// as raw strings and parsed in setDefaults.
type fileConfig struct {
	Repo            string `yaml:"repo"`
	MergeMethod     string `yaml:"merge_method"`
	RawTickRate     string `yaml:"tick_rate"`
	RawNotification string `yaml:"notification_duration"`
	RawTaskTimeout  string `yaml:"task_timeout"`
	RawAutoRefresh  string `yaml:"auto_refresh"`
	RawThrottle     string `yaml:"throttle"`
	LogFile         string `yaml:"log_file"`
	Trace           *bool  `yaml:"trace"`

	tickRate     time.Duration
	notification time.Duration
	taskTimeout  time.Duration
	autoRefresh  time.Duration
	throttle     time.Duration
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in order: flag, environment, config file, default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	ev := envValues{env: env}

	fset := flag.NewFlagSet("ghflow", flag.ContinueOnError)
	fset.SetOutput(new(strings.Builder))

	repo := fset.String("repo", envOrDefault(env, envRepo, ""), "repository as owner/name (defaults to the origin remote)")
	pr := fset.String("pr", envOrDefault(env, envPR, ""), "pull request number or URL to open on startup")
	file := fset.String("config", envOrDefault(env, envConfigFile, defaultConfigPath(env)), "path to the YAML config file")
	mergeMethod := fset.String("merge-method", envOrDefault(env, envMergeMethod, defaultMergeMethod), "merge strategy: squash, merge or rebase")
	tickRate := fset.Duration("tick", ev.duration(envTickRate, defaultTickRate), "UI tick interval")
	notification := fset.Duration("notify", ev.duration(envNotification, defaultNotification), "how long notifications stay visible")
	taskTimeout := fset.Duration("task-timeout", ev.duration(envTaskTimeout, defaultTaskTimeout), "deadline for each background request")
	autoRefresh := fset.Duration("auto-refresh", ev.duration(envAutoRefresh, 0), "refresh the current tab at this interval (0 disables)")
	throttle := fset.Duration("throttle", ev.duration(envThrottle, defaultThrottle), "minimum spacing between gh invocations")
	trace := fset.Bool("trace", ev.boolean(envTrace, false), "enable verbose JSON trace logging")
	logFile := fset.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if ev.err != nil {
		return Config{}, ev.err
	}
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	_, fileExplicit := env[envConfigFile]
	fileExplicit = fileExplicit || explicit["config"]

	fc, err := loadFile(*file, fileExplicit)
	if err != nil {
		return Config{}, err
	}
	if fc != nil {
		unset := func(name, key string) bool {
			if explicit[name] {
				return false
			}
			_, ok := env[key]
			return !ok
		}
		if fc.Repo != "" && unset("repo", envRepo) {
			*repo = fc.Repo
		}
		if fc.MergeMethod != "" && unset("merge-method", envMergeMethod) {
			*mergeMethod = fc.MergeMethod
		}
		if fc.RawTickRate != "" && unset("tick", envTickRate) {
			*tickRate = fc.tickRate
		}
		if fc.RawNotification != "" && unset("notify", envNotification) {
			*notification = fc.notification
		}
		if fc.RawTaskTimeout != "" && unset("task-timeout", envTaskTimeout) {
			*taskTimeout = fc.taskTimeout
		}
		if fc.RawAutoRefresh != "" && unset("auto-refresh", envAutoRefresh) {
			*autoRefresh = fc.autoRefresh
		}
		if fc.RawThrottle != "" && unset("throttle", envThrottle) {
			*throttle = fc.throttle
		}
		if fc.LogFile != "" && unset("log-file", envLogFile) {
			*logFile = fc.LogFile
		}
		if fc.Trace != nil && unset("trace", envTrace) {
			*trace = *fc.Trace
		}
	}

	cfg := Config{
		App: app.Config{
			Repo:                 *repo,
			PR:                   *pr,
			MergeMethod:          *mergeMethod,
			TickRate:             *tickRate,
			NotificationDuration: *notification,
			TaskTimeout:          *taskTimeout,
			AutoRefresh:          *autoRefresh,
			Throttle:             *throttle,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"repo":        *repo,
			"pr":          *pr,
			"config":      *file,
			"mergeMethod": *mergeMethod,
			"tick":        tickRate.String(),
			"notify":      notification.String(),
			"taskTimeout": taskTimeout.String(),
			"autoRefresh": autoRefresh.String(),
			"throttle":    throttle.String(),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}
	if fc != nil {
		cfg.File = *file
	}

	return cfg, nil
}

// loadFile reads the YAML config. A missing file is only an error when its
// path was given explicitly.
func loadFile(path string, required bool) (*fileConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := fc.setDefaults(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &fc, nil
}

func (c *fileConfig) setDefaults() error {
	fields := []struct {
		name string
		raw  string
		into *time.Duration
	}{
		{"tick_rate", c.RawTickRate, &c.tickRate},
		{"notification_duration", c.RawNotification, &c.notification},
		{"task_timeout", c.RawTaskTimeout, &c.taskTimeout},
		{"auto_refresh", c.RawAutoRefresh, &c.autoRefresh},
		{"throttle", c.RawThrottle, &c.throttle},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
		*f.into = d
	}
	return nil
}

func defaultConfigPath(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return filepath.Join(dir, "ghflow", "config.yaml")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "ghflow", "config.yaml")
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		// an empty value counts as unset
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
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

// envValues reads typed environment values, keeping the first parse error.
type envValues struct {
	env map[string]string
	err error
}

func (e *envValues) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.env[key]
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
		}
		return fallback
	}
	return parsed
}

func (e *envValues) boolean(key string, fallback bool) bool {
	v, ok := e.env[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("%s: invalid boolean %q: %w", key, v, err)
		}
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

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	switch cfg.App.MergeMethod {
	case "squash", "merge", "rebase":
	default:
		return fmt.Errorf("invalid merge method %q (squash|merge|rebase)", cfg.App.MergeMethod)
	}
	if cfg.App.TickRate <= 0 {
		return fmt.Errorf("tick must be positive (got %s)", cfg.App.TickRate)
	}
	if cfg.App.NotificationDuration <= 0 {
		return fmt.Errorf("notify must be positive (got %s)", cfg.App.NotificationDuration)
	}
	if cfg.App.TaskTimeout <= 0 {
		return fmt.Errorf("task-timeout must be positive (got %s)", cfg.App.TaskTimeout)
	}
	if cfg.App.AutoRefresh < 0 {
		return fmt.Errorf("auto-refresh must be >= 0 (got %s)", cfg.App.AutoRefresh)
	}
	if cfg.App.Throttle < 0 {
		return fmt.Errorf("throttle must be >= 0 (got %s)", cfg.App.Throttle)
	}
	return nil
}
