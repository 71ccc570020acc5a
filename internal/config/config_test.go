package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"HOME=" + t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MergeMethod != "squash" {
		t.Fatalf("expected squash merge default, got %q", cfg.App.MergeMethod)
	}
	if cfg.App.TickRate != 100*time.Millisecond || cfg.App.NotificationDuration != 3*time.Second {
		t.Fatalf("unexpected timing defaults %#v", cfg.App)
	}
	if cfg.App.AutoRefresh != 0 {
		t.Fatalf("expected auto refresh disabled, got %s", cfg.App.AutoRefresh)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file loaded, got %q", cfg.File)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"HOME=" + t.TempDir(),
		"GHFLOW_REPO=env/repo",
		"GHFLOW_TRACE=true",
		"GHFLOW_TICK_RATE=250ms",
	}
	cfg, err := LoadArgs([]string{"--repo", "flag/repo", "--pr", "42"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Repo != "flag/repo" {
		t.Fatalf("expected flag repo, got %q", cfg.App.Repo)
	}
	if cfg.App.PR != "42" {
		t.Fatalf("expected pr 42, got %q", cfg.App.PR)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from env")
	}
	if cfg.App.TickRate != 250*time.Millisecond {
		t.Fatalf("expected tick from env, got %s", cfg.App.TickRate)
	}
	if cfg.Flags["repo"] != "flag/repo" || cfg.Flags["tick"] != "250ms" {
		t.Fatalf("unexpected flag map %#v", cfg.Flags)
	}
}

func TestLoadArgsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ghflow", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := strings.Join([]string{
		"repo: file/repo",
		"merge_method: rebase",
		"notification_duration: 5s",
		"auto_refresh: 1m",
		"trace: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArgs([]string{"--merge-method", "merge"}, []string{"XDG_CONFIG_HOME=" + dir, "GHFLOW_TRACE=false"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.File)
	}
	if cfg.App.Repo != "file/repo" {
		t.Fatalf("expected repo from file, got %q", cfg.App.Repo)
	}
	if cfg.App.MergeMethod != "merge" {
		t.Fatalf("expected flag to beat file, got %q", cfg.App.MergeMethod)
	}
	if cfg.App.NotificationDuration != 5*time.Second || cfg.App.AutoRefresh != time.Minute {
		t.Fatalf("expected durations from file, got %#v", cfg.App)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected env to beat file for trace")
	}
}

func TestLoadArgsExplicitMissingConfig(t *testing.T) {
	_, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	if err == nil {
		t.Fatalf("expected error for explicit missing config file")
	}
}

func TestLoadArgsBadDurationInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadArgs([]string{"--config", path}, nil)
	if err == nil || !strings.Contains(err.Error(), "tick_rate") {
		t.Fatalf("expected tick_rate parse error, got %v", err)
	}
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"--bogus"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"merge method", func(c *Config) { c.App.MergeMethod = "octopus" }},
		{"tick", func(c *Config) { c.App.TickRate = 0 }},
		{"notify", func(c *Config) { c.App.NotificationDuration = -time.Second }},
		{"task timeout", func(c *Config) { c.App.TaskTimeout = 0 }},
		{"auto refresh", func(c *Config) { c.App.AutoRefresh = -time.Second }},
		{"throttle", func(c *Config) { c.App.Throttle = -time.Millisecond }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadArgsMalformedEnvDuration(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"GHFLOW_TICK_RATE", "fast"},
		{"GHFLOW_TASK_TIMEOUT", "10"},
		{"GHFLOW_THROTTLE", "-"},
		{"GHFLOW_TRACE", "maybe"},
	}
	for _, tc := range cases {
		_, err := LoadArgs(nil, []string{"HOME=" + t.TempDir(), tc.key + "=" + tc.value})
		if err == nil || !strings.Contains(err.Error(), tc.key) {
			t.Fatalf("%s=%q: expected parse error naming the variable, got %v", tc.key, tc.value, err)
		}
	}
}

func TestLoadArgsEmptyEnvFallsThroughToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: 40ms\nrepo: file/repo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env := []string{"HOME=" + dir, "GHFLOW_TICK_RATE=", "GHFLOW_REPO=  "}
	cfg, err := LoadArgs([]string{"--config", path}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.TickRate != 40*time.Millisecond {
		t.Fatalf("expected tick from file when env is empty, got %s", cfg.App.TickRate)
	}
	if cfg.App.Repo != "file/repo" {
		t.Fatalf("expected repo from file when env is blank, got %q", cfg.App.Repo)
	}
}
