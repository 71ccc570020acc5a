// Package auth resolves the GitHub credential handed to the gh CLI.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNoCredential is returned when no source yields a token.
var ErrNoCredential = errors.New("no GitHub token found: set GITHUB_TOKEN or run `gh auth login`")

var tokenKeys = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Credential is a resolved token and where it came from.
type Credential struct {
	Token  string
	Source string
}

// Options describes where to look. Zero values use the process environment,
// working directory and home directory.
type Options struct {
	Environ []string
	Dir     string
	Home    string
	// GHToken runs `gh auth token`; nil uses the real binary.
	GHToken func(ctx context.Context) (string, error)
}

// Resolve tries, in order: environment variables, .env.local and .env in
// Dir, the gh hosts.yml file, and `gh auth token`.
func Resolve(ctx context.Context, opts Options) (Credential, error) {
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	env := make(map[string]string, len(opts.Environ))
	for _, entry := range opts.Environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	if opts.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.Dir = wd
		}
	}
	if opts.Home == "" {
		opts.Home, _ = os.UserHomeDir()
	}
	if opts.GHToken == nil {
		opts.GHToken = ghAuthToken
	}

	if token, key := lookup(env); token != "" {
		return Credential{Token: token, Source: "env " + key}, nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if token := fromDotenv(filepath.Join(opts.Dir, name)); token != "" {
			return Credential{Token: token, Source: name}, nil
		}
	}
	if path := hostsPath(env, opts.Home); path != "" {
		if token := fromHosts(path); token != "" {
			return Credential{Token: token, Source: path}, nil
		}
	}
	if token, err := opts.GHToken(ctx); err == nil && token != "" {
		return Credential{Token: token, Source: "gh auth token"}, nil
	}
	return Credential{}, ErrNoCredential
}

func lookup(values map[string]string) (string, string) {
	for _, key := range tokenKeys {
		if v := strings.TrimSpace(values[key]); v != "" {
			return v, key
		}
	}
	return "", ""
}

func fromDotenv(path string) string {
	values, err := godotenv.Read(path)
	if err != nil {
		return ""
	}
	token, _ := lookup(values)
	return token
}

type hostEntry struct {
	OAuthToken string `yaml:"oauth_token"`
	User       string `yaml:"user"`
}

func hostsPath(env map[string]string, home string) string {
	if dir := env["GH_CONFIG_DIR"]; dir != "" {
		return filepath.Join(dir, "hosts.yml")
	}
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return filepath.Join(dir, "gh", "hosts.yml")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "gh", "hosts.yml")
}

// fromHosts reads the github.com oauth_token. Recent gh versions keep the
// token in the system keyring instead, leaving this empty.
func fromHosts(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var hosts map[string]hostEntry
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return ""
	}
	return strings.TrimSpace(hosts["github.com"].OAuthToken)
}

func ghAuthToken(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("gh auth token: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
