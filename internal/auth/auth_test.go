package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func noGH(context.Context) (string, error) {
	return "", errors.New("gh unavailable")
}

func TestResolvePrefersEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "GITHUB_TOKEN=from-file\n")
	cred, err := Resolve(context.Background(), Options{
		Environ: []string{"GH_TOKEN=from-gh-env"},
		Dir:     dir,
		Home:    dir,
		GHToken: noGH,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Token != "from-gh-env" || cred.Source != "env GH_TOKEN" {
		t.Fatalf("unexpected credential %#v", cred)
	}
}

func TestResolveDotenvLocalFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "GITHUB_TOKEN=plain\n")
	writeFile(t, filepath.Join(dir, ".env.local"), "# local\nGH_TOKEN=\"quoted-local\"\n")
	cred, err := Resolve(context.Background(), Options{Environ: []string{}, Dir: dir, Home: dir, GHToken: noGH})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Token != "quoted-local" || cred.Source != ".env.local" {
		t.Fatalf("unexpected credential %#v", cred)
	}
}

func TestResolveHostsFile(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "gh", "hosts.yml"), "github.com:\n    oauth_token: gho_abc\n    user: mona\n")
	cred, err := Resolve(context.Background(), Options{Environ: []string{}, Dir: t.TempDir(), Home: home, GHToken: noGH})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Token != "gho_abc" {
		t.Fatalf("expected hosts token, got %#v", cred)
	}
}

func TestResolveFallsBackToGH(t *testing.T) {
	cred, err := Resolve(context.Background(), Options{
		Environ: []string{},
		Dir:     t.TempDir(),
		Home:    t.TempDir(),
		GHToken: func(context.Context) (string, error) { return "keyring-token", nil },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Token != "keyring-token" || cred.Source != "gh auth token" {
		t.Fatalf("unexpected credential %#v", cred)
	}
}

func TestResolveNothingFound(t *testing.T) {
	_, err := Resolve(context.Background(), Options{Environ: []string{}, Dir: t.TempDir(), Home: t.TempDir(), GHToken: noGH})
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
