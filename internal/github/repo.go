package github

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	if r.Owner == "" && r.Name == "" {
		return ""
	}
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the repository is unset.
func (r Repo) IsZero() bool {
	return r.Owner == "" || r.Name == ""
}

// ParseRepo parses "owner/name".
func ParseRepo(s string) (Repo, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("invalid repository %q (want owner/name)", s)
	}
	return Repo{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
}

// DetectRepository reads the origin remote of the git checkout in dir.
func DetectRepository(ctx context.Context, dir string) (Repo, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "remote", "get-url", "origin")
	out, err := cmd.Output()
	if err != nil {
		return Repo{}, fmt.Errorf("no git remote found: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts owner/name from SSH or HTTPS GitHub remotes.
func ParseRemoteURL(url string) (Repo, error) {
	var path string
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		path = strings.TrimPrefix(url, "git@github.com:")
	case strings.HasPrefix(url, "ssh://git@github.com/"):
		path = strings.TrimPrefix(url, "ssh://git@github.com/")
	case strings.HasPrefix(url, "https://github.com/"):
		path = strings.TrimPrefix(url, "https://github.com/")
	case strings.HasPrefix(url, "http://github.com/"):
		path = strings.TrimPrefix(url, "http://github.com/")
	default:
		return Repo{}, fmt.Errorf("not a GitHub remote: %s", url)
	}
	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	repo, err := ParseRepo(path)
	if err != nil {
		return Repo{}, fmt.Errorf("invalid GitHub remote: %s", url)
	}
	return repo, nil
}

// PRSelector is the initial pull request requested on the command line.
// Repo is set when the selector was a full URL.
type PRSelector struct {
	Number int
	Repo   Repo
}

// ParsePRSelector accepts a pull request number or a URL of the form
// https://github.com/owner/name/pull/N.
func ParsePRSelector(s string) (PRSelector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PRSelector{}, nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "#")); err == nil {
		if n <= 0 {
			return PRSelector{}, fmt.Errorf("invalid pull request number %d", n)
		}
		return PRSelector{Number: n}, nil
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	trimmed = strings.TrimPrefix(trimmed, "www.")
	if !strings.HasPrefix(trimmed, "github.com/") {
		return PRSelector{}, fmt.Errorf("invalid pull request %q (want a number or GitHub URL)", s)
	}
	parts := strings.Split(strings.TrimPrefix(trimmed, "github.com/"), "/")
	if len(parts) < 4 || parts[2] != "pull" {
		return PRSelector{}, fmt.Errorf("invalid pull request URL %q", s)
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil || n <= 0 {
		return PRSelector{}, fmt.Errorf("invalid pull request URL %q", s)
	}
	return PRSelector{Number: n, Repo: Repo{Owner: parts[0], Name: parts[1]}}, nil
}
