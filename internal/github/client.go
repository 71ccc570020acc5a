package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atomicstack/ghflow/internal/logging"
)

// Runner executes the gh binary with the given extra environment and
// arguments, returning stdout.
type Runner func(ctx context.Context, env []string, args ...string) ([]byte, error)

// Client talks to GitHub through the gh CLI.
type Client struct {
	repo  Repo
	token string
	run   Runner
	cache *cache

	userMu sync.Mutex
	user   string
}

// NewClient returns a client bound to repo. token is passed to gh via
// GH_TOKEN and may be empty when gh is already authenticated.
func NewClient(repo Repo, token string) *Client {
	return NewClientWithRunner(repo, token, execGH)
}

// NewClientWithRunner allows tests to substitute the gh invocation.
func NewClientWithRunner(repo Repo, token string, run Runner) *Client {
	return &Client{repo: repo, token: token, run: run, cache: newCache()}
}

// Repo returns the repository the client is bound to.
func (c *Client) Repo() Repo {
	return c.repo
}

// CheckCLI verifies that gh is installed.
func CheckCLI() error {
	if _, err := exec.LookPath("gh"); err != nil {
		return errors.New("GitHub CLI (gh) not found in PATH")
	}
	return nil
}

func execGH(ctx context.Context, env []string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) gh(ctx context.Context, args ...string) ([]byte, error) {
	logging.Debug("gh", "args", strings.Join(args, " "))
	var env []string
	if c.token != "" {
		env = []string{"GH_TOKEN=" + c.token}
	}
	return c.run(ctx, env, args...)
}

func (c *Client) ghJSON(ctx context.Context, into interface{}, args ...string) error {
	out, err := c.gh(ctx, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, into); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// CurrentUser returns the authenticated login, cached after the first call.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	c.userMu.Lock()
	defer c.userMu.Unlock()
	if c.user != "" {
		return c.user, nil
	}
	out, err := c.gh(ctx, "api", "user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	c.user = strings.TrimSpace(string(out))
	return c.user, nil
}
