package github

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

const (
	listFields   = "number,title,state,url,author,headRefName,headRefOid,baseRefName,isDraft,mergeable,reviewDecision,createdAt,updatedAt,labels,reviewRequests,statusCheckRollup"
	detailFields = listFields + ",body"
	listLimit    = "50"
)

// Filter narrows the pull request list.
type Filter string

const (
	FilterAll             Filter = "all"
	FilterMine            Filter = "mine"
	FilterReviewRequested Filter = "review-requested"
)

// Next cycles All → Mine → ReviewRequested → All.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterMine
	case FilterMine:
		return FilterReviewRequested
	default:
		return FilterAll
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterMine:
		return "Mine"
	case FilterReviewRequested:
		return "Review requested"
	default:
		return "All"
	}
}

// ParseFilter maps a filter name to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterMine, FilterReviewRequested:
		return Filter(s)
	default:
		return FilterAll
	}
}

// ListPullRequests returns open pull requests matching filter.
func (c *Client) ListPullRequests(ctx context.Context, filter Filter) ([]PullRequest, error) {
	args := []string{
		"pr", "list",
		"-R", c.repo.String(),
		"--state", "open",
		"--limit", listLimit,
		"--json", listFields,
	}
	switch filter {
	case FilterMine:
		args = append(args, "--author", "@me")
	case FilterReviewRequested:
		args = append(args, "--search", "review-requested:@me")
	}
	var prs []PullRequest
	if err := c.ghJSON(ctx, &prs, args...); err != nil {
		return nil, fmt.Errorf("list PRs: %w", err)
	}
	return prs, nil
}

// GetPullRequest fetches a pull request together with its reviews and
// commits. The three lookups run concurrently.
func (c *Client) GetPullRequest(ctx context.Context, number int) (PullRequest, error) {
	var (
		pr      PullRequest
		reviews struct {
			Reviews []Review `json:"reviews"`
		}
		commits struct {
			Commits []Commit `json:"commits"`
		}
	)
	id := strconv.Itoa(number)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.ghJSON(gctx, &pr, "pr", "view", id, "-R", c.repo.String(), "--json", detailFields)
	})
	g.Go(func() error {
		return c.ghJSON(gctx, &reviews, "pr", "view", id, "-R", c.repo.String(), "--json", "reviews")
	})
	g.Go(func() error {
		return c.ghJSON(gctx, &commits, "pr", "view", id, "-R", c.repo.String(), "--json", "commits")
	})
	if err := g.Wait(); err != nil {
		return PullRequest{}, fmt.Errorf("get PR #%d: %w", number, err)
	}
	pr.Reviews = reviews.Reviews
	pr.Commits = commits.Commits
	return pr, nil
}

// GetDiff returns the unified diff of a pull request.
func (c *Client) GetDiff(ctx context.Context, number int) (Diff, error) {
	out, err := c.gh(ctx, "pr", "diff", strconv.Itoa(number), "-R", c.repo.String(), "--color", "never")
	if err != nil {
		return Diff{}, fmt.Errorf("get diff PR #%d: %w", number, err)
	}
	return ParseDiff(string(out)), nil
}

func (c *Client) PostComment(ctx context.Context, number int, body string) error {
	if _, err := c.gh(ctx, "pr", "comment", strconv.Itoa(number), "-R", c.repo.String(), "--body", body); err != nil {
		return fmt.Errorf("comment on PR #%d: %w", number, err)
	}
	return nil
}

func (c *Client) SetTitle(ctx context.Context, number int, title string) error {
	if _, err := c.gh(ctx, "pr", "edit", strconv.Itoa(number), "-R", c.repo.String(), "--title", title); err != nil {
		return fmt.Errorf("edit title of PR #%d: %w", number, err)
	}
	return nil
}

func (c *Client) AddLabel(ctx context.Context, number int, label string) error {
	if _, err := c.gh(ctx, "pr", "edit", strconv.Itoa(number), "-R", c.repo.String(), "--add-label", label); err != nil {
		return fmt.Errorf("add label to PR #%d: %w", number, err)
	}
	return nil
}

func (c *Client) AddReviewer(ctx context.Context, number int, reviewer string) error {
	if _, err := c.gh(ctx, "pr", "edit", strconv.Itoa(number), "-R", c.repo.String(), "--add-reviewer", reviewer); err != nil {
		return fmt.Errorf("add reviewer to PR #%d: %w", number, err)
	}
	return nil
}

func (c *Client) Approve(ctx context.Context, number int) error {
	if _, err := c.gh(ctx, "pr", "review", strconv.Itoa(number), "-R", c.repo.String(), "--approve"); err != nil {
		return fmt.Errorf("approve PR #%d: %w", number, err)
	}
	return nil
}

func (c *Client) RequestChanges(ctx context.Context, number int, body string) error {
	if _, err := c.gh(ctx, "pr", "review", strconv.Itoa(number), "-R", c.repo.String(), "--request-changes", "--body", body); err != nil {
		return fmt.Errorf("request changes on PR #%d: %w", number, err)
	}
	return nil
}

// Merge merges a pull request with the given strategy: squash, merge or
// rebase.
func (c *Client) Merge(ctx context.Context, number int, strategy string) error {
	args := []string{"pr", "merge", strconv.Itoa(number), "-R", c.repo.String()}
	switch strategy {
	case "merge":
		args = append(args, "--merge")
	case "rebase":
		args = append(args, "--rebase")
	default:
		args = append(args, "--squash")
	}
	if _, err := c.gh(ctx, args...); err != nil {
		return fmt.Errorf("merge PR #%d: %w", number, err)
	}
	return nil
}

// Checkout checks the pull request branch out in the working directory.
func (c *Client) Checkout(ctx context.Context, number int) error {
	if _, err := c.gh(ctx, "pr", "checkout", strconv.Itoa(number), "-R", c.repo.String()); err != nil {
		return fmt.Errorf("checkout PR #%d: %w", number, err)
	}
	return nil
}

// CreatePullRequestWeb opens the browser on the pull request creation page.
func (c *Client) CreatePullRequestWeb(ctx context.Context) error {
	if _, err := c.gh(ctx, "pr", "create", "-R", c.repo.String(), "--web"); err != nil {
		return fmt.Errorf("create PR: %w", err)
	}
	return nil
}
