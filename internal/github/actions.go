package github

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	runFields          = "databaseId,name,workflowName,displayTitle,headBranch,headSha,status,conclusion,number,event,createdAt,updatedAt,url"
	runLimit           = "30"
	recentBranchWindow = time.Hour

	// LogUnavailable is returned in place of log text while a run is still
	// executing.
	LogUnavailable = "Logs not available yet. The run may still be in progress or queued."
)

// ListWorkflowRuns returns the most recent workflow runs for the repository.
func (c *Client) ListWorkflowRuns(ctx context.Context) ([]WorkflowRun, error) {
	var runs []WorkflowRun
	if err := c.ghJSON(ctx, &runs, "run", "list", "-R", c.repo.String(), "--limit", runLimit, "--json", runFields); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ListRunsForCommit returns the workflow runs triggered by a commit; these
// are the checks shown for a pull request head.
func (c *Client) ListRunsForCommit(ctx context.Context, sha string) ([]WorkflowRun, error) {
	var runs []WorkflowRun
	if err := c.ghJSON(ctx, &runs, "run", "list", "-R", c.repo.String(), "--commit", sha, "--json", runFields); err != nil {
		return nil, fmt.Errorf("list runs for %s: %w", shortSHA(sha), err)
	}
	return runs, nil
}

// ListJobs returns the jobs of a workflow run.
func (c *Client) ListJobs(ctx context.Context, runID int64) ([]Job, error) {
	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	id := strconv.FormatInt(runID, 10)
	if err := c.ghJSON(ctx, &resp, "run", "view", id, "-R", c.repo.String(), "--json", "jobs"); err != nil {
		return nil, fmt.Errorf("list jobs for run %d: %w", runID, err)
	}
	for i := range resp.Jobs {
		resp.Jobs[i].RunID = runID
	}
	return resp.Jobs, nil
}

// LogRef identifies the log to fetch. A zero JobID requests the log of the
// whole run. Logs of completed jobs never change and are cached.
type LogRef struct {
	RunID     int64
	JobID     int64
	Completed bool
}

// GetLog returns the log text of a job or run.
func (c *Client) GetLog(ctx context.Context, ref LogRef) (Log, error) {
	if ref.JobID != 0 {
		if text, ok := c.cache.jobLog(ref.JobID); ok {
			return Log{RunID: ref.RunID, JobID: ref.JobID, Text: text}, nil
		}
	}
	args := []string{"run", "view", strconv.FormatInt(ref.RunID, 10), "-R", c.repo.String(), "--log"}
	if ref.JobID != 0 {
		args = append(args, "--job", strconv.FormatInt(ref.JobID, 10))
	}
	out, err := c.gh(ctx, args...)
	if err != nil {
		if strings.Contains(err.Error(), "still in progress") {
			return Log{RunID: ref.RunID, JobID: ref.JobID, Text: LogUnavailable}, nil
		}
		return Log{}, fmt.Errorf("get log for run %d: %w", ref.RunID, err)
	}
	text := string(out)
	if ref.JobID != 0 && ref.Completed {
		c.cache.storeJobLog(ref.JobID, text)
	}
	return Log{RunID: ref.RunID, JobID: ref.JobID, Text: text}, nil
}

// RerunWorkflow reruns the failed jobs of a run, falling back to a full
// rerun when there is nothing failed to retry.
func (c *Client) RerunWorkflow(ctx context.Context, runID int64) error {
	id := strconv.FormatInt(runID, 10)
	if _, err := c.gh(ctx, "run", "rerun", id, "-R", c.repo.String(), "--failed"); err == nil {
		return nil
	}
	if _, err := c.gh(ctx, "run", "rerun", id, "-R", c.repo.String()); err != nil {
		return fmt.Errorf("rerun run %d: %w", runID, err)
	}
	return nil
}

type pushEvent struct {
	Type  string `json:"type"`
	Actor struct {
		Login string `json:"login"`
	} `json:"actor"`
	Payload struct {
		Ref string `json:"ref"`
	} `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentBranch returns the branch the current user pushed most recently,
// within the last hour, that is not among openBranches. It returns nil when
// no such branch exists.
func (c *Client) RecentBranch(ctx context.Context, openBranches []string) (*RecentBranch, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	var events []pushEvent
	if err := c.ghJSON(ctx, &events, "api", fmt.Sprintf("repos/%s/events?per_page=30", c.repo)); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return recentBranchFrom(events, user, openBranches, time.Now()), nil
}

func recentBranchFrom(events []pushEvent, user string, openBranches []string, now time.Time) *RecentBranch {
	open := make(map[string]struct{}, len(openBranches))
	for _, b := range openBranches {
		open[b] = struct{}{}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	for _, evt := range events {
		if evt.Type != "PushEvent" || !strings.EqualFold(evt.Actor.Login, user) {
			continue
		}
		if now.Sub(evt.CreatedAt) > recentBranchWindow {
			continue
		}
		branch := strings.TrimPrefix(evt.Payload.Ref, "refs/heads/")
		if branch == "" || branch == evt.Payload.Ref {
			continue
		}
		if _, ok := open[branch]; ok {
			continue
		}
		return &RecentBranch{Name: branch, PushedAt: evt.CreatedAt}
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
