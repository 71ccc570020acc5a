package github

import (
	"strings"
	"time"
)

type User struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReviewRequest is either a user (Login) or a team (Name).
type ReviewRequest struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

func (r ReviewRequest) String() string {
	if r.Login != "" {
		return r.Login
	}
	return r.Name
}

type Review struct {
	Author      User      `json:"author"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Commit struct {
	SHA      string    `json:"oid"`
	Headline string    `json:"messageHeadline"`
	Authors  []User    `json:"authors"`
	Date     time.Time `json:"authoredDate"`
}

// ShortSHA returns the abbreviated commit hash.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Author returns the first listed author's display name.
func (c Commit) Author() string {
	if len(c.Authors) == 0 {
		return "unknown"
	}
	if c.Authors[0].Name != "" {
		return c.Authors[0].Name
	}
	return c.Authors[0].Login
}

type checkNode struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	Context    string `json:"context"`
	State      string `json:"state"`
}

type PullRequest struct {
	Number         int             `json:"number"`
	Title          string          `json:"title"`
	Body           string          `json:"body"`
	State          string          `json:"state"`
	URL            string          `json:"url"`
	Author         User            `json:"author"`
	HeadRef        string          `json:"headRefName"`
	HeadSHA        string          `json:"headRefOid"`
	BaseRef        string          `json:"baseRefName"`
	IsDraft        bool            `json:"isDraft"`
	Mergeable      string          `json:"mergeable"`
	ReviewDecision string          `json:"reviewDecision"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Labels         []Label         `json:"labels"`
	ReviewRequests []ReviewRequest `json:"reviewRequests"`
	Checks         []checkNode     `json:"statusCheckRollup"`
	Reviews        []Review        `json:"reviews,omitempty"`
	Commits        []Commit        `json:"commits,omitempty"`
}

// CIStatus folds the status check rollup into success, failure, pending,
// or an empty string when the pull request has no checks.
func (pr PullRequest) CIStatus() string {
	if len(pr.Checks) == 0 {
		return ""
	}
	pending := false
	for _, c := range pr.Checks {
		status, conclusion := normalizeCheck(c)
		switch {
		case conclusion == "failure" || conclusion == "timed_out" || conclusion == "cancelled" || conclusion == "action_required":
			return "failure"
		case status != "COMPLETED":
			pending = true
		}
	}
	if pending {
		return "pending"
	}
	return "success"
}

func normalizeCheck(n checkNode) (status, conclusion string) {
	status = n.Status
	if status == "" {
		switch n.State {
		case "PENDING", "EXPECTED":
			status = "IN_PROGRESS"
		default:
			status = "COMPLETED"
		}
	}
	conclusion = n.Conclusion
	if conclusion == "" && n.State == "SUCCESS" {
		conclusion = "success"
	}
	if conclusion == "" && (n.State == "FAILURE" || n.State == "ERROR") {
		conclusion = "failure"
	}
	return strings.ToUpper(status), strings.ToLower(conclusion)
}

// StatusIcon returns a single-cell glyph for list rendering.
func (pr PullRequest) StatusIcon() string {
	switch {
	case pr.State == "MERGED":
		return "◆"
	case pr.State == "CLOSED":
		return "✗"
	case pr.IsDraft:
		return "◌"
	default:
		return "●"
	}
}

type WorkflowRun struct {
	ID           int64     `json:"databaseId"`
	Name         string    `json:"name"`
	WorkflowName string    `json:"workflowName"`
	DisplayTitle string    `json:"displayTitle"`
	HeadBranch   string    `json:"headBranch"`
	HeadSHA      string    `json:"headSha"`
	Status       string    `json:"status"`
	Conclusion   string    `json:"conclusion"`
	Number       int       `json:"number"`
	Event        string    `json:"event"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	URL          string    `json:"url"`
}

// Completed reports whether the run has finished.
func (r WorkflowRun) Completed() bool {
	return r.Status == "completed"
}

// StatusIcon returns a glyph describing the run state.
func (r WorkflowRun) StatusIcon() string {
	return statusIcon(r.Status, r.Conclusion)
}

type Step struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

type Job struct {
	ID          int64     `json:"databaseId"`
	RunID       int64     `json:"-"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Conclusion  string    `json:"conclusion"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	URL         string    `json:"url"`
	Steps       []Step    `json:"steps"`
}

// Completed reports whether the job has finished.
func (j Job) Completed() bool {
	return j.Status == "completed"
}

// StatusIcon returns a glyph describing the job state.
func (j Job) StatusIcon() string {
	return statusIcon(j.Status, j.Conclusion)
}

// Duration returns how long the job ran, or zero while it is running.
func (j Job) Duration() time.Duration {
	if j.StartedAt.IsZero() || j.CompletedAt.IsZero() {
		return 0
	}
	return j.CompletedAt.Sub(j.StartedAt)
}

func statusIcon(status, conclusion string) string {
	switch status {
	case "queued", "waiting", "pending", "requested":
		return "○"
	case "in_progress":
		return "◐"
	}
	switch conclusion {
	case "success":
		return "✓"
	case "failure", "timed_out":
		return "✗"
	case "cancelled":
		return "⊘"
	case "skipped", "neutral":
		return "–"
	default:
		return "?"
	}
}

// RecentBranch is a branch the current user pushed recently that has no
// open pull request.
type RecentBranch struct {
	Name     string
	PushedAt time.Time
}

// Log is the text of a run or job log.
type Log struct {
	RunID int64
	JobID int64
	Text  string
}
