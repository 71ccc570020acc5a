package backend

import (
	"context"

	"github.com/atomicstack/ghflow/internal/github"
)

// Provider is the remote data source. github.Client implements it.
type Provider interface {
	ListPullRequests(ctx context.Context, filter github.Filter) ([]github.PullRequest, error)
	GetPullRequest(ctx context.Context, number int) (github.PullRequest, error)
	ListWorkflowRuns(ctx context.Context) ([]github.WorkflowRun, error)
	ListRunsForCommit(ctx context.Context, sha string) ([]github.WorkflowRun, error)
	ListJobs(ctx context.Context, runID int64) ([]github.Job, error)
	GetDiff(ctx context.Context, number int) (github.Diff, error)
	GetLog(ctx context.Context, ref github.LogRef) (github.Log, error)
	RecentBranch(ctx context.Context, openBranches []string) (*github.RecentBranch, error)

	PostComment(ctx context.Context, number int, body string) error
	SetTitle(ctx context.Context, number int, title string) error
	AddLabel(ctx context.Context, number int, label string) error
	AddReviewer(ctx context.Context, number int, reviewer string) error
	Approve(ctx context.Context, number int) error
	RequestChanges(ctx context.Context, number int, body string) error
	Merge(ctx context.Context, number int, strategy string) error
	RerunWorkflow(ctx context.Context, runID int64) error
	Checkout(ctx context.Context, number int) error
	CreatePullRequestWeb(ctx context.Context) error
}

var _ Provider = (*github.Client)(nil)

// Task performs one provider call and returns an immutable payload.
type Task func(ctx context.Context, p Provider) (interface{}, error)

// PullRequestsPayload is the result of a list fetch.
type PullRequestsPayload struct {
	Filter       github.Filter
	PullRequests []github.PullRequest
}

// ChecksPayload carries the workflow runs for a pull request head.
type ChecksPayload struct {
	Number int
	Runs   []github.WorkflowRun
}

// DiffPayload carries the diff of a pull request.
type DiffPayload struct {
	Number int
	Diff   github.Diff
}

// JobsPayload carries the jobs of a workflow run.
type JobsPayload struct {
	RunID int64
	Jobs  []github.Job
}

// MutationPayload describes a completed mutation for the status line.
type MutationPayload struct {
	Message string
	Number  int
	RunID   int64
}

func ListPullRequests(filter github.Filter) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		prs, err := p.ListPullRequests(ctx, filter)
		if err != nil {
			return nil, err
		}
		return PullRequestsPayload{Filter: filter, PullRequests: prs}, nil
	}
}

func GetPullRequest(number int) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		pr, err := p.GetPullRequest(ctx, number)
		if err != nil {
			return nil, err
		}
		return pr, nil
	}
}

// ListChecks resolves the head commit when sha is empty.
func ListChecks(number int, sha string) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		head := sha
		if head == "" {
			pr, err := p.GetPullRequest(ctx, number)
			if err != nil {
				return nil, err
			}
			head = pr.HeadSHA
		}
		runs, err := p.ListRunsForCommit(ctx, head)
		if err != nil {
			return nil, err
		}
		return ChecksPayload{Number: number, Runs: runs}, nil
	}
}

func GetDiff(number int) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		d, err := p.GetDiff(ctx, number)
		if err != nil {
			return nil, err
		}
		return DiffPayload{Number: number, Diff: d}, nil
	}
}

func ListRuns() Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		runs, err := p.ListWorkflowRuns(ctx)
		if err != nil {
			return nil, err
		}
		return runs, nil
	}
}

func ListJobs(runID int64) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		jobs, err := p.ListJobs(ctx, runID)
		if err != nil {
			return nil, err
		}
		return JobsPayload{RunID: runID, Jobs: jobs}, nil
	}
}

func GetLog(ref github.LogRef) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		log, err := p.GetLog(ctx, ref)
		if err != nil {
			return nil, err
		}
		return log, nil
	}
}

// FindRecentBranch looks for a freshly pushed branch without a pull request.
// A nil *github.RecentBranch payload means none was found.
func FindRecentBranch(openBranches []string) Task {
	branches := append([]string(nil), openBranches...)
	return func(ctx context.Context, p Provider) (interface{}, error) {
		branch, err := p.RecentBranch(ctx, branches)
		if err != nil {
			return nil, err
		}
		return branch, nil
	}
}

func mutation(message string, number int, runID int64, call func(context.Context, Provider) error) Task {
	return func(ctx context.Context, p Provider) (interface{}, error) {
		if err := call(ctx, p); err != nil {
			return nil, err
		}
		return MutationPayload{Message: message, Number: number, RunID: runID}, nil
	}
}

func PostComment(number int, body string) Task {
	return mutation("Comment posted", number, 0, func(ctx context.Context, p Provider) error {
		return p.PostComment(ctx, number, body)
	})
}

func RequestChanges(number int, body string) Task {
	return mutation("Changes requested", number, 0, func(ctx context.Context, p Provider) error {
		return p.RequestChanges(ctx, number, body)
	})
}

func SetTitle(number int, title string) Task {
	return mutation("Title updated", number, 0, func(ctx context.Context, p Provider) error {
		return p.SetTitle(ctx, number, title)
	})
}

func AddLabel(number int, label string) Task {
	return mutation("Label added: "+label, number, 0, func(ctx context.Context, p Provider) error {
		return p.AddLabel(ctx, number, label)
	})
}

func AddReviewer(number int, reviewer string) Task {
	return mutation("Reviewer added: "+reviewer, number, 0, func(ctx context.Context, p Provider) error {
		return p.AddReviewer(ctx, number, reviewer)
	})
}

func Approve(number int) Task {
	return mutation("PR approved", number, 0, func(ctx context.Context, p Provider) error {
		return p.Approve(ctx, number)
	})
}

func Merge(number int, strategy string) Task {
	return mutation("PR merged", number, 0, func(ctx context.Context, p Provider) error {
		return p.Merge(ctx, number, strategy)
	})
}

func Checkout(number int) Task {
	return mutation("Checked out PR branch", number, 0, func(ctx context.Context, p Provider) error {
		return p.Checkout(ctx, number)
	})
}

func CreatePullRequest() Task {
	return mutation("Opened PR creation in browser", 0, 0, func(ctx context.Context, p Provider) error {
		return p.CreatePullRequestWeb(ctx)
	})
}

func Rerun(runID int64) Task {
	return mutation("Workflow rerun triggered", 0, runID, func(ctx context.Context, p Provider) error {
		return p.RerunWorkflow(ctx, runID)
	})
}
