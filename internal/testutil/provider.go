package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"testing"

	"github.com/atomicstack/ghflow/internal/github"
)

// RequireGH aborts the calling test when gh is not present on PATH.
func RequireGH(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("gh")
	if err != nil {
		t.Skip("skipping: gh binary not available")
	}
	return path
}

// Call records one provider invocation.
type Call struct {
	Method string
	Args   []interface{}
}

// FakeProvider is an in-memory data provider. Populate the exported fields
// before handing it to a dispatcher; use the setters once tasks may be
// running.
type FakeProvider struct {
	mu sync.Mutex

	PullRequests map[github.Filter][]github.PullRequest
	Details      map[int]github.PullRequest
	Runs         []github.WorkflowRun
	CommitRuns   map[string][]github.WorkflowRun
	Jobs         map[int64][]github.Job
	Diffs        map[int]github.Diff
	Logs         map[string]string
	Recent       *github.RecentBranch

	errors map[string]error
	gates  map[string]chan struct{}
	calls  []Call
}

// NewFakeProvider returns an empty provider.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		PullRequests: make(map[github.Filter][]github.PullRequest),
		Details:      make(map[int]github.PullRequest),
		CommitRuns:   make(map[string][]github.WorkflowRun),
		Jobs:         make(map[int64][]github.Job),
		Diffs:        make(map[int]github.Diff),
		Logs:         make(map[string]string),
		errors:       make(map[string]error),
		gates:        make(map[string]chan struct{}),
	}
}

// Fail makes every later call to method return err. A nil err clears it.
func (f *FakeProvider) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errors, method)
		return
	}
	f.errors[method] = err
}

// Block holds calls to method until the returned release func runs or the
// call's context ends.
func (f *FakeProvider) Block(method string) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[method] = gate
	f.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gates[method] == gate {
				delete(f.gates, method)
			}
			f.mu.Unlock()
			close(gate)
		})
	}
}

// SetLog replaces the text returned for a run/job pair.
func (f *FakeProvider) SetLog(runID, jobID int64, text string) {
	f.mu.Lock()
	f.Logs[logKey(runID, jobID)] = text
	f.mu.Unlock()
}

// Calls returns the recorded invocations of method.
func (f *FakeProvider) Calls(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// CallCount returns how often method was invoked.
func (f *FakeProvider) CallCount(method string) int {
	return len(f.Calls(method))
}

func (f *FakeProvider) enter(ctx context.Context, method string, args ...interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Args: args})
	gate := f.gates[method]
	err := f.errors[method]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func logKey(runID, jobID int64) string {
	return fmt.Sprintf("%d/%d", runID, jobID)
}

func (f *FakeProvider) ListPullRequests(ctx context.Context, filter github.Filter) ([]github.PullRequest, error) {
	if err := f.enter(ctx, "ListPullRequests", filter); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]github.PullRequest(nil), f.PullRequests[filter]...), nil
}

func (f *FakeProvider) GetPullRequest(ctx context.Context, number int) (github.PullRequest, error) {
	if err := f.enter(ctx, "GetPullRequest", number); err != nil {
		return github.PullRequest{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pr, ok := f.Details[number]
	if !ok {
		return github.PullRequest{}, fmt.Errorf("pull request #%d not found", number)
	}
	return pr, nil
}

func (f *FakeProvider) ListWorkflowRuns(ctx context.Context) ([]github.WorkflowRun, error) {
	if err := f.enter(ctx, "ListWorkflowRuns"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]github.WorkflowRun(nil), f.Runs...), nil
}

func (f *FakeProvider) ListRunsForCommit(ctx context.Context, sha string) ([]github.WorkflowRun, error) {
	if err := f.enter(ctx, "ListRunsForCommit", sha); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]github.WorkflowRun(nil), f.CommitRuns[sha]...), nil
}

func (f *FakeProvider) ListJobs(ctx context.Context, runID int64) ([]github.Job, error) {
	if err := f.enter(ctx, "ListJobs", runID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]github.Job(nil), f.Jobs[runID]...), nil
}

func (f *FakeProvider) GetDiff(ctx context.Context, number int) (github.Diff, error) {
	if err := f.enter(ctx, "GetDiff", number); err != nil {
		return github.Diff{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Diffs[number], nil
}

func (f *FakeProvider) GetLog(ctx context.Context, ref github.LogRef) (github.Log, error) {
	if err := f.enter(ctx, "GetLog", ref); err != nil {
		return github.Log{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return github.Log{RunID: ref.RunID, JobID: ref.JobID, Text: f.Logs[logKey(ref.RunID, ref.JobID)]}, nil
}

func (f *FakeProvider) RecentBranch(ctx context.Context, openBranches []string) (*github.RecentBranch, error) {
	if err := f.enter(ctx, "RecentBranch", openBranches); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Recent == nil {
		return nil, nil
	}
	branch := *f.Recent
	for _, open := range openBranches {
		if open == branch.Name {
			return nil, nil
		}
	}
	return &branch, nil
}

func (f *FakeProvider) PostComment(ctx context.Context, number int, body string) error {
	return f.enter(ctx, "PostComment", number, body)
}

func (f *FakeProvider) SetTitle(ctx context.Context, number int, title string) error {
	return f.enter(ctx, "SetTitle", number, title)
}

func (f *FakeProvider) AddLabel(ctx context.Context, number int, label string) error {
	return f.enter(ctx, "AddLabel", number, label)
}

func (f *FakeProvider) AddReviewer(ctx context.Context, number int, reviewer string) error {
	return f.enter(ctx, "AddReviewer", number, reviewer)
}

func (f *FakeProvider) Approve(ctx context.Context, number int) error {
	return f.enter(ctx, "Approve", number)
}

func (f *FakeProvider) RequestChanges(ctx context.Context, number int, body string) error {
	return f.enter(ctx, "RequestChanges", number, body)
}

func (f *FakeProvider) Merge(ctx context.Context, number int, strategy string) error {
	return f.enter(ctx, "Merge", number, strategy)
}

func (f *FakeProvider) RerunWorkflow(ctx context.Context, runID int64) error {
	return f.enter(ctx, "RerunWorkflow", runID)
}

func (f *FakeProvider) Checkout(ctx context.Context, number int) error {
	return f.enter(ctx, "Checkout", number)
}

func (f *FakeProvider) CreatePullRequestWeb(ctx context.Context) error {
	return f.enter(ctx, "CreatePullRequestWeb")
}
