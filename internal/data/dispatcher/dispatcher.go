package dispatcher

import (
	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/state"
)

// Result reports which stores a backend result replaced.
type Result struct {
	PullRequestsUpdated bool
	DetailUpdated       bool
	ChecksUpdated       bool
	DiffUpdated         bool
	RunsUpdated         bool
	JobsUpdated         bool
	LogUpdated          bool
	RecentBranchUpdated bool
}

// Any reports whether any store changed.
func (r Result) Any() bool {
	return r != Result{}
}

// Stores groups the entity stores the dispatcher writes to.
type Stores struct {
	PullRequests state.PullRequestStore
	Detail       state.DetailStore
	Runs         state.RunStore
	Jobs         state.JobStore
	Log          state.LogStore
}

// NewStores returns empty stores.
func NewStores() Stores {
	return Stores{
		PullRequests: state.NewPullRequestStore(),
		Detail:       state.NewDetailStore(),
		Runs:         state.NewRunStore(),
		Jobs:         state.NewJobStore(),
		Log:          state.NewLogStore(),
	}
}

type Dispatcher struct {
	stores Stores
}

func New(stores Stores) *Dispatcher {
	return &Dispatcher{stores: stores}
}

// Handle writes a successful fetch payload into its store. Payloads for a
// target other than the one a store currently holds are dropped.
func (d *Dispatcher) Handle(res backend.Result) Result {
	var out Result
	if res.Err != nil {
		return out
	}
	switch res.Key.Kind {
	case backend.KindPullRequests:
		if payload, ok := res.Payload.(backend.PullRequestsPayload); ok && payload.Filter == d.stores.PullRequests.Filter() {
			d.stores.PullRequests.SetEntries(payload.Filter, payload.PullRequests)
			out.PullRequestsUpdated = true
		}
	case backend.KindPullRequest:
		if pr, ok := res.Payload.(github.PullRequest); ok && pr.Number == d.stores.Detail.Number() {
			d.stores.Detail.SetPullRequest(pr)
			out.DetailUpdated = true
		}
	case backend.KindChecks:
		if payload, ok := res.Payload.(backend.ChecksPayload); ok && payload.Number == d.stores.Detail.Number() {
			d.stores.Detail.SetChecks(payload.Runs)
			out.ChecksUpdated = true
		}
	case backend.KindDiff:
		if payload, ok := res.Payload.(backend.DiffPayload); ok && payload.Number == d.stores.Detail.Number() {
			d.stores.Detail.SetDiff(payload.Diff)
			out.DiffUpdated = true
		}
	case backend.KindRuns:
		if runs, ok := res.Payload.([]github.WorkflowRun); ok {
			d.stores.Runs.SetEntries(runs)
			out.RunsUpdated = true
		}
	case backend.KindJobs:
		if payload, ok := res.Payload.(backend.JobsPayload); ok && payload.RunID == d.stores.Jobs.RunID() {
			d.stores.Jobs.SetEntries(payload.Jobs)
			out.JobsUpdated = true
		}
	case backend.KindLog:
		if log, ok := res.Payload.(github.Log); ok {
			runID, jobID := d.stores.Log.Target()
			if log.RunID == runID && log.JobID == jobID {
				d.stores.Log.SetText(log.Text)
				out.LogUpdated = true
			}
		}
	case backend.KindRecentBranch:
		if branch, ok := res.Payload.(*github.RecentBranch); ok {
			d.stores.PullRequests.SetRecentBranch(branch)
			out.RecentBranchUpdated = true
		}
	}
	return out
}
