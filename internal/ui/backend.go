package ui

import (
	"fmt"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/data/dispatcher"
	"github.com/atomicstack/ghflow/internal/logging"
	"github.com/atomicstack/ghflow/internal/logging/events"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type resultsReadyMsg struct{}

func (m *Model) waitForResults() tea.Cmd {
	if m.dispatcher == nil {
		return nil
	}
	ready := m.dispatcher.Ready()
	return func() tea.Msg {
		<-ready
		return resultsReadyMsg{}
	}
}

func (m *Model) handleResultsReadyMsg(tea.Msg) tea.Cmd {
	m.processMessages()
	if !m.running {
		return nil
	}
	return m.waitForResults()
}

// processMessages applies every queued result in arrival order.
func (m *Model) processMessages() {
	if m.dispatcher == nil {
		return
	}
	for _, res := range m.dispatcher.Drain() {
		m.applyResult(res)
	}
}

// applyResult merges one result into the model. A fetch result is applied
// only when its generation is still the current one for its key; anything
// older was superseded by a later spawn and is dropped.
func (m *Model) applyResult(res backend.Result) {
	kind, target := res.Key.Kind.String(), res.Key.Target
	current := m.generations[res.Key]
	if res.Generation == current {
		delete(m.pending, res.Key)
	}
	if res.Key.Kind.Mutation() {
		m.applyMutation(res)
		return
	}
	if res.Generation != current {
		events.Fetch.Stale(res.ID, kind, target, res.Generation, current)
		return
	}
	if res.Err != nil {
		events.Fetch.Error(res.ID, kind, target, res.Err)
		if !m.onScreen(res.Key) {
			events.Fetch.Offscreen(res.ID, kind, target)
			return
		}
		logging.Error(res.Err)
		m.notifyError(fmt.Sprintf("Failed to load %s: %v", describeKey(res.Key), res.Err))
		return
	}
	updated := m.data.Handle(res)
	if !updated.Any() {
		events.Fetch.Offscreen(res.ID, kind, target)
		return
	}
	events.Fetch.Apply(res.ID, kind, target, res.Generation)
	m.afterUpdate(updated)
}

// onScreen reports whether key still addresses data the user is looking at.
func (m *Model) onScreen(key backend.Key) bool {
	switch key.Kind {
	case backend.KindPullRequests:
		return key.Target == string(m.stores.PullRequests.Filter())
	case backend.KindPullRequest, backend.KindChecks, backend.KindDiff:
		number := m.stores.Detail.Number()
		return number != 0 && key.Target == backend.PRTarget(number)
	case backend.KindRuns:
		return true
	case backend.KindJobs:
		runID := m.stores.Jobs.RunID()
		return runID != 0 && key.Target == backend.RunTarget(runID)
	case backend.KindLog:
		runID, jobID := m.stores.Log.Target()
		return runID != 0 && key.Target == backend.LogTarget(runID, jobID)
	default:
		return false
	}
}

func (m *Model) afterUpdate(updated dispatcher.Result) {
	if updated.PullRequestsUpdated {
		m.syncPullRequests()
		open := m.stores.PullRequests.OpenBranches()
		m.spawnFetch(backend.Key{Kind: backend.KindRecentBranch}, backend.FindRecentBranch(open))
	}
	if updated.ChecksUpdated {
		m.checks.SetLen(len(m.stores.Detail.Checks()))
	}
	if updated.RunsUpdated {
		m.runs.SetLen(len(m.stores.Runs.Entries()))
	}
	if updated.JobsUpdated {
		m.jobs.SetLen(len(m.stores.Jobs.Entries()))
	}
	if updated.DetailUpdated {
		m.detailScroll.ScrollBy(0, m.detailLineCount())
	}
	if updated.DiffUpdated {
		m.diffScroll.ScrollBy(0, m.diffLineCount())
	}
	if updated.LogUpdated {
		m.updateLogMatches()
		m.logScroll.ScrollBy(0, m.logLineCount())
	}
}

// applyMutation reports a mutation outcome and refreshes the data it
// touched. Mutation results are always reported, whatever is on screen.
func (m *Model) applyMutation(res backend.Result) {
	if res.Err != nil {
		logging.Error(res.Err)
		events.Action.Error(res.Err)
		m.notifyError(fmt.Sprintf("%s failed: %v", mutationLabel(res.Key.Kind), res.Err))
		return
	}
	payload, _ := res.Payload.(backend.MutationPayload)
	message := payload.Message
	if message == "" {
		message = mutationLabel(res.Key.Kind) + " done"
	}
	events.Action.Success(message)
	m.notify(LevelSuccess, message)
	m.refreshAfterMutation(res.Key.Kind, payload)
}

func (m *Model) refreshAfterMutation(kind backend.Kind, payload backend.MutationPayload) {
	switch kind {
	case backend.KindComment, backend.KindRequestChanges, backend.KindAddReviewer:
		m.refetchDetail(payload.Number, false)
	case backend.KindEditTitle, backend.KindAddLabel, backend.KindApprove, backend.KindMerge:
		m.refetchList()
		m.refetchDetail(payload.Number, false)
	case backend.KindRerun:
		if m.stores.Runs.Loaded() || m.mode.Tab == uistate.TabActions {
			m.refetchRuns()
		}
		if number := m.stores.Detail.Number(); number != 0 {
			m.refetchChecks(number)
		}
	}
}

func describeKey(key backend.Key) string {
	switch key.Kind {
	case backend.KindPullRequests:
		return "pull requests"
	case backend.KindPullRequest:
		return "pull request #" + key.Target
	case backend.KindChecks:
		return "checks for #" + key.Target
	case backend.KindDiff:
		return "diff for #" + key.Target
	case backend.KindRuns:
		return "workflow runs"
	case backend.KindJobs:
		return "jobs for run " + key.Target
	case backend.KindLog:
		return "log"
	default:
		return key.Kind.String()
	}
}

func mutationLabel(kind backend.Kind) string {
	switch kind {
	case backend.KindComment:
		return "Comment"
	case backend.KindRequestChanges:
		return "Request changes"
	case backend.KindEditTitle:
		return "Title update"
	case backend.KindAddLabel:
		return "Add label"
	case backend.KindAddReviewer:
		return "Add reviewer"
	case backend.KindApprove:
		return "Approve"
	case backend.KindMerge:
		return "Merge"
	case backend.KindCheckout:
		return "Checkout"
	case backend.KindCreatePR:
		return "Create PR"
	case backend.KindRerun:
		return "Rerun"
	default:
		return kind.String()
	}
}
