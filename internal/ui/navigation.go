package ui

import (
	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/logging/events"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	return m.handleKey(uistate.KeyFromMsg(keyMsg))
}

// handleKey runs the pure transition function and executes the intent it
// returns. Unknown keys leave the model untouched.
func (m *Model) handleKey(k uistate.Key) tea.Cmd {
	from := m.mode
	next, intent := uistate.Transition(m.mode, k, m.facts())
	m.mode = next
	if intent.Kind != uistate.IntentNone || from != next {
		events.UI.Transition(k.Name, describeMode(from), describeMode(next), intent.Kind.String())
	}
	return m.execute(intent)
}

func describeMode(mode uistate.Mode) string {
	out := mode.Tab.String() + "/" + mode.View.String() + "/" + mode.Focus.String()
	if mode.Input != uistate.InputNone {
		out += "/" + mode.Input.String()
	}
	return out
}

func (m *Model) facts() uistate.Facts {
	_, prOK := m.targetPR()
	_, checkOK := m.selectedCheck()
	return uistate.Facts{
		PRSelected:    prOK,
		CheckSelected: checkOK,
		SearchActive:  m.prQuery != "",
		DetailOpen:    m.stores.Detail.Number() != 0,
	}
}

// execute performs the side effects of one intent.
func (m *Model) execute(intent uistate.Intent) tea.Cmd {
	switch intent.Kind {
	case uistate.IntentQuit:
		m.quitting = true
		events.App.Stop("quit")
	case uistate.IntentHint:
		m.notify(LevelInfo, intent.Text)
	case uistate.IntentSwitchTab:
		m.enterTab()
	case uistate.IntentRefresh:
		m.refreshTab()
	case uistate.IntentCreatePR:
		m.startMutation(backend.Key{Kind: backend.KindCreatePR}, backend.CreatePullRequest())
	case uistate.IntentMove:
		m.move(intent.Delta)
	case uistate.IntentPage:
		m.page(intent.Delta)
	case uistate.IntentHome:
		m.home()
	case uistate.IntentEnd:
		m.end()
	case uistate.IntentHScroll:
		m.logScroll.ScrollColumns(intent.Delta)
	case uistate.IntentHScrollReset:
		m.logScroll.Column = 0
	case uistate.IntentSelectPR:
		if pr, ok := m.highlightedPR(); ok {
			m.selectPR(pr.Number)
		}
	case uistate.IntentOpenDiff:
		if number, ok := m.targetPR(); ok {
			m.openDiff(number)
		}
	case uistate.IntentApprove:
		if number, ok := m.targetPR(); ok {
			m.mutatePR(backend.KindApprove, number, backend.Approve(number))
		}
	case uistate.IntentMerge:
		if number, ok := m.targetPR(); ok {
			m.mutatePR(backend.KindMerge, number, backend.Merge(number, m.mergeMethod))
		}
	case uistate.IntentCheckout:
		if number, ok := m.targetPR(); ok {
			m.mutatePR(backend.KindCheckout, number, backend.Checkout(number))
		}
	case uistate.IntentCopyURL:
		if number, ok := m.targetPR(); ok {
			return m.copyURL(number)
		}
	case uistate.IntentCycleFilter:
		m.cycleFilter()
	case uistate.IntentClearSearch:
		m.prQuery = ""
		m.syncPullRequests()
	case uistate.IntentRerunCheck:
		if run, ok := m.selectedCheck(); ok {
			m.startMutation(backend.Key{Kind: backend.KindRerun, Target: backend.RunTarget(run.ID)}, backend.Rerun(run.ID))
		}
	case uistate.IntentCheckLogs:
		if run, ok := m.selectedCheck(); ok {
			m.openLog(run.ID, 0, runTitle(run), run.Completed())
		}
	case uistate.IntentSelectRun:
		run, ok := m.highlightedRun()
		if !ok {
			m.selectRun(0)
			return nil
		}
		m.selectRun(run.ID)
	case uistate.IntentRerunRun:
		run, ok := m.actionsRun()
		if !ok {
			m.notify(LevelInfo, "No workflow run selected")
			return nil
		}
		m.startMutation(backend.Key{Kind: backend.KindRerun, Target: backend.RunTarget(run.ID)}, backend.Rerun(run.ID))
	case uistate.IntentJobLogs:
		job, ok := m.highlightedJob()
		if !ok {
			m.notify(LevelInfo, "No job selected")
			return nil
		}
		m.openLog(m.stores.Jobs.RunID(), job.ID, job.Name, job.Completed())
	case uistate.IntentLeaveLogs:
		m.enterTab()
	case uistate.IntentNextMatch:
		m.stepMatch(1)
	case uistate.IntentPrevMatch:
		m.stepMatch(-1)
	case uistate.IntentBeginInput:
		m.beginInput(intent.Input)
	case uistate.IntentEditInput:
		m.editInput(intent.Input)
	case uistate.IntentSubmit:
		m.submitInput(intent.Input, intent.Text)
	case uistate.IntentCancelInput:
		m.cancelInput(intent.Input)
	case uistate.IntentInvalidInput:
		m.rejectInput(intent.Input, intent.Text)
	}
	return nil
}

// enterTab requests whatever the newly active tab needs on first display.
func (m *Model) enterTab() {
	switch m.mode.Tab {
	case uistate.TabPRs:
		if !m.stores.PullRequests.Loaded() {
			m.loadPullRequests()
		}
	case uistate.TabActions:
		if !m.stores.Runs.Loaded() {
			m.loadRuns()
		}
	}
}

// targetPR names the pull request an action applies to: the highlighted
// list row while the list has focus, otherwise the one in the detail pane.
func (m *Model) targetPR() (int, bool) {
	if m.mode.Tab != uistate.TabPRs {
		return 0, false
	}
	if m.mode.View == uistate.ViewList && m.mode.Focus == uistate.FocusList {
		pr, ok := m.highlightedPR()
		return pr.Number, ok
	}
	if number := m.stores.Detail.Number(); number != 0 {
		return number, true
	}
	pr, ok := m.highlightedPR()
	return pr.Number, ok
}

func (m *Model) highlightedPR() (github.PullRequest, bool) {
	if !m.prList.Valid() || m.prList.Cursor >= len(m.prVisible) {
		return github.PullRequest{}, false
	}
	entries := m.stores.PullRequests.Entries()
	idx := m.prVisible[m.prList.Cursor]
	if idx < 0 || idx >= len(entries) {
		return github.PullRequest{}, false
	}
	return entries[idx], true
}

func (m *Model) selectedCheck() (github.WorkflowRun, bool) {
	checks := m.stores.Detail.Checks()
	if !m.checks.Valid() || m.checks.Cursor >= len(checks) {
		return github.WorkflowRun{}, false
	}
	return checks[m.checks.Cursor], true
}

func (m *Model) highlightedRun() (github.WorkflowRun, bool) {
	runs := m.stores.Runs.Entries()
	if !m.runs.Valid() || m.runs.Cursor >= len(runs) {
		return github.WorkflowRun{}, false
	}
	return runs[m.runs.Cursor], true
}

// actionsRun is the run a rerun applies to: the highlighted row in the run
// list or the run whose jobs are shown.
func (m *Model) actionsRun() (github.WorkflowRun, bool) {
	if m.mode.View == uistate.ViewJobs {
		if runID := m.stores.Jobs.RunID(); runID != 0 {
			if run, ok := m.stores.Runs.Find(runID); ok {
				return run, true
			}
			return github.WorkflowRun{ID: runID}, true
		}
		return github.WorkflowRun{}, false
	}
	return m.highlightedRun()
}

func (m *Model) highlightedJob() (github.Job, bool) {
	jobs := m.stores.Jobs.Entries()
	if !m.jobs.Valid() || m.jobs.Cursor >= len(jobs) {
		return github.Job{}, false
	}
	return jobs[m.jobs.Cursor], true
}

func runTitle(run github.WorkflowRun) string {
	if run.WorkflowName != "" {
		return run.WorkflowName
	}
	if run.Name != "" {
		return run.Name
	}
	return run.DisplayTitle
}

// syncPullRequests recomputes the visible rows after the list or the search
// query changed.
func (m *Model) syncPullRequests() {
	entries := m.stores.PullRequests.Entries()
	labels := make([]string, len(entries))
	for i, pr := range entries {
		labels[i] = pullRequestSearchText(pr)
	}
	m.prVisible = uistate.FilterIndices(labels, m.prQuery)
	m.prList.SetLen(len(m.prVisible))
}

func (m *Model) visiblePullRequests() []github.PullRequest {
	entries := m.stores.PullRequests.Entries()
	out := make([]github.PullRequest, 0, len(m.prVisible))
	for _, idx := range m.prVisible {
		if idx >= 0 && idx < len(entries) {
			out = append(out, entries[idx])
		}
	}
	return out
}

// activeList returns the list cursor the current focus drives, if any.
func (m *Model) activeList() *uistate.List {
	switch m.mode.Tab {
	case uistate.TabPRs:
		if m.mode.View == uistate.ViewDiff {
			return nil
		}
		switch m.mode.Focus {
		case uistate.FocusList:
			return &m.prList
		case uistate.FocusChecks:
			return &m.checks
		}
	case uistate.TabActions:
		if m.mode.View == uistate.ViewJobs {
			return &m.jobs
		}
		return &m.runs
	}
	return nil
}

// activeScroll returns the scrollable pane the current focus drives along
// with its maximum line offset.
func (m *Model) activeScroll() (*uistate.Scroll, int) {
	switch m.mode.Tab {
	case uistate.TabPRs:
		if m.mode.View == uistate.ViewDiff {
			return &m.diffScroll, m.diffLineCount()
		}
		if m.mode.Focus == uistate.FocusDetail {
			return &m.detailScroll, m.detailLineCount()
		}
	case uistate.TabLogs:
		return &m.logScroll, m.logLineCount()
	}
	return nil, 0
}

func (m *Model) move(delta int) {
	if list := m.activeList(); list != nil {
		list.Move(delta)
		list.EnsureVisible(m.maxVisibleRows())
		return
	}
	if scroll, max := m.activeScroll(); scroll != nil {
		scroll.ScrollBy(delta, max)
	}
}

func (m *Model) page(delta int) {
	rows := m.maxVisibleRows()
	if list := m.activeList(); list != nil {
		list.MovePage(delta, rows)
		list.EnsureVisible(rows)
		return
	}
	if scroll, max := m.activeScroll(); scroll != nil {
		if rows < 1 {
			rows = 1
		}
		scroll.ScrollBy(delta*rows, max)
	}
}

func (m *Model) home() {
	if list := m.activeList(); list != nil {
		list.MoveHome()
		list.EnsureVisible(m.maxVisibleRows())
		return
	}
	if scroll, _ := m.activeScroll(); scroll != nil {
		scroll.Line = 0
	}
}

func (m *Model) end() {
	if list := m.activeList(); list != nil {
		list.MoveEnd()
		list.EnsureVisible(m.maxVisibleRows())
		return
	}
	if scroll, max := m.activeScroll(); scroll != nil {
		scroll.Line = max
	}
}

// stepMatch moves to the next or previous search hit in the log.
func (m *Model) stepMatch(delta int) {
	if len(m.logMatches) == 0 {
		if m.logQuery == "" {
			m.notify(LevelInfo, "No active search")
		} else {
			m.notify(LevelInfo, "No matches for "+m.logQuery)
		}
		return
	}
	n := len(m.logMatches)
	m.logMatch = ((m.logMatch+delta)%n + n) % n
	m.logScroll.ScrollBy(m.logMatches[m.logMatch]-m.logScroll.Line, m.logLineCount())
}

func (m *Model) updateLogMatches() {
	text, _ := m.stores.Log.Text()
	m.logMatches = uistate.MatchingLines(text, m.logQuery)
	if m.logMatch >= len(m.logMatches) {
		m.logMatch = 0
	}
}
