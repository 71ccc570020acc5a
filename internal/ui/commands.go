package ui

import (
	"fmt"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/logging/events"
	"github.com/atomicstack/ghflow/internal/ui/command"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// spawnFetch hands task to the dispatcher unless a request for key is
// already in flight. It never blocks.
func (m *Model) spawnFetch(key backend.Key, task backend.Task) bool {
	if m.pending[key] {
		events.Fetch.Dedup(key.Kind.String(), key.Target)
		return false
	}
	return m.spawn(key, task)
}

// refetch always spawns, superseding any in-flight request for key.
func (m *Model) refetch(key backend.Key, task backend.Task) bool {
	return m.spawn(key, task)
}

func (m *Model) spawn(key backend.Key, task backend.Task) bool {
	if m.dispatcher == nil {
		return false
	}
	m.generations[key]++
	gen := m.generations[key]
	m.pending[key] = true
	id := m.dispatcher.Spawn(backend.Request{Key: key, Generation: gen, Task: task})
	events.Fetch.Spawn(id, key.Kind.String(), key.Target, gen)
	return true
}

// startMutation runs a remote change. A second identical mutation while the
// first is still running is refused.
func (m *Model) startMutation(key backend.Key, task backend.Task) {
	if m.pending[key] {
		m.notify(LevelInfo, mutationLabel(key.Kind)+" already in progress")
		return
	}
	events.Action.Start(key.Kind.String(), key.Target)
	if m.spawn(key, task) {
		m.notify(LevelInfo, mutationLabel(key.Kind)+"…")
	}
}

func (m *Model) mutatePR(kind backend.Kind, number int, task backend.Task) {
	m.startMutation(backend.Key{Kind: kind, Target: backend.PRTarget(number)}, task)
}

func pullRequestsKey(filter github.Filter) backend.Key {
	return backend.Key{Kind: backend.KindPullRequests, Target: string(filter)}
}

func (m *Model) loadPullRequests() {
	filter := m.stores.PullRequests.Filter()
	m.spawnFetch(pullRequestsKey(filter), backend.ListPullRequests(filter))
}

func (m *Model) refetchList() {
	filter := m.stores.PullRequests.Filter()
	m.refetch(pullRequestsKey(filter), backend.ListPullRequests(filter))
}

// selectPR makes number the detail target and requests its detail, checks
// and diff. Switching to another pull request discards the old snapshot.
func (m *Model) selectPR(number int) {
	if number <= 0 {
		return
	}
	if m.stores.Detail.Number() != number {
		m.stores.Detail.Select(number)
		m.checks.SetLen(0)
		m.checks.Reset()
		m.detailScroll = uistate.Scroll{}
		m.diffScroll = uistate.Scroll{}
	}
	target := backend.PRTarget(number)
	sha := ""
	if pr, ok := m.stores.PullRequests.Find(number); ok {
		sha = pr.HeadSHA
	}
	m.spawnFetch(backend.Key{Kind: backend.KindPullRequest, Target: target}, backend.GetPullRequest(number))
	m.spawnFetch(backend.Key{Kind: backend.KindChecks, Target: target}, backend.ListChecks(number, sha))
	m.spawnFetch(backend.Key{Kind: backend.KindDiff, Target: target}, backend.GetDiff(number))
}

func (m *Model) openDiff(number int) {
	if m.stores.Detail.Number() != number {
		m.selectPR(number)
		return
	}
	m.diffScroll = uistate.Scroll{}
	if _, ok := m.stores.Detail.Diff(); !ok {
		m.spawnFetch(backend.Key{Kind: backend.KindDiff, Target: backend.PRTarget(number)}, backend.GetDiff(number))
	}
}

// refetchDetail reloads number when it is the pull request on screen.
func (m *Model) refetchDetail(number int, withDiff bool) {
	if number == 0 || m.stores.Detail.Number() != number {
		return
	}
	target := backend.PRTarget(number)
	m.refetch(backend.Key{Kind: backend.KindPullRequest, Target: target}, backend.GetPullRequest(number))
	if withDiff {
		m.refetch(backend.Key{Kind: backend.KindDiff, Target: target}, backend.GetDiff(number))
	}
}

func (m *Model) refetchChecks(number int) {
	m.refetch(backend.Key{Kind: backend.KindChecks, Target: backend.PRTarget(number)}, backend.ListChecks(number, ""))
}

func (m *Model) loadRuns() {
	m.spawnFetch(backend.Key{Kind: backend.KindRuns}, backend.ListRuns())
}

func (m *Model) refetchRuns() {
	m.refetch(backend.Key{Kind: backend.KindRuns}, backend.ListRuns())
}

// selectRun makes runID the jobs target. A zero id clears the jobs view.
func (m *Model) selectRun(runID int64) {
	if runID == 0 {
		m.stores.Jobs.Clear()
		m.jobs.SetLen(0)
		return
	}
	if m.stores.Jobs.RunID() != runID {
		m.stores.Jobs.Select(runID)
		m.jobs.SetLen(0)
		m.jobs.Reset()
	}
	m.spawnFetch(backend.Key{Kind: backend.KindJobs, Target: backend.RunTarget(runID)}, backend.ListJobs(runID))
}

// openLog makes (runID, jobID) the log target and requests its text.
func (m *Model) openLog(runID, jobID int64, title string, completed bool) {
	runBefore, jobBefore := m.stores.Log.Target()
	m.stores.Log.Select(runID, jobID, title)
	if runBefore != runID || jobBefore != jobID {
		m.logScroll = uistate.Scroll{}
		m.logQuery = ""
		m.logMatches = nil
		m.logMatch = 0
	}
	ref := github.LogRef{RunID: runID, JobID: jobID, Completed: completed}
	m.refetch(backend.Key{Kind: backend.KindLog, Target: backend.LogTarget(runID, jobID)}, backend.GetLog(ref))
}

func (m *Model) refetchLog() {
	runID, jobID := m.stores.Log.Target()
	if runID == 0 {
		return
	}
	ref := github.LogRef{RunID: runID, JobID: jobID, Completed: m.logCompleted(runID, jobID)}
	m.refetch(backend.Key{Kind: backend.KindLog, Target: backend.LogTarget(runID, jobID)}, backend.GetLog(ref))
}

func (m *Model) logCompleted(runID, jobID int64) bool {
	if jobID == 0 {
		if run, ok := m.stores.Runs.Find(runID); ok {
			return run.Completed()
		}
		for _, run := range m.stores.Detail.Checks() {
			if run.ID == runID {
				return run.Completed()
			}
		}
		return false
	}
	for _, job := range m.stores.Jobs.Entries() {
		if job.ID == jobID {
			return job.Completed()
		}
	}
	return false
}

// refreshTab reloads everything the active tab shows.
func (m *Model) refreshTab() {
	switch m.mode.Tab {
	case uistate.TabPRs:
		m.refetchList()
		if number := m.stores.Detail.Number(); number != 0 {
			m.refetchDetail(number, true)
			m.refetchChecks(number)
		}
	case uistate.TabActions:
		m.refetchRuns()
		if runID := m.stores.Jobs.RunID(); runID != 0 && m.mode.View == uistate.ViewJobs {
			m.refetch(backend.Key{Kind: backend.KindJobs, Target: backend.RunTarget(runID)}, backend.ListJobs(runID))
		}
	case uistate.TabLogs:
		m.refetchLog()
	}
	m.notify(LevelInfo, "Refreshing…")
}

// autoRefresh is the timer-driven counterpart of refreshTab. It never
// supersedes a request that is already running.
func (m *Model) autoRefresh() {
	switch m.mode.Tab {
	case uistate.TabPRs:
		m.loadPullRequests()
		if number := m.stores.Detail.Number(); number != 0 {
			m.spawnFetch(backend.Key{Kind: backend.KindChecks, Target: backend.PRTarget(number)}, backend.ListChecks(number, ""))
		}
	case uistate.TabActions:
		m.loadRuns()
		if runID := m.stores.Jobs.RunID(); runID != 0 && m.mode.View == uistate.ViewJobs {
			m.spawnFetch(backend.Key{Kind: backend.KindJobs, Target: backend.RunTarget(runID)}, backend.ListJobs(runID))
		}
	case uistate.TabLogs:
		runID, jobID := m.stores.Log.Target()
		if runID != 0 && !m.logCompleted(runID, jobID) {
			ref := github.LogRef{RunID: runID, JobID: jobID}
			m.spawnFetch(backend.Key{Kind: backend.KindLog, Target: backend.LogTarget(runID, jobID)}, backend.GetLog(ref))
		}
	}
}

func (m *Model) cycleFilter() {
	next := m.stores.PullRequests.Filter().Next()
	m.stores.PullRequests.SetFilter(next)
	m.prList.Reset()
	m.syncPullRequests()
	m.loadPullRequests()
	m.notify(LevelInfo, "Filter: "+next.Label())
}

func (m *Model) copyURL(number int) tea.Cmd {
	url := m.pullRequestURL(number)
	if url == "" {
		m.notify(LevelInfo, "Pull request URL not loaded yet")
		return nil
	}
	write := m.clipboard
	return m.bus.Execute(command.Request{
		Label: "copy-url",
		Run: func() (string, error) {
			if err := write(url); err != nil {
				return "", err
			}
			return "Copied " + url, nil
		},
	})
}

func (m *Model) pullRequestURL(number int) string {
	if pr, ok := m.stores.Detail.PullRequest(); ok && pr.Number == number && pr.URL != "" {
		return pr.URL
	}
	if pr, ok := m.stores.PullRequests.Find(number); ok {
		return pr.URL
	}
	return ""
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		events.Action.Error(result.Err)
		m.notifyError(fmt.Sprintf("%s failed: %v", result.Label, result.Err))
		return nil
	}
	events.Action.Success(result.Info)
	if result.Info != "" {
		m.notify(LevelSuccess, result.Info)
	}
	return nil
}
