package state

import "github.com/atomicstack/ghflow/internal/github"

// RunStore holds the repository's recent workflow runs.
type RunStore interface {
	Entries() []github.WorkflowRun
	SetEntries([]github.WorkflowRun)
	Loaded() bool
	Find(id int64) (github.WorkflowRun, bool)
}

type runStore struct {
	entries []github.WorkflowRun
	loaded  bool
}

func NewRunStore() RunStore {
	return &runStore{}
}

func (s *runStore) Entries() []github.WorkflowRun {
	return cloneRuns(s.entries)
}

func (s *runStore) SetEntries(runs []github.WorkflowRun) {
	s.entries = cloneRuns(runs)
	s.loaded = true
}

func (s *runStore) Loaded() bool {
	return s.loaded
}

func (s *runStore) Find(id int64) (github.WorkflowRun, bool) {
	for _, run := range s.entries {
		if run.ID == id {
			return run, true
		}
	}
	return github.WorkflowRun{}, false
}

// JobStore holds the jobs of the selected run.
type JobStore interface {
	RunID() int64
	Select(runID int64)
	Clear()
	Entries() []github.Job
	SetEntries([]github.Job)
	Loaded() bool
}

type jobStore struct {
	runID   int64
	entries []github.Job
	loaded  bool
}

func NewJobStore() JobStore {
	return &jobStore{}
}

func (s *jobStore) RunID() int64 {
	return s.runID
}

func (s *jobStore) Select(runID int64) {
	if runID == s.runID {
		return
	}
	s.Clear()
	s.runID = runID
}

func (s *jobStore) Clear() {
	*s = jobStore{}
}

func (s *jobStore) Entries() []github.Job {
	if len(s.entries) == 0 {
		return nil
	}
	dup := make([]github.Job, len(s.entries))
	copy(dup, s.entries)
	return dup
}

func (s *jobStore) SetEntries(jobs []github.Job) {
	s.entries = append([]github.Job(nil), jobs...)
	s.loaded = true
}

func (s *jobStore) Loaded() bool {
	return s.loaded
}

func cloneRuns(runs []github.WorkflowRun) []github.WorkflowRun {
	if len(runs) == 0 {
		return nil
	}
	dup := make([]github.WorkflowRun, len(runs))
	copy(dup, runs)
	return dup
}
