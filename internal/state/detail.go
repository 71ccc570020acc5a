package state

import "github.com/atomicstack/ghflow/internal/github"

// DetailStore holds everything shown for the selected pull request. Selecting
// a different number discards the previous snapshot.
type DetailStore interface {
	Number() int
	Select(number int)
	Clear()
	PullRequest() (github.PullRequest, bool)
	SetPullRequest(github.PullRequest)
	Checks() []github.WorkflowRun
	ChecksLoaded() bool
	SetChecks([]github.WorkflowRun)
	Diff() (github.Diff, bool)
	SetDiff(github.Diff)
}

type detailStore struct {
	number       int
	pr           *github.PullRequest
	checks       []github.WorkflowRun
	checksLoaded bool
	diff         *github.Diff
}

func NewDetailStore() DetailStore {
	return &detailStore{}
}

func (s *detailStore) Number() int {
	return s.number
}

func (s *detailStore) Select(number int) {
	if number == s.number {
		return
	}
	s.Clear()
	s.number = number
}

func (s *detailStore) Clear() {
	*s = detailStore{}
}

func (s *detailStore) PullRequest() (github.PullRequest, bool) {
	if s.pr == nil {
		return github.PullRequest{}, false
	}
	return *s.pr, true
}

func (s *detailStore) SetPullRequest(pr github.PullRequest) {
	if pr.Number != s.number {
		return
	}
	dup := pr
	s.pr = &dup
}

func (s *detailStore) Checks() []github.WorkflowRun {
	return cloneRuns(s.checks)
}

func (s *detailStore) ChecksLoaded() bool {
	return s.checksLoaded
}

func (s *detailStore) SetChecks(runs []github.WorkflowRun) {
	s.checks = cloneRuns(runs)
	s.checksLoaded = true
}

func (s *detailStore) Diff() (github.Diff, bool) {
	if s.diff == nil {
		return github.Diff{}, false
	}
	return *s.diff, true
}

func (s *detailStore) SetDiff(d github.Diff) {
	dup := d
	s.diff = &dup
}
