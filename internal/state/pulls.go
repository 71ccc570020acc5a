package state

import "github.com/atomicstack/ghflow/internal/github"

// PullRequestStore holds the pull request list for the active filter.
type PullRequestStore interface {
	Entries() []github.PullRequest
	SetEntries(filter github.Filter, prs []github.PullRequest)
	Filter() github.Filter
	SetFilter(github.Filter)
	Loaded() bool
	Find(number int) (github.PullRequest, bool)
	OpenBranches() []string
	RecentBranch() *github.RecentBranch
	SetRecentBranch(*github.RecentBranch)
}

type pullRequestStore struct {
	entries []github.PullRequest
	filter  github.Filter
	loaded  bool
	recent  *github.RecentBranch
}

func NewPullRequestStore() PullRequestStore {
	return &pullRequestStore{filter: github.FilterAll}
}

func (s *pullRequestStore) Entries() []github.PullRequest {
	return clonePullRequests(s.entries)
}

// SetEntries replaces the list wholesale. Entries for a filter other than
// the active one are ignored.
func (s *pullRequestStore) SetEntries(filter github.Filter, prs []github.PullRequest) {
	if filter != s.filter {
		return
	}
	s.entries = clonePullRequests(prs)
	s.loaded = true
}

func (s *pullRequestStore) Filter() github.Filter {
	return s.filter
}

// SetFilter switches the active filter and drops the previous list.
func (s *pullRequestStore) SetFilter(filter github.Filter) {
	if filter == s.filter {
		return
	}
	s.filter = filter
	s.entries = nil
	s.loaded = false
}

func (s *pullRequestStore) Loaded() bool {
	return s.loaded
}

func (s *pullRequestStore) Find(number int) (github.PullRequest, bool) {
	for _, pr := range s.entries {
		if pr.Number == number {
			return pr, true
		}
	}
	return github.PullRequest{}, false
}

func (s *pullRequestStore) OpenBranches() []string {
	branches := make([]string, 0, len(s.entries))
	for _, pr := range s.entries {
		branches = append(branches, pr.HeadRef)
	}
	return branches
}

func (s *pullRequestStore) RecentBranch() *github.RecentBranch {
	if s.recent == nil {
		return nil
	}
	dup := *s.recent
	return &dup
}

func (s *pullRequestStore) SetRecentBranch(b *github.RecentBranch) {
	if b == nil {
		s.recent = nil
		return
	}
	dup := *b
	s.recent = &dup
}

func clonePullRequests(prs []github.PullRequest) []github.PullRequest {
	if len(prs) == 0 {
		return nil
	}
	dup := make([]github.PullRequest, len(prs))
	copy(dup, prs)
	return dup
}
