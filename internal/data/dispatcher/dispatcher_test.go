package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
)

func TestHandleWritesMatchingTargets(t *testing.T) {
	stores := NewStores()
	d := New(stores)
	stores.Detail.Select(12)
	stores.Jobs.Select(40)
	stores.Log.Select(40, 41, "build")

	res := d.Handle(backend.Result{
		Key:     backend.Key{Kind: backend.KindPullRequests, Target: "all"},
		Payload: backend.PullRequestsPayload{Filter: github.FilterAll, PullRequests: []github.PullRequest{{Number: 12}}},
	})
	if !res.PullRequestsUpdated || len(stores.PullRequests.Entries()) != 1 {
		t.Fatalf("expected PR list applied, got %#v", res)
	}

	res = d.Handle(backend.Result{
		Key:     backend.Key{Kind: backend.KindPullRequest, Target: "12"},
		Payload: github.PullRequest{Number: 12, Title: "twelve"},
	})
	if pr, ok := stores.Detail.PullRequest(); !res.DetailUpdated || !ok || pr.Title != "twelve" {
		t.Fatalf("expected detail applied")
	}

	d.Handle(backend.Result{Key: backend.Key{Kind: backend.KindJobs}, Payload: backend.JobsPayload{RunID: 40, Jobs: []github.Job{{ID: 41}}}})
	if !stores.Jobs.Loaded() {
		t.Fatalf("expected jobs applied")
	}

	d.Handle(backend.Result{Key: backend.Key{Kind: backend.KindLog}, Payload: github.Log{RunID: 40, JobID: 41, Text: "ok"}})
	if text, ok := stores.Log.Text(); !ok || text != "ok" {
		t.Fatalf("expected log applied")
	}
}

func TestHandleDropsOtherTargets(t *testing.T) {
	stores := NewStores()
	d := New(stores)
	stores.Detail.Select(1)

	res := d.Handle(backend.Result{Key: backend.Key{Kind: backend.KindDiff}, Payload: backend.DiffPayload{Number: 2}})
	if res.Any() {
		t.Fatalf("diff for another PR must be dropped")
	}
	res = d.Handle(backend.Result{
		Key:     backend.Key{Kind: backend.KindPullRequests, Target: "mine"},
		Payload: backend.PullRequestsPayload{Filter: github.FilterMine},
	})
	if res.Any() {
		t.Fatalf("list for an inactive filter must be dropped")
	}
}

func TestHandleIgnoresErrors(t *testing.T) {
	d := New(NewStores())
	res := d.Handle(backend.Result{Key: backend.Key{Kind: backend.KindRuns}, Err: errors.New("boom")})
	if res.Any() {
		t.Fatalf("error results must not touch stores")
	}
}
