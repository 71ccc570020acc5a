package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/testutil"
)

type liveEnv struct {
	h        *Harness
	disp     *backend.Dispatcher
	provider *testutil.FakeProvider
}

func newLiveEnv(t *testing.T, provider *testutil.FakeProvider, timeout time.Duration) *liveEnv {
	t.Helper()
	disp := backend.NewDispatcher(provider, backend.Options{Timeout: timeout})
	t.Cleanup(func() {
		disp.Stop()
		disp.Wait()
	})
	model := NewModel(Options{
		Dispatcher: disp,
		Repo:       "octo/hello",
		Width:      120,
		Height:     40,
		Clipboard:  func(string) error { return nil },
	})
	return &liveEnv{h: NewHarness(model), disp: disp, provider: provider}
}

// waitIdle applies results as they arrive until nothing is in flight.
func (e *liveEnv) waitIdle(t *testing.T) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for e.h.Model().Snapshot().Busy() {
		select {
		case <-e.disp.Ready():
			e.h.Flush()
		case <-deadline:
			t.Fatalf("timed out waiting for results; pending %v", e.h.Model().Snapshot().Loading)
		}
	}
}

func TestLiveBrowseAndComment(t *testing.T) {
	provider := testutil.NewFakeProvider()
	provider.PullRequests[github.FilterAll] = samplePullRequests()
	for _, pr := range samplePullRequests() {
		provider.Details[pr.Number] = pr
	}
	provider.CommitRuns["sha2"] = []github.WorkflowRun{{ID: 11, WorkflowName: "CI", Status: "completed", Conclusion: "success"}}
	env := newLiveEnv(t, provider, time.Second)
	env.waitIdle(t)

	env.h.Press("j", "enter")
	env.waitIdle(t)
	snap := env.h.Model().Snapshot()
	if snap.Detail == nil || snap.Detail.Number != 2 || len(snap.Checks) != 1 {
		t.Fatalf("expected #2 with one check, got %#v", snap.Detail)
	}

	env.h.Press("c")
	env.h.Type("Looks good")
	env.h.Press("enter")
	env.waitIdle(t)
	if got := env.h.Model().status.Text; got != "Comment posted" {
		t.Fatalf("unexpected status %q", got)
	}
	if provider.CallCount("PostComment") != 1 {
		t.Fatalf("expected one comment")
	}
	if provider.CallCount("GetPullRequest") < 2 {
		t.Fatalf("expected detail refetch after comment")
	}
}

func TestLiveTimeoutReportsAndRecovers(t *testing.T) {
	provider := testutil.NewFakeProvider()
	provider.PullRequests[github.FilterAll] = samplePullRequests()
	provider.Details[1] = samplePullRequests()[0]
	env := newLiveEnv(t, provider, 50*time.Millisecond)
	env.waitIdle(t)

	release := provider.Block("GetDiff")
	env.h.Press("enter")
	env.waitIdle(t)
	status := env.h.Model().status
	if status.Level != LevelError || !strings.Contains(status.Text, "diff for #1") || !strings.Contains(status.Text, "timed out") {
		t.Fatalf("expected timeout notification, got %#v", status)
	}
	release()

	env.h.Press("d")
	env.waitIdle(t)
	if env.h.Model().Snapshot().Diff == nil {
		t.Fatalf("expected diff loaded after retry")
	}
}

func TestLiveFailedMutationKeepsUIResponsive(t *testing.T) {
	provider := testutil.NewFakeProvider()
	provider.PullRequests[github.FilterAll] = samplePullRequests()
	provider.Fail("Merge", errMergeBlocked)
	env := newLiveEnv(t, provider, time.Second)
	env.waitIdle(t)

	env.h.Press("m")
	env.waitIdle(t)
	status := env.h.Model().status
	if status.Level != LevelError || status.Text != "Merge failed: "+errMergeBlocked.Error() {
		t.Fatalf("unexpected status %#v", status)
	}
	env.h.Press("j")
	if env.h.Model().prList.Cursor != 1 {
		t.Fatalf("expected navigation to keep working")
	}
}

var errMergeBlocked = errors.New("base branch policy prohibits the merge")
