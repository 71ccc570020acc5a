package ui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/testutil"
)

// fakeDispatcher records requests and only produces results when a test
// asks for them, in whatever order the test chooses.
type fakeDispatcher struct {
	requests []backend.Request
	done     map[string]bool
	queued   []backend.Result
	ready    chan struct{}
	seq      int
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{done: make(map[string]bool), ready: make(chan struct{}, 1)}
}

func (f *fakeDispatcher) Spawn(req backend.Request) string {
	f.seq++
	if req.ID == "" {
		req.ID = fmt.Sprintf("req-%d", f.seq)
	}
	f.requests = append(f.requests, req)
	return req.ID
}

func (f *fakeDispatcher) Ready() <-chan struct{} {
	return f.ready
}

func (f *fakeDispatcher) Drain() []backend.Result {
	out := f.queued
	f.queued = nil
	return out
}

func (f *fakeDispatcher) requestsFor(key backend.Key) []backend.Request {
	var out []backend.Request
	for _, req := range f.requests {
		if req.Key == key {
			out = append(out, req)
		}
	}
	return out
}

func (f *fakeDispatcher) kinds(kind backend.Kind) []backend.Request {
	var out []backend.Request
	for _, req := range f.requests {
		if req.Key.Kind == kind {
			out = append(out, req)
		}
	}
	return out
}

// reply queues a hand-made result for req.
func (f *fakeDispatcher) reply(req backend.Request, payload interface{}, err error) {
	f.done[req.ID] = true
	f.queued = append(f.queued, backend.Result{ID: req.ID, Key: req.Key, Generation: req.Generation, Payload: payload, Err: err})
}

// run executes req's task against p and queues the outcome.
func (f *fakeDispatcher) run(req backend.Request, p backend.Provider) {
	payload, err := req.Task(context.Background(), p)
	f.reply(req, payload, err)
}

// runAll executes every request that has not produced a result yet.
func (f *fakeDispatcher) runAll(p backend.Provider) int {
	n := 0
	for i := 0; i < len(f.requests); i++ {
		req := f.requests[i]
		if f.done[req.ID] {
			continue
		}
		f.run(req, p)
		n++
	}
	return n
}

type testEnv struct {
	h        *Harness
	m        *Model
	d        *fakeDispatcher
	provider *testutil.FakeProvider
	copied   []string
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	env := &testEnv{d: newFakeDispatcher(), provider: testutil.NewFakeProvider()}
	opts.Dispatcher = env.d
	if opts.Width == 0 {
		opts.Width = 120
	}
	if opts.Height == 0 {
		opts.Height = 40
	}
	if opts.TickRate == 0 {
		opts.TickRate = 100 * time.Millisecond
	}
	if opts.NotificationDuration == 0 {
		opts.NotificationDuration = 300 * time.Millisecond
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		}
	}
	env.h = NewHarness(NewModel(opts))
	env.m = env.h.Model()
	return env
}

// settle runs and applies requests until no new ones are spawned.
func (e *testEnv) settle() {
	for i := 0; i < 10; i++ {
		if e.d.runAll(e.provider) == 0 {
			return
		}
		e.h.Flush()
	}
}

func samplePullRequests() []github.PullRequest {
	return []github.PullRequest{
		{Number: 1, Title: "Fix login redirect", Author: github.User{Login: "alice"}, HeadRef: "fix-login", HeadSHA: "sha1", BaseRef: "main", State: "OPEN", URL: "https://github.com/octo/hello/pull/1"},
		{Number: 2, Title: "Add metrics endpoint", Author: github.User{Login: "bob"}, HeadRef: "metrics", HeadSHA: "sha2", BaseRef: "main", State: "OPEN", URL: "https://github.com/octo/hello/pull/2"},
		{Number: 123, Title: "Bump dependencies", Author: github.User{Login: "carol"}, HeadRef: "deps", HeadSHA: "sha123", BaseRef: "main", State: "OPEN", URL: "https://github.com/octo/hello/pull/123"},
	}
}

// withPullRequests loads the sample list into the model.
func (e *testEnv) withPullRequests() *testEnv {
	e.provider.PullRequests[github.FilterAll] = samplePullRequests()
	for _, pr := range samplePullRequests() {
		e.provider.Details[pr.Number] = pr
	}
	e.settle()
	return e
}
