package ui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/testutil"
	"github.com/charmbracelet/x/ansi"
)

func TestViewShowsPullRequestList(t *testing.T) {
	env := newTestEnv(t, Options{Repo: "octo/hello"}).withPullRequests()
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"ghflow", "1 PRs", "octo/hello", "Pull requests · ", "#123", "Fix login", "alice"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if got := len(strings.Split(env.h.View(), "\n")); got != 40 {
		t.Fatalf("expected 40 rows, got %d", got)
	}
}

func TestViewPullRequestListGolden(t *testing.T) {
	env := newTestEnv(t, Options{Repo: "octo/hello"}).withPullRequests()
	env.h.Press("j")
	lines := env.m.pullRequestsView(env.m.Snapshot(), 60, 4)
	for i, line := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(line), " ")
	}
	testutil.AssertGolden(t, "pull_request_list.golden", strings.Join(lines, "\n")+"\n")
}

func TestViewPlaceholders(t *testing.T) {
	env := newTestEnv(t, Options{})
	if view := env.h.View(); !strings.Contains(view, "Loading pull requests…") {
		t.Fatalf("expected loading placeholder:\n%s", view)
	}
	env.settle()
	if view := env.h.View(); !strings.Contains(view, "No open pull requests") {
		t.Fatalf("expected empty placeholder:\n%s", view)
	}
	env.h.Press("3")
	if view := env.h.View(); !strings.Contains(view, "No log selected") {
		t.Fatalf("expected empty log placeholder:\n%s", view)
	}
}

func TestViewDetailPane(t *testing.T) {
	env := newTestEnv(t, Options{})
	pr := samplePullRequests()[0]
	pr.Body = "Fixes the **redirect** loop."
	pr.Labels = []github.Label{{Name: "bug"}}
	pr.ReviewRequests = []github.ReviewRequest{{Login: "bob"}}
	env.provider.PullRequests[github.FilterAll] = samplePullRequests()
	env.provider.Details[1] = pr
	env.settle()
	env.h.Press("enter")
	if view := ansi.Strip(env.h.View()); !strings.Contains(view, "Loading #1…") {
		t.Fatalf("expected detail loading placeholder:\n%s", view)
	}
	env.settle()
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"Detail · #1", "#1 Fix login redirect", "alice wants to merge fix-login into main", "Labels: bug", "Reviewers: bob", "redirect", "No workflow runs for this commit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewStatusLine(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.m.notify(LevelError, "Something broke")
	if !strings.Contains(env.h.View(), "Something broke") {
		t.Fatalf("expected notification in view")
	}
	env.h.Tick(int(env.m.notifyTicks))
	if strings.Contains(env.h.View(), "Something broke") {
		t.Fatalf("expected notification to expire")
	}
}

func TestViewLogSearchMarkers(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.m.openLog(3, 0, "CI", true)
	env.d.reply(env.d.requests[len(env.d.requests)-1], github.Log{RunID: 3, Text: "one\ntwo\nthree two"}, nil)
	env.h.Flush()
	env.h.Press("3", "/")
	env.h.Type("two")
	env.h.Press("enter")
	view := ansi.Strip(env.h.View())
	if !strings.Contains(view, "/two (1/2)") {
		t.Fatalf("expected match counter in title:\n%s", view)
	}
	if !strings.Contains(view, "▶ two") || !strings.Contains(view, "• three two") {
		t.Fatalf("expected match gutter markers:\n%s", view)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		30 * time.Second: "now",
		5 * time.Minute:  "5m",
		3 * time.Hour:    "3h",
		50 * time.Hour:   "2d",
	}
	for d, want := range cases {
		if got := age(now.Add(-d), now); got != want {
			t.Fatalf("age(%v) = %q, want %q", d, got, want)
		}
	}
	if got := age(time.Time{}, now); got != "-" {
		t.Fatalf("zero time: got %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateText("hi", 5); got != "hi" {
		t.Fatalf("unexpected passthrough %q", got)
	}
	if got := truncateText("日本語", 4); runewidthOf(got) > 4 {
		t.Fatalf("wide runes overflow: %q", got)
	}
}

func runewidthOf(s string) int {
	return ansi.StringWidth(s)
}

func TestViewLeavesModelUntouched(t *testing.T) {
	env := newTestEnv(t, Options{})
	pr := samplePullRequests()[0]
	pr.Body = "Fixes the **redirect** loop."
	env.provider.PullRequests[github.FilterAll] = samplePullRequests()
	env.provider.Details[1] = pr
	env.settle()
	env.h.Press("enter")
	env.settle()

	env.m.help.Width = 7
	cached := *env.m.cache
	before := env.m.Snapshot()
	env.h.Press("?")
	env.m.help.Width = 7
	helpBefore := env.m.Snapshot()
	_ = env.h.View()
	if env.m.help.Width != 7 {
		t.Fatalf("rendering the help overlay changed help width to %d", env.m.help.Width)
	}
	if !reflect.DeepEqual(helpBefore, env.m.Snapshot()) {
		t.Fatalf("rendering changed the snapshot")
	}
	env.h.Press("?")
	_ = env.h.View()
	if env.m.help.Width != 7 {
		t.Fatalf("rendering key hints changed help width to %d", env.m.help.Width)
	}
	if env.m.cache.body != cached.body || env.m.cache.width != cached.width {
		t.Fatalf("rendering touched the markdown cache")
	}
	if !reflect.DeepEqual(before.DetailBody, env.m.Snapshot().DetailBody) || len(before.DetailBody) == 0 {
		t.Fatalf("expected a stable rendered body, got %q", before.DetailBody)
	}
}
