package ui

import (
	"strings"
	"testing"
	"time"

	uistate "github.com/atomicstack/ghflow/internal/ui/state"
)

func TestTicksFor(t *testing.T) {
	cases := []struct {
		d, rate time.Duration
		want    uint64
	}{
		{3 * time.Second, 100 * time.Millisecond, 30},
		{250 * time.Millisecond, 100 * time.Millisecond, 3},
		{time.Millisecond, 100 * time.Millisecond, 1},
		{0, 100 * time.Millisecond, 1},
		{time.Second, 0, 1},
	}
	for _, tc := range cases {
		if got := ticksFor(tc.d, tc.rate); got != tc.want {
			t.Fatalf("ticksFor(%v, %v) = %d, want %d", tc.d, tc.rate, got, tc.want)
		}
	}
}

func TestNotificationVisibleForWindow(t *testing.T) {
	env := newTestEnv(t, Options{TickRate: 100 * time.Millisecond, NotificationDuration: 300 * time.Millisecond})
	env.h.Tick(5)
	start := env.m.tick
	env.m.notify(LevelInfo, "hello")
	if env.m.status.Expiry != start+3 {
		t.Fatalf("expected expiry %d, got %d", start+3, env.m.status.Expiry)
	}
	for i := 0; i < 2; i++ {
		env.h.Tick(1)
		if env.m.Snapshot().Status.Text != "hello" {
			t.Fatalf("expected notification visible at tick %d", env.m.tick)
		}
	}
	env.h.Tick(1)
	if env.m.Snapshot().Status.Kind != StatusNone {
		t.Fatalf("expected notification gone at tick %d", env.m.tick)
	}
	if env.m.status.Kind != StatusNone {
		t.Fatalf("expected expired notification cleared")
	}
}

func TestStatusVisible(t *testing.T) {
	n := Status{Kind: StatusNotification, Expiry: 10}
	if !n.Visible(9) || n.Visible(10) || n.Visible(11) {
		t.Fatalf("notification visibility wrong")
	}
	p := Status{Kind: StatusPrompt, Text: "Search:"}
	if !p.Visible(1000) {
		t.Fatalf("prompt must stay visible")
	}
	if (Status{}).Visible(0) {
		t.Fatalf("empty status must be hidden")
	}
}

func TestNewNotificationReplacesOld(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.m.notify(LevelInfo, "first")
	env.h.Tick(1)
	env.m.notify(LevelSuccess, "second")
	if env.m.status.Text != "second" || env.m.status.Expiry != env.m.tick+env.m.notifyTicks {
		t.Fatalf("expected replacement with fresh expiry, got %#v", env.m.status)
	}
}

func TestPromptPersistsAcrossTicks(t *testing.T) {
	env := newTestEnv(t, Options{}).withPullRequests()
	env.h.Press("c")
	if env.m.mode.Input != uistate.InputComment {
		t.Fatalf("expected comment input, got %v", env.m.mode.Input)
	}
	env.h.Tick(100)
	status := env.m.Snapshot().Status
	if status.Kind != StatusPrompt || status.Text != "Comment:" {
		t.Fatalf("expected sticky prompt, got %#v", status)
	}
}

func TestValidationErrorRestoresPrompt(t *testing.T) {
	env := newTestEnv(t, Options{}).withPullRequests()
	env.h.Press("c", "enter")
	status := env.m.status
	if status.Kind != StatusNotification || status.Level != LevelError || status.Text != "Comment cannot be empty" {
		t.Fatalf("expected validation error, got %#v", status)
	}
	if env.m.mode.Input != uistate.InputComment {
		t.Fatalf("expected input mode kept")
	}
	env.h.Tick(int(env.m.notifyTicks))
	if env.m.status.Kind != StatusPrompt || env.m.status.Text != "Comment:" {
		t.Fatalf("expected prompt restored, got %#v", env.m.status)
	}
}

func TestTypingRestoresPromptAfterError(t *testing.T) {
	env := newTestEnv(t, Options{}).withPullRequests()
	env.h.Press("c", "enter")
	env.h.Type("x")
	if env.m.status.Kind != StatusPrompt {
		t.Fatalf("expected prompt after edit, got %#v", env.m.status)
	}
	if !strings.Contains(env.h.View(), "Comment: x") {
		t.Fatalf("expected prompt with buffer in view:\n%s", env.h.View())
	}
}
