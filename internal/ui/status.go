package ui

import (
	"time"

	"github.com/atomicstack/ghflow/internal/logging/events"
)

// Level classifies a notification for styling.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// StatusKind tells a notification from a sticky prompt.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusNotification
	StatusPrompt
)

// Status is the single status-line slot. A Notification is visible while
// the tick counter is below Expiry; a Prompt stays until cleared.
type Status struct {
	Kind   StatusKind
	Text   string
	Level  Level
	Expiry uint64
}

// Visible reports whether the message should be drawn at tick.
func (s Status) Visible(tick uint64) bool {
	switch s.Kind {
	case StatusNotification:
		return tick < s.Expiry
	case StatusPrompt:
		return true
	default:
		return false
	}
}

// ticksFor converts a wall-clock duration into a number of ticks, rounding
// up and never returning less than one.
func ticksFor(d, rate time.Duration) uint64 {
	if rate <= 0 || d <= 0 {
		return 1
	}
	n := uint64((d + rate - 1) / rate)
	if n == 0 {
		return 1
	}
	return n
}

func (m *Model) notify(level Level, text string) {
	expiry := m.tick + m.notifyTicks
	m.status = Status{Kind: StatusNotification, Text: text, Level: level, Expiry: expiry}
	events.Status.Notify(level.String(), text, expiry)
}

func (m *Model) notifyError(text string) {
	m.notify(LevelError, text)
}

func (m *Model) setPrompt(text string) {
	m.status = Status{Kind: StatusPrompt, Text: text}
	events.Status.Prompt(text)
}

func (m *Model) clearStatus() {
	m.status = Status{}
}

// clearPrompt removes a prompt but leaves a pending notification alone.
func (m *Model) clearPrompt() {
	if m.status.Kind == StatusPrompt {
		m.clearStatus()
	}
}

// expireStatus drops a notification whose expiry tick has been reached. If
// an input mode is still active its prompt is shown again.
func (m *Model) expireStatus() {
	if m.status.Kind != StatusNotification || m.tick < m.status.Expiry {
		return
	}
	events.Status.Expire(m.status.Text, m.tick)
	m.clearStatus()
	if prompt := m.mode.Input.Prompt(); prompt != "" {
		m.setPrompt(prompt)
	}
}
