package ui

import (
	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/logging/events"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
)

// beginInput shows the sticky prompt for a freshly entered input mode.
func (m *Model) beginInput(input uistate.InputMode) {
	events.Input.Begin(input.String())
	if input == uistate.InputSearch && m.mode.Tab == uistate.TabPRs {
		m.queryBefore = m.prQuery
	}
	m.setPrompt(input.Prompt())
}

// editInput reacts to a buffer change. The pull request list filters as
// the query is typed; every other mode waits for submit.
func (m *Model) editInput(input uistate.InputMode) {
	events.Input.Edit(input.String(), m.mode.Buffer)
	if input == uistate.InputSearch && m.mode.Tab == uistate.TabPRs {
		m.prQuery = m.mode.Buffer
		m.syncPullRequests()
		m.prList.Reset()
	}
	if m.status.Kind != StatusPrompt {
		m.setPrompt(input.Prompt())
	}
}

// submitInput runs the action bound to input exactly once.
func (m *Model) submitInput(input uistate.InputMode, text string) {
	events.Input.Submit(input.String(), len(text))
	m.clearPrompt()
	if input == uistate.InputSearch {
		m.submitSearch(text)
		return
	}
	number, ok := m.targetPR()
	if !ok {
		m.notify(LevelInfo, "No pull request selected")
		return
	}
	switch input {
	case uistate.InputComment:
		m.mutatePR(backend.KindComment, number, backend.PostComment(number, text))
	case uistate.InputRequestChanges:
		m.mutatePR(backend.KindRequestChanges, number, backend.RequestChanges(number, text))
	case uistate.InputEditTitle:
		m.mutatePR(backend.KindEditTitle, number, backend.SetTitle(number, text))
	case uistate.InputAddLabel:
		m.mutatePR(backend.KindAddLabel, number, backend.AddLabel(number, text))
	case uistate.InputAddReviewer:
		m.mutatePR(backend.KindAddReviewer, number, backend.AddReviewer(number, text))
	}
}

func (m *Model) submitSearch(text string) {
	switch m.mode.Tab {
	case uistate.TabPRs:
		m.prQuery = text
		m.syncPullRequests()
		m.prList.Reset()
	case uistate.TabLogs:
		m.logQuery = text
		m.logMatch = 0
		m.updateLogMatches()
		if text == "" {
			return
		}
		if len(m.logMatches) == 0 {
			m.notify(LevelInfo, "No matches for "+text)
			return
		}
		m.logScroll.ScrollBy(m.logMatches[0]-m.logScroll.Line, m.logLineCount())
	}
}

// cancelInput discards the buffer without running any action.
func (m *Model) cancelInput(input uistate.InputMode) {
	events.Input.Cancel(input.String())
	m.clearPrompt()
	if input == uistate.InputSearch && m.mode.Tab == uistate.TabPRs {
		m.prQuery = m.queryBefore
		m.syncPullRequests()
	}
}

// rejectInput reports a validation failure while keeping the input mode.
func (m *Model) rejectInput(input uistate.InputMode, reason string) {
	events.Input.Invalid(input.String(), reason)
	m.notifyError(reason)
}
