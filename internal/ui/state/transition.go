package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

const logHScrollStep = 10

var keys = DefaultKeyMap()

// Keys exposes the bindings used by Transition.
func Keys() KeyMap {
	return keys
}

// Transition computes the successor mode for a key press along with the
// intent the controller should execute. It is pure and total: unknown keys
// and illegal combinations leave the mode untouched and return IntentNone.
func Transition(m Mode, k Key, f Facts) (Mode, Intent) {
	m = Normalize(m)
	if key.Matches(k, keys.ForceQuit) {
		return m, Intent{Kind: IntentQuit}
	}
	if m.Input != InputNone {
		return editInput(m, k)
	}
	if m.Help {
		if key.Matches(k, keys.Back, keys.Help) {
			m.Help = false
		}
		return m, Intent{}
	}
	if next, intent, ok := globalKeys(m, k); ok {
		return Normalize(next), intent
	}
	var intent Intent
	switch m.Tab {
	case TabPRs:
		m, intent = pullRequestKeys(m, k, f)
	case TabActions:
		m, intent = actionsKeys(m, k)
	case TabLogs:
		m, intent = logsKeys(m, k)
	}
	return Normalize(m), intent
}

func globalKeys(m Mode, k Key) (Mode, Intent, bool) {
	switch {
	case key.Matches(k, keys.Quit):
		return m, Intent{Kind: IntentQuit}, true
	case key.Matches(k, keys.Help):
		m.Help = true
		return m, Intent{}, true
	case key.Matches(k, keys.TabPRs):
		m = Mode{Tab: TabPRs, View: ViewList, Focus: FocusList}
		return m, Intent{Kind: IntentSwitchTab}, true
	case key.Matches(k, keys.TabActions):
		m = Mode{Tab: TabActions, View: ViewList, Focus: FocusList}
		return m, Intent{Kind: IntentSwitchTab}, true
	case key.Matches(k, keys.TabLogs):
		if m.Tab == TabLogs {
			return m, Intent{}, true
		}
		return enterLogs(m), Intent{Kind: IntentSwitchTab}, true
	case key.Matches(k, keys.Refresh):
		return m, Intent{Kind: IntentRefresh}, true
	case key.Matches(k, keys.CreatePR) && m.Tab == TabPRs && m.View == ViewList:
		return m, Intent{Kind: IntentCreatePR}, true
	}
	return m, Intent{}, false
}

func enterLogs(m Mode) Mode {
	return Mode{
		Tab:    TabLogs,
		View:   ViewDetail,
		Focus:  FocusDetail,
		Return: Origin{Set: true, Tab: m.Tab, View: m.View, Focus: m.Focus},
	}
}

func leaveLogs(m Mode) Mode {
	if !m.Return.Set {
		return Mode{Tab: TabActions, View: ViewList, Focus: FocusList}
	}
	return Mode{Tab: m.Return.Tab, View: m.Return.View, Focus: m.Return.Focus}
}

func pullRequestKeys(m Mode, k Key, f Facts) (Mode, Intent) {
	if m.View == ViewDiff {
		return scrollKeys(m, k, func(m Mode) Mode {
			m.View = ViewDetail
			m.Focus = FocusDetail
			return m
		})
	}
	switch {
	case key.Matches(k, keys.Down):
		return m, Intent{Kind: IntentMove, Delta: 1}
	case key.Matches(k, keys.Up):
		return m, Intent{Kind: IntentMove, Delta: -1}
	case key.Matches(k, keys.PageDown):
		return m, Intent{Kind: IntentPage, Delta: 1}
	case key.Matches(k, keys.PageUp):
		return m, Intent{Kind: IntentPage, Delta: -1}
	case key.Matches(k, keys.Top):
		return m, Intent{Kind: IntentHome}
	case key.Matches(k, keys.Bottom):
		return m, Intent{Kind: IntentEnd}
	case key.Matches(k, keys.Left):
		m.Focus = FocusList
		return m, Intent{}
	case key.Matches(k, keys.Right):
		switch m.Focus {
		case FocusList:
			m.Focus = FocusDetail
		case FocusDetail:
			if f.DetailOpen {
				m.Focus = FocusChecks
			}
		}
		return m, Intent{}
	case key.Matches(k, keys.CycleFocus):
		return cycleFocus(m, 1, f), Intent{}
	case key.Matches(k, keys.CycleBack):
		return cycleFocus(m, 2, f), Intent{}
	case key.Matches(k, keys.Select):
		switch m.Focus {
		case FocusList:
			if !f.PRSelected {
				return m, hint("No pull request selected")
			}
			m.View = ViewDetail
			m.Focus = FocusDetail
			return m, Intent{Kind: IntentSelectPR}
		case FocusChecks:
			return checkLogs(m, f)
		}
		return m, Intent{}
	case key.Matches(k, keys.Back):
		if m.View == ViewDetail {
			m.View = ViewList
			m.Focus = FocusList
			return m, Intent{}
		}
		if f.SearchActive {
			return m, Intent{Kind: IntentClearSearch}
		}
		return m, Intent{}
	case key.Matches(k, keys.Diff):
		if !f.PRSelected {
			return m, hint("No pull request selected")
		}
		m.View = ViewDiff
		m.Focus = FocusDetail
		return m, Intent{Kind: IntentOpenDiff}
	case key.Matches(k, keys.Approve):
		return requirePR(m, f, Intent{Kind: IntentApprove})
	case key.Matches(k, keys.Merge):
		return requirePR(m, f, Intent{Kind: IntentMerge})
	case key.Matches(k, keys.Checkout):
		return requirePR(m, f, Intent{Kind: IntentCheckout})
	case key.Matches(k, keys.CopyURL):
		return requirePR(m, f, Intent{Kind: IntentCopyURL})
	case key.Matches(k, keys.Comment):
		return beginInput(m, f, InputComment)
	case key.Matches(k, keys.Request):
		return beginInput(m, f, InputRequestChanges)
	case key.Matches(k, keys.EditTitle):
		return beginInput(m, f, InputEditTitle)
	case key.Matches(k, keys.AddLabel):
		return beginInput(m, f, InputAddLabel)
	case key.Matches(k, keys.AddReviewer):
		return beginInput(m, f, InputAddReviewer)
	case key.Matches(k, keys.Search):
		if m.View != ViewList {
			return m, Intent{}
		}
		m.Input = InputSearch
		m.Buffer = ""
		return m, Intent{Kind: IntentBeginInput, Input: InputSearch}
	case key.Matches(k, keys.Filter):
		return m, Intent{Kind: IntentCycleFilter}
	case key.Matches(k, keys.Rerun):
		if !f.CheckSelected {
			return m, hint("No check selected")
		}
		return m, Intent{Kind: IntentRerunCheck}
	case key.Matches(k, keys.Logs):
		return checkLogs(m, f)
	}
	return m, Intent{}
}

// cycleFocus steps through the pull request panels, skipping Checks while
// no pull request is open.
func cycleFocus(m Mode, step Focus, f Facts) Mode {
	for {
		m.Focus = (m.Focus + step) % 3
		if m.Focus != FocusChecks || f.DetailOpen {
			return m
		}
	}
}

func checkLogs(m Mode, f Facts) (Mode, Intent) {
	if !f.CheckSelected {
		return m, hint("No check selected")
	}
	return enterLogs(m), Intent{Kind: IntentCheckLogs}
}

func requirePR(m Mode, f Facts, intent Intent) (Mode, Intent) {
	if !f.PRSelected {
		return m, hint("No pull request selected")
	}
	return m, intent
}

func beginInput(m Mode, f Facts, input InputMode) (Mode, Intent) {
	if !f.PRSelected {
		return m, hint("No pull request selected")
	}
	m.Input = input
	m.Buffer = ""
	return m, Intent{Kind: IntentBeginInput, Input: input}
}

func hint(text string) Intent {
	return Intent{Kind: IntentHint, Text: text}
}

// scrollKeys handles the shared vertical scrolling keys of read-only panes.
func scrollKeys(m Mode, k Key, back func(Mode) Mode) (Mode, Intent) {
	switch {
	case key.Matches(k, keys.Down):
		return m, Intent{Kind: IntentMove, Delta: 1}
	case key.Matches(k, keys.Up):
		return m, Intent{Kind: IntentMove, Delta: -1}
	case key.Matches(k, keys.PageDown):
		return m, Intent{Kind: IntentPage, Delta: 1}
	case key.Matches(k, keys.PageUp):
		return m, Intent{Kind: IntentPage, Delta: -1}
	case key.Matches(k, keys.Top):
		return m, Intent{Kind: IntentHome}
	case key.Matches(k, keys.Bottom):
		return m, Intent{Kind: IntentEnd}
	case key.Matches(k, keys.Back):
		return back(m), Intent{}
	}
	return m, Intent{}
}

func actionsKeys(m Mode, k Key) (Mode, Intent) {
	switch {
	case key.Matches(k, keys.Down):
		return m, Intent{Kind: IntentMove, Delta: 1}
	case key.Matches(k, keys.Up):
		return m, Intent{Kind: IntentMove, Delta: -1}
	case key.Matches(k, keys.PageDown):
		return m, Intent{Kind: IntentPage, Delta: 1}
	case key.Matches(k, keys.PageUp):
		return m, Intent{Kind: IntentPage, Delta: -1}
	case key.Matches(k, keys.Top):
		return m, Intent{Kind: IntentHome}
	case key.Matches(k, keys.Bottom):
		return m, Intent{Kind: IntentEnd}
	case key.Matches(k, keys.Rerun):
		return m, Intent{Kind: IntentRerunRun}
	}
	if m.View == ViewJobs {
		switch {
		case key.Matches(k, keys.Select, keys.Logs):
			return enterLogs(m), Intent{Kind: IntentJobLogs}
		case key.Matches(k, keys.Back):
			m.View = ViewList
			return m, Intent{}
		}
		return m, Intent{}
	}
	if key.Matches(k, keys.Select) {
		m.View = ViewJobs
		m.Focus = FocusList
		return m, Intent{Kind: IntentSelectRun}
	}
	return m, Intent{}
}

func logsKeys(m Mode, k Key) (Mode, Intent) {
	switch {
	case key.Matches(k, keys.ScrollLeft):
		return m, Intent{Kind: IntentHScroll, Delta: -logHScrollStep}
	case key.Matches(k, keys.ScrollRight):
		return m, Intent{Kind: IntentHScroll, Delta: logHScrollStep}
	case key.Matches(k, keys.LineStart):
		return m, Intent{Kind: IntentHScrollReset}
	case key.Matches(k, keys.Search):
		m.Input = InputSearch
		m.Buffer = ""
		return m, Intent{Kind: IntentBeginInput, Input: InputSearch}
	case key.Matches(k, keys.NextMatch):
		return m, Intent{Kind: IntentNextMatch}
	case key.Matches(k, keys.PrevMatch):
		return m, Intent{Kind: IntentPrevMatch}
	case key.Matches(k, keys.Back):
		return leaveLogs(m), Intent{Kind: IntentLeaveLogs}
	}
	return scrollKeys(m, k, func(m Mode) Mode { return m })
}

func editInput(m Mode, k Key) (Mode, Intent) {
	input := m.Input
	switch {
	case key.Matches(k, keys.Cancel):
		m.Input = InputNone
		m.Buffer = ""
		return m, Intent{Kind: IntentCancelInput, Input: input}
	case key.Matches(k, keys.Submit):
		text := strings.TrimSpace(m.Buffer)
		if text == "" && !input.AllowsEmpty() {
			return m, Intent{Kind: IntentInvalidInput, Input: input, Text: emptyInputMessage(input)}
		}
		m.Input = InputNone
		m.Buffer = ""
		return m, Intent{Kind: IntentSubmit, Input: input, Text: text}
	case key.Matches(k, keys.Backspace):
		buf, ok := DeleteRuneBackward(m.Buffer)
		if !ok {
			return m, Intent{}
		}
		m.Buffer = buf
		return m, Intent{Kind: IntentEditInput, Input: input}
	case key.Matches(k, keys.ClearInput):
		if m.Buffer == "" {
			return m, Intent{}
		}
		m.Buffer = ""
		return m, Intent{Kind: IntentEditInput, Input: input}
	case key.Matches(k, keys.DeleteWord):
		buf, ok := DeleteWordBackward(m.Buffer)
		if !ok {
			return m, Intent{}
		}
		m.Buffer = buf
		return m, Intent{Kind: IntentEditInput, Input: input}
	}
	if k.Text == "" {
		return m, Intent{}
	}
	m.Buffer = AppendText(m.Buffer, k.Text)
	return m, Intent{Kind: IntentEditInput, Input: input}
}

func emptyInputMessage(input InputMode) string {
	switch input {
	case InputComment, InputRequestChanges:
		return "Comment cannot be empty"
	case InputEditTitle:
		return "Title cannot be empty"
	case InputAddLabel:
		return "Label cannot be empty"
	case InputAddReviewer:
		return "Reviewer cannot be empty"
	default:
		return "Input cannot be empty"
	}
}
