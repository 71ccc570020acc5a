package state

// IntentKind names the side effect a transition asks the controller to run.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentQuit
	IntentHint
	IntentSwitchTab
	IntentRefresh
	IntentCreatePR
	IntentMove
	IntentPage
	IntentHome
	IntentEnd
	IntentHScroll
	IntentHScrollReset
	IntentSelectPR
	IntentOpenDiff
	IntentApprove
	IntentMerge
	IntentCheckout
	IntentCopyURL
	IntentCycleFilter
	IntentClearSearch
	IntentRerunCheck
	IntentCheckLogs
	IntentSelectRun
	IntentRerunRun
	IntentJobLogs
	IntentLeaveLogs
	IntentNextMatch
	IntentPrevMatch
	IntentBeginInput
	IntentEditInput
	IntentSubmit
	IntentCancelInput
	IntentInvalidInput
)

var intentNames = map[IntentKind]string{
	IntentNone:         "none",
	IntentQuit:         "quit",
	IntentHint:         "hint",
	IntentSwitchTab:    "switch-tab",
	IntentRefresh:      "refresh",
	IntentCreatePR:     "create-pr",
	IntentMove:         "move",
	IntentPage:         "page",
	IntentHome:         "home",
	IntentEnd:          "end",
	IntentHScroll:      "hscroll",
	IntentHScrollReset: "hscroll-reset",
	IntentSelectPR:     "select-pr",
	IntentOpenDiff:     "open-diff",
	IntentApprove:      "approve",
	IntentMerge:        "merge",
	IntentCheckout:     "checkout",
	IntentCopyURL:      "copy-url",
	IntentCycleFilter:  "cycle-filter",
	IntentClearSearch:  "clear-search",
	IntentRerunCheck:   "rerun-check",
	IntentCheckLogs:    "check-logs",
	IntentSelectRun:    "select-run",
	IntentRerunRun:     "rerun-run",
	IntentJobLogs:      "job-logs",
	IntentLeaveLogs:    "leave-logs",
	IntentNextMatch:    "next-match",
	IntentPrevMatch:    "prev-match",
	IntentBeginInput:   "begin-input",
	IntentEditInput:    "edit-input",
	IntentSubmit:       "submit",
	IntentCancelInput:  "cancel-input",
	IntentInvalidInput: "invalid-input",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent describes the work a key press requested. Delta is used by
// movement intents, Input and Text by input-mode intents and hints.
type Intent struct {
	Kind  IntentKind
	Delta int
	Input InputMode
	Text  string
}

// Facts are read-only observations about loaded data that some transitions
// depend on.
type Facts struct {
	PRSelected    bool
	CheckSelected bool
	SearchActive  bool
	// DetailOpen is set while a pull request is open in the detail pane,
	// which is when the Checks panel is drawn.
	DetailOpen    bool
}
