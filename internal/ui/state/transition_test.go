package state

import (
	"math/rand"
	"testing"
)

var probeKeys = []Key{
	KeyOf("ctrl+c"), KeyOf("enter"), KeyOf("esc"), KeyOf("tab"), KeyOf("shift+tab"),
	KeyOf("backspace"), KeyOf("ctrl+u"), KeyOf("ctrl+w"), KeyOf("up"), KeyOf("down"),
	KeyOf("left"), KeyOf("right"), KeyOf("pgup"), KeyOf("pgdown"), KeyOf("home"), KeyOf("end"),
	KeyOf("f5"), KeyOf("alt+x"),
	RuneKey('q'), RuneKey('?'), RuneKey('1'), RuneKey('2'), RuneKey('3'), RuneKey('r'),
	RuneKey('n'), RuneKey('N'), RuneKey('j'), RuneKey('k'), RuneKey('h'), RuneKey('l'),
	RuneKey('d'), RuneKey('v'), RuneKey('x'), RuneKey('c'), RuneKey('m'), RuneKey('C'),
	RuneKey('f'), RuneKey('R'), RuneKey('L'), RuneKey('e'), RuneKey('a'), RuneKey('u'),
	RuneKey('y'), RuneKey('/'), RuneKey('g'), RuneKey('G'), RuneKey('0'), RuneKey(' '),
	RuneKey('z'), RuneKey('é'),
}

var probeFacts = []Facts{
	{},
	{PRSelected: true},
	{PRSelected: true, CheckSelected: true, SearchActive: true},
	{PRSelected: true, CheckSelected: true, DetailOpen: true},
}

func allModes() []Mode {
	var out []Mode
	for _, tab := range Tabs() {
		for view := ViewList; view <= ViewJobs; view++ {
			for focus := FocusList; focus <= FocusChecks; focus++ {
				for input := InputNone; input <= InputAddReviewer; input++ {
					for _, help := range []bool{false, true} {
						out = append(out, Mode{Tab: tab, View: view, Focus: focus, Input: input, Help: help, Buffer: "ab"})
					}
				}
			}
		}
	}
	return out
}

func TestTransitionAlwaysYieldsValidMode(t *testing.T) {
	for _, mode := range allModes() {
		for _, facts := range probeFacts {
			for _, k := range probeKeys {
				next, _ := Transition(mode, k, facts)
				if !next.Valid() {
					t.Fatalf("invalid successor %#v for %#v on %q", next, mode, k.Name)
				}
				if next.Input == InputNone && next.Buffer != "" {
					t.Fatalf("expected empty buffer outside input mode, got %q", next.Buffer)
				}
			}
		}
	}
}

func TestRandomKeySequencesKeepFocusValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		mode := Initial()
		facts := probeFacts[rng.Intn(len(probeFacts))]
		for step := 0; step < 300; step++ {
			k := probeKeys[rng.Intn(len(probeKeys))]
			if k.Name == "ctrl+c" || k.Name == "q" {
				continue
			}
			mode, _ = Transition(mode, k, facts)
			foci := ValidFoci(mode.Tab, mode.View)
			if !containsFocus(foci, mode.Focus) {
				t.Fatalf("run %d step %d: focus %s not valid for %s/%s", run, step, mode.Focus, mode.Tab, mode.View)
			}
		}
	}
}

func TestNormalizeRepairsInvalidMode(t *testing.T) {
	m := Normalize(Mode{Tab: TabActions, View: ViewDiff, Focus: FocusChecks})
	if m.View != ViewList || m.Focus != FocusList {
		t.Fatalf("expected actions list/list, got %s/%s", m.View, m.Focus)
	}
	m = Normalize(Mode{Tab: TabLogs, View: ViewJobs, Focus: FocusList})
	if m.View != ViewDetail || m.Focus != FocusDetail {
		t.Fatalf("expected logs detail/detail, got %s/%s", m.View, m.Focus)
	}
	m = Normalize(Mode{Tab: TabPRs, View: ViewDiff, Focus: FocusChecks})
	if m.Focus != FocusDetail {
		t.Fatalf("expected diff focus detail, got %s", m.Focus)
	}
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	for _, mode := range allModes() {
		_, intent := Transition(mode, KeyOf("ctrl+c"), Facts{})
		if intent.Kind != IntentQuit {
			t.Fatalf("expected quit from %#v, got %s", mode, intent.Kind)
		}
	}
}

func TestInputModeCapturesNavigationKeys(t *testing.T) {
	m := Mode{Tab: TabPRs, View: ViewDetail, Focus: FocusDetail, Input: InputComment}
	for _, r := range "q1?jr" {
		var intent Intent
		m, intent = Transition(m, RuneKey(r), Facts{PRSelected: true})
		if intent.Kind != IntentEditInput {
			t.Fatalf("expected edit intent for %q, got %s", r, intent.Kind)
		}
	}
	if m.Buffer != "q1?jr" {
		t.Fatalf("expected buffer to capture keys, got %q", m.Buffer)
	}
	if m.Tab != TabPRs || m.View != ViewDetail {
		t.Fatalf("expected navigation suspended, got %s/%s", m.Tab, m.View)
	}
}

func TestInputEditing(t *testing.T) {
	m := Mode{Tab: TabPRs, View: ViewList, Focus: FocusList, Input: InputAddLabel}
	for _, r := range "bug fix" {
		m, _ = Transition(m, RuneKey(r), Facts{})
	}
	if m.Buffer != "bug fix" {
		t.Fatalf("expected buffer %q, got %q", "bug fix", m.Buffer)
	}
	m, _ = Transition(m, KeyOf("backspace"), Facts{})
	if m.Buffer != "bug fi" {
		t.Fatalf("expected backspace to drop last rune, got %q", m.Buffer)
	}
	m, _ = Transition(m, KeyOf("ctrl+w"), Facts{})
	if m.Buffer != "bug " {
		t.Fatalf("expected word deletion, got %q", m.Buffer)
	}
	m, _ = Transition(m, KeyOf("ctrl+u"), Facts{})
	if m.Buffer != "" {
		t.Fatalf("expected cleared buffer, got %q", m.Buffer)
	}
	_, intent := Transition(m, KeyOf("backspace"), Facts{})
	if intent.Kind != IntentNone {
		t.Fatalf("expected no-op backspace on empty buffer, got %s", intent.Kind)
	}
}

func TestSubmitExitsInputModeWithPayload(t *testing.T) {
	m, intent := Transition(Mode{Tab: TabPRs, View: ViewDetail, Focus: FocusDetail}, RuneKey('c'), Facts{PRSelected: true})
	if m.Input != InputComment || intent.Kind != IntentBeginInput {
		t.Fatalf("expected comment input to begin, got %s / %s", m.Input, intent.Kind)
	}
	for _, r := range "lgtm" {
		m, _ = Transition(m, RuneKey(r), Facts{PRSelected: true})
	}
	m, intent = Transition(m, KeyOf("enter"), Facts{PRSelected: true})
	if m.Input != InputNone || m.Buffer != "" {
		t.Fatalf("expected input reset, got %s %q", m.Input, m.Buffer)
	}
	if intent.Kind != IntentSubmit || intent.Input != InputComment || intent.Text != "lgtm" {
		t.Fatalf("unexpected submit intent %#v", intent)
	}
}

func TestEscapeCancelsInputWithoutAction(t *testing.T) {
	m := Mode{Tab: TabPRs, View: ViewDetail, Focus: FocusDetail, Input: InputEditTitle, Buffer: "new title"}
	m, intent := Transition(m, KeyOf("esc"), Facts{PRSelected: true})
	if m.Input != InputNone || m.Buffer != "" {
		t.Fatalf("expected input discarded, got %s %q", m.Input, m.Buffer)
	}
	if intent.Kind != IntentCancelInput {
		t.Fatalf("expected cancel intent, got %s", intent.Kind)
	}
}

func TestEmptySubmissionStaysInInputMode(t *testing.T) {
	m := Mode{Tab: TabPRs, View: ViewDetail, Focus: FocusDetail, Input: InputAddReviewer, Buffer: "   "}
	m, intent := Transition(m, KeyOf("enter"), Facts{PRSelected: true})
	if m.Input != InputAddReviewer {
		t.Fatalf("expected input mode kept, got %s", m.Input)
	}
	if intent.Kind != IntentInvalidInput || intent.Text == "" {
		t.Fatalf("expected validation intent, got %#v", intent)
	}

	search := Mode{Tab: TabLogs, View: ViewDetail, Focus: FocusDetail, Input: InputSearch}
	search, intent = Transition(search, KeyOf("enter"), Facts{})
	if search.Input != InputNone || intent.Kind != IntentSubmit || intent.Text != "" {
		t.Fatalf("expected empty search to submit, got %s %#v", search.Input, intent)
	}
}

func TestActionsEnterWithoutRunsOpensJobs(t *testing.T) {
	m, intent := Transition(Initial(), RuneKey('2'), Facts{})
	if m.Tab != TabActions || intent.Kind != IntentSwitchTab {
		t.Fatalf("expected actions tab, got %s %s", m.Tab, intent.Kind)
	}
	m, intent = Transition(m, KeyOf("enter"), Facts{})
	if m.View != ViewJobs || m.Focus != FocusList {
		t.Fatalf("expected jobs view, got %s/%s", m.View, m.Focus)
	}
	if intent.Kind != IntentSelectRun {
		t.Fatalf("expected select-run intent, got %s", intent.Kind)
	}
}

func TestJobLogsRoundTrip(t *testing.T) {
	m := Mode{Tab: TabActions, View: ViewJobs, Focus: FocusList}
	m, intent := Transition(m, RuneKey('L'), Facts{})
	if m.Tab != TabLogs || intent.Kind != IntentJobLogs {
		t.Fatalf("expected logs tab via L, got %s %s", m.Tab, intent.Kind)
	}
	m, intent = Transition(m, KeyOf("esc"), Facts{})
	if m.Tab != TabActions || m.View != ViewJobs || intent.Kind != IntentLeaveLogs {
		t.Fatalf("expected return to actions jobs, got %s/%s %s", m.Tab, m.View, intent.Kind)
	}
}

func TestCheckLogsReturnToPullRequest(t *testing.T) {
	m := Mode{Tab: TabPRs, View: ViewDetail, Focus: FocusChecks}
	_, intent := Transition(m, KeyOf("enter"), Facts{PRSelected: true})
	if intent.Kind != IntentHint {
		t.Fatalf("expected hint without a check, got %s", intent.Kind)
	}
	m, intent = Transition(m, KeyOf("enter"), Facts{PRSelected: true, CheckSelected: true})
	if m.Tab != TabLogs || intent.Kind != IntentCheckLogs {
		t.Fatalf("expected check logs, got %s %s", m.Tab, intent.Kind)
	}
	m, _ = Transition(m, KeyOf("esc"), Facts{})
	if m.Tab != TabPRs || m.View != ViewDetail || m.Focus != FocusChecks {
		t.Fatalf("expected return to pr detail checks, got %s/%s/%s", m.Tab, m.View, m.Focus)
	}
}

func TestFocusCycling(t *testing.T) {
	open := Facts{PRSelected: true, DetailOpen: true}
	m := Initial()
	want := []Focus{FocusDetail, FocusChecks, FocusList}
	for i, expected := range want {
		m, _ = Transition(m, KeyOf("tab"), open)
		if m.Focus != expected {
			t.Fatalf("step %d: expected %s, got %s", i, expected, m.Focus)
		}
	}
	m, _ = Transition(m, KeyOf("shift+tab"), open)
	if m.Focus != FocusChecks {
		t.Fatalf("expected reverse cycle to checks, got %s", m.Focus)
	}
	m, _ = Transition(m, RuneKey('h'), open)
	if m.Focus != FocusList {
		t.Fatalf("expected h to focus list, got %s", m.Focus)
	}
}

func TestFocusCyclingSkipsChecksWithoutDetail(t *testing.T) {
	closed := Facts{PRSelected: true}
	m := Initial()
	want := []Focus{FocusDetail, FocusList, FocusDetail}
	for i, expected := range want {
		m, _ = Transition(m, KeyOf("tab"), closed)
		if m.Focus != expected {
			t.Fatalf("step %d: expected %s, got %s", i, expected, m.Focus)
		}
	}
	m, _ = Transition(m, KeyOf("shift+tab"), closed)
	if m.Focus != FocusList {
		t.Fatalf("expected reverse cycle to skip checks, got %s", m.Focus)
	}
	m, _ = Transition(m, KeyOf("shift+tab"), closed)
	if m.Focus != FocusDetail {
		t.Fatalf("expected reverse cycle to detail, got %s", m.Focus)
	}
	m, _ = Transition(m, RuneKey('l'), closed)
	if m.Focus != FocusDetail {
		t.Fatalf("expected l to stay on detail, got %s", m.Focus)
	}
}

func TestSelectPullRequestOpensDetail(t *testing.T) {
	_, intent := Transition(Initial(), KeyOf("enter"), Facts{})
	if intent.Kind != IntentHint {
		t.Fatalf("expected hint with no PR, got %s", intent.Kind)
	}
	m, intent := Transition(Initial(), KeyOf("enter"), Facts{PRSelected: true})
	if m.View != ViewDetail || m.Focus != FocusDetail || intent.Kind != IntentSelectPR {
		t.Fatalf("expected detail view, got %s/%s %s", m.View, m.Focus, intent.Kind)
	}
	m, intent = Transition(m, RuneKey('d'), Facts{PRSelected: true})
	if m.View != ViewDiff || intent.Kind != IntentOpenDiff {
		t.Fatalf("expected diff view, got %s %s", m.View, intent.Kind)
	}
	m, _ = Transition(m, KeyOf("esc"), Facts{PRSelected: true})
	if m.View != ViewDetail {
		t.Fatalf("expected esc to leave diff, got %s", m.View)
	}
	m, _ = Transition(m, KeyOf("esc"), Facts{PRSelected: true})
	if m.View != ViewList || m.Focus != FocusList {
		t.Fatalf("expected esc to return to list, got %s/%s", m.View, m.Focus)
	}
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	m, _ := Transition(Initial(), RuneKey('?'), Facts{})
	if !m.Help {
		t.Fatalf("expected help overlay")
	}
	m, intent := Transition(m, RuneKey('2'), Facts{})
	if m.Tab != TabPRs || intent.Kind != IntentNone {
		t.Fatalf("expected keys swallowed while help is open, got %s %s", m.Tab, intent.Kind)
	}
	m, _ = Transition(m, KeyOf("esc"), Facts{})
	if m.Help {
		t.Fatalf("expected help closed")
	}
}

func TestCreatePROnlyFromPullRequestList(t *testing.T) {
	_, intent := Transition(Initial(), RuneKey('n'), Facts{})
	if intent.Kind != IntentCreatePR {
		t.Fatalf("expected create-pr, got %s", intent.Kind)
	}
	_, intent = Transition(Mode{Tab: TabLogs, View: ViewDetail, Focus: FocusDetail}, RuneKey('n'), Facts{})
	if intent.Kind != IntentNextMatch {
		t.Fatalf("expected next-match in logs, got %s", intent.Kind)
	}
}

func TestLogsHorizontalScroll(t *testing.T) {
	m := Mode{Tab: TabLogs, View: ViewDetail, Focus: FocusDetail}
	_, intent := Transition(m, RuneKey('l'), Facts{})
	if intent.Kind != IntentHScroll || intent.Delta != logHScrollStep {
		t.Fatalf("expected hscroll right, got %#v", intent)
	}
	_, intent = Transition(m, RuneKey('h'), Facts{})
	if intent.Kind != IntentHScroll || intent.Delta != -logHScrollStep {
		t.Fatalf("expected hscroll left, got %#v", intent)
	}
	_, intent = Transition(m, RuneKey('0'), Facts{})
	if intent.Kind != IntentHScrollReset {
		t.Fatalf("expected hscroll reset, got %s", intent.Kind)
	}
}
