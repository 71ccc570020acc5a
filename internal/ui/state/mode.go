package state

// Tab is the top-level functional grouping shown in the tab bar.
type Tab int

const (
	TabPRs Tab = iota
	TabActions
	TabLogs
)

var tabNames = [...]string{"PRs", "Actions", "Logs"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "unknown"
	}
	return tabNames[t]
}

// Tabs lists every tab in display order.
func Tabs() []Tab {
	return []Tab{TabPRs, TabActions, TabLogs}
}

// View is the panel layout active within a tab.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewDiff
	ViewJobs
)

var viewNames = [...]string{"list", "detail", "diff", "jobs"}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// Focus names the panel receiving navigation keys.
type Focus int

const (
	FocusList Focus = iota
	FocusDetail
	FocusChecks
)

var focusNames = [...]string{"list", "detail", "checks"}

func (f Focus) String() string {
	if f < 0 || int(f) >= len(focusNames) {
		return "unknown"
	}
	return focusNames[f]
}

// InputMode captures free-text editing. Any value other than InputNone
// swallows every keystroke except ctrl+c.
type InputMode int

const (
	InputNone InputMode = iota
	InputSearch
	InputComment
	InputRequestChanges
	InputEditTitle
	InputAddLabel
	InputAddReviewer
)

var inputNames = [...]string{"none", "search", "comment", "request-changes", "edit-title", "add-label", "add-reviewer"}

func (i InputMode) String() string {
	if i < 0 || int(i) >= len(inputNames) {
		return "unknown"
	}
	return inputNames[i]
}

// Prompt returns the sticky status text shown while the mode is active.
func (i InputMode) Prompt() string {
	switch i {
	case InputSearch:
		return "Search:"
	case InputComment:
		return "Comment:"
	case InputRequestChanges:
		return "Request changes:"
	case InputEditTitle:
		return "New title:"
	case InputAddLabel:
		return "Add label:"
	case InputAddReviewer:
		return "Add reviewer:"
	default:
		return ""
	}
}

// AllowsEmpty reports whether an empty buffer is a valid submission.
func (i InputMode) AllowsEmpty() bool {
	return i == InputSearch
}

// Origin remembers where the Logs tab was entered from.
type Origin struct {
	Set   bool
	Tab   Tab
	View  View
	Focus Focus
}

// Mode is the composite navigation state owned by the controller.
type Mode struct {
	Tab    Tab
	View   View
	Focus  Focus
	Input  InputMode
	Buffer string
	Help   bool
	Return Origin
}

// Initial is the mode the program starts in.
func Initial() Mode {
	return Mode{Tab: TabPRs, View: ViewList, Focus: FocusList}
}

// ValidViews returns the views legal for a tab. The first entry is the
// tab's default view.
func ValidViews(tab Tab) []View {
	switch tab {
	case TabPRs:
		return []View{ViewList, ViewDetail, ViewDiff}
	case TabActions:
		return []View{ViewList, ViewJobs}
	case TabLogs:
		return []View{ViewDetail}
	default:
		return nil
	}
}

// ValidFoci returns the foci legal for a (tab, view) pair. The first entry
// is the default focus.
func ValidFoci(tab Tab, view View) []Focus {
	switch tab {
	case TabPRs:
		switch view {
		case ViewList, ViewDetail:
			return []Focus{FocusList, FocusDetail, FocusChecks}
		case ViewDiff:
			return []Focus{FocusDetail}
		}
	case TabActions:
		switch view {
		case ViewList, ViewJobs:
			return []Focus{FocusList}
		}
	case TabLogs:
		if view == ViewDetail {
			return []Focus{FocusDetail}
		}
	}
	return nil
}

// Valid reports whether the tab/view/focus triple is consistent.
func (m Mode) Valid() bool {
	if !containsView(ValidViews(m.Tab), m.View) {
		return false
	}
	return containsFocus(ValidFoci(m.Tab, m.View), m.Focus)
}

// Normalize repairs an inconsistent mode by falling back to the default view
// and focus of the active tab.
func Normalize(m Mode) Mode {
	views := ValidViews(m.Tab)
	if len(views) == 0 {
		m.Tab = TabPRs
		views = ValidViews(m.Tab)
	}
	if !containsView(views, m.View) {
		m.View = views[0]
	}
	foci := ValidFoci(m.Tab, m.View)
	if !containsFocus(foci, m.Focus) {
		m.Focus = foci[0]
	}
	if m.Input == InputNone {
		m.Buffer = ""
	}
	return m
}

func containsView(views []View, v View) bool {
	for _, candidate := range views {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsFocus(foci []Focus, f Focus) bool {
	for _, candidate := range foci {
		if candidate == f {
			return true
		}
	}
	return false
}
