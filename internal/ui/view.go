package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/format/table"
	"github.com/atomicstack/ghflow/internal/github"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultViewWidth  = 100
	defaultViewHeight = 30
	splitMinWidth     = 80
	chromeRows        = 3 // tab bar, status line, key hints
	checksPanelMax    = 8
	tabStop           = "    "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model. It reads a Snapshot and nothing else.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.Snapshot()
	width, height := viewSize(s)
	bodyHeight := height - chromeRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var body []string
	switch {
	case s.Mode.Help:
		body = m.helpView(width, bodyHeight)
	case s.Mode.Tab == uistate.TabPRs && s.Mode.View == uistate.ViewDiff:
		body = diffView(s, width, bodyHeight)
	case s.Mode.Tab == uistate.TabPRs:
		body = m.pullRequestsView(s, width, bodyHeight)
	case s.Mode.Tab == uistate.TabActions && s.Mode.View == uistate.ViewJobs:
		body = jobsView(s, width, bodyHeight)
	case s.Mode.Tab == uistate.TabActions:
		body = runsView(s, width, bodyHeight)
	default:
		body = logView(s, width, bodyHeight)
	}
	out := make([]string, 0, height)
	out = append(out, m.tabBar(s, width))
	out = append(out, body...)
	out = append(out, statusLine(s, width), m.keyHints(s, width))
	return strings.Join(out, "\n")
}

func viewSize(s Snapshot) (int, int) {
	width, height := s.Width, s.Height
	if width <= 0 {
		width = defaultViewWidth
	}
	if height <= 0 {
		height = defaultViewHeight
	}
	return width, height
}

// maxVisibleRows is the number of list rows a full-height panel can show.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	rows := m.height - chromeRows - 1
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) tabBar(s Snapshot, width int) string {
	parts := make([]string, 0, 6)
	parts = append(parts, styles.Header.Render("ghflow"))
	for i, tab := range uistate.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if tab == s.Mode.Tab {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.TabInactive.Render(label))
		}
	}
	if s.Repo != "" {
		parts = append(parts, styles.Muted.Render(s.Repo))
	}
	if s.Busy() {
		parts = append(parts, m.spinner.View())
	}
	return ansi.Truncate(strings.Join(parts, " "), width, "…")
}

func statusLine(s Snapshot, width int) string {
	switch s.Status.Kind {
	case StatusPrompt:
		line := styles.Prompt.Render(s.Status.Text) + " " + styles.PromptText.Render(s.Mode.Buffer) + styles.Cursor.Render(" ")
		if ansi.StringWidth(line) > width {
			// keep the tail of a long buffer in view
			line = ansi.TruncateLeft(line, ansi.StringWidth(line)-width, "…")
		}
		return line
	case StatusNotification:
		style := styles.Info
		switch s.Status.Level {
		case LevelSuccess:
			style = styles.Success
		case LevelError:
			style = styles.Error
		}
		return style.Render(truncateText(s.Status.Text, width))
	}
	return ""
}

func (m *Model) keyHints(s Snapshot, width int) string {
	h := m.help
	h.Width = width
	return h.ShortHelpView(contextHelp(m.keys, s.Mode))
}

func (m *Model) helpView(width, height int) []string {
	h := m.help
	h.Width = width
	text := h.FullHelpView(m.keys.FullHelp())
	lines := make([]styledLine, 0, 16)
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	lines = append(lines, styledLine{}, styledLine{text: "esc or ? to close", style: styles.Muted})
	return panel("Keys", true, lines, width, height)
}

// contextHelp picks the bindings worth advertising for a mode.
func contextHelp(k uistate.KeyMap, mode uistate.Mode) []key.Binding {
	if mode.Input != uistate.InputNone {
		return []key.Binding{k.Submit, k.Cancel, k.Backspace, k.ClearInput}
	}
	switch mode.Tab {
	case uistate.TabPRs:
		switch mode.View {
		case uistate.ViewDiff:
			return []key.Binding{k.Down, k.Up, k.PageDown, k.Back, k.Help, k.Quit}
		case uistate.ViewDetail:
			return []key.Binding{k.CycleFocus, k.Comment, k.Approve, k.Merge, k.Diff, k.Logs, k.Back, k.Help}
		}
		return []key.Binding{k.Select, k.Filter, k.Search, k.CreatePR, k.Refresh, k.TabActions, k.Help, k.Quit}
	case uistate.TabActions:
		if mode.View == uistate.ViewJobs {
			return []key.Binding{k.Select, k.Rerun, k.Back, k.Refresh, k.Help, k.Quit}
		}
		return []key.Binding{k.Select, k.Rerun, k.Refresh, k.TabPRs, k.Help, k.Quit}
	}
	return []key.Binding{k.Search, k.NextMatch, k.PrevMatch, k.ScrollRight, k.LineStart, k.Back, k.Help}
}

func (m *Model) pullRequestsView(s Snapshot, width, height int) []string {
	listFocused := s.Mode.Focus == uistate.FocusList
	if width < splitMinWidth {
		if listFocused {
			return panel(listTitle(s), true, pullRequestRows(s, width, height-1), width, height)
		}
		return m.detailColumn(s, width, height)
	}
	rightWidth := detailPaneWidth(width, s.Mode.View)
	leftWidth := width - rightWidth - 1
	left := panel(listTitle(s), listFocused, pullRequestRows(s, leftWidth, height-1), leftWidth, height)
	right := m.detailColumn(s, rightWidth, height)
	return joinColumns(left, right, styles.PanelBorder.Render("│"))
}

// detailPaneWidth is the width of the right-hand column of the pull
// request split layout.
func detailPaneWidth(width int, view uistate.View) int {
	if width < splitMinWidth {
		return width
	}
	left := width * 2 / 5
	if view == uistate.ViewDetail {
		left = width / 3
	}
	return width - left - 1
}

func listTitle(s Snapshot) string {
	title := "Pull requests · " + s.Filter.Label()
	if s.Query != "" {
		title += "  /" + s.Query
	}
	return title
}

func pullRequestRows(s Snapshot, width, rows int) []styledLine {
	lines := make([]styledLine, 0, rows)
	if b := s.RecentBranch; b != nil {
		text := fmt.Sprintf("↑ %s pushed %s ago · n to open a PR", b.Name, age(b.PushedAt, time.Now()))
		lines = append(lines, styledLine{text: text, style: styles.Success})
		rows--
	}
	if !s.ListLoaded {
		return append(lines, placeholder(s.LoadingKind(backend.KindPullRequests), "Loading pull requests…", "No pull requests loaded"))
	}
	if len(s.PullRequests) == 0 {
		if s.Query != "" {
			return append(lines, styledLine{text: fmt.Sprintf("No matches for %q", s.Query), style: styles.Info})
		}
		return append(lines, styledLine{text: "No open pull requests", style: styles.Info})
	}
	data := make([][]string, len(s.PullRequests))
	for i, pr := range s.PullRequests {
		data[i] = []string{pr.StatusIcon(), "#" + strconv.Itoa(pr.Number), pr.Title, pr.Author.Login, ciIcon(pr.CIStatus())}
	}
	titleMax := width - 32
	if titleMax < 10 {
		titleMax = 10
	}
	formatted := table.FormatColumns(data, []table.Column{
		{},
		{Align: table.AlignRight},
		{MaxWidth: titleMax},
		{MaxWidth: 16},
		{},
	})
	list := s.PRList
	selected := s.Mode.Focus == uistate.FocusList || s.Mode.View == uistate.ViewList
	return append(lines, listRows(formatted, &list, rows, width, selected)...)
}

// listRows renders the visible window of a cursor-driven list.
func listRows(formatted []string, list *uistate.List, rows, width int, showCursor bool) []styledLine {
	start, end := list.Window(rows)
	if end > len(formatted) {
		end = len(formatted)
	}
	out := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, itemLine(formatted[i], showCursor && i == list.Cursor, width))
	}
	return out
}

// itemLine constructs a single styledLine for a list entry. The selected
// entry is padded so its background spans the whole column.
func itemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := indicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func placeholder(loading bool, loadingText, idleText string) styledLine {
	if loading {
		return styledLine{text: loadingText, style: styles.Loading}
	}
	return styledLine{text: idleText, style: styles.Muted}
}

func ciIcon(status string) string {
	switch status {
	case "success":
		return "✓"
	case "failure":
		return "✗"
	case "pending":
		return "◐"
	default:
		return " "
	}
}

// detailColumn stacks the pull request detail above its checks.
func (m *Model) detailColumn(s Snapshot, width, height int) []string {
	checksHeight := 0
	if s.DetailNumber != 0 {
		checksHeight = len(s.Checks) + 1
		if checksHeight < 2 {
			checksHeight = 2
		}
		if checksHeight > checksPanelMax {
			checksHeight = checksPanelMax
		}
		if checksHeight > height/2 {
			checksHeight = height / 2
		}
	}
	detailHeight := height - checksHeight
	content := detailContent(s.Detail, s.Diff, s.DetailNumber, s.DetailBody)
	title := "Detail"
	if s.DetailNumber != 0 {
		title = "Detail · #" + strconv.Itoa(s.DetailNumber)
	}
	out := panel(title, s.Mode.Focus == uistate.FocusDetail, window(content, s.DetailScroll.Line, detailHeight-1), width, detailHeight)
	if checksHeight == 0 {
		return out
	}
	checks := panel("Checks", s.Mode.Focus == uistate.FocusChecks, checkRows(s, width, checksHeight-1), width, checksHeight)
	return append(out, checks...)
}

func detailContent(pr *github.PullRequest, diff *github.Diff, number int, body []string) []styledLine {
	if number == 0 {
		return []styledLine{{text: "Select a pull request and press enter", style: styles.Muted}}
	}
	if pr == nil {
		return []styledLine{{text: fmt.Sprintf("Loading #%d…", number), style: styles.Loading}}
	}
	lines := []styledLine{
		{text: fmt.Sprintf("#%d %s", pr.Number, pr.Title), style: styles.Header},
		{text: fmt.Sprintf("%s wants to merge %s into %s", pr.Author.Login, pr.HeadRef, pr.BaseRef), style: styles.Info},
	}
	meta := []string{strings.ToLower(pr.State)}
	if pr.IsDraft {
		meta = append(meta, "draft")
	}
	if pr.Mergeable != "" && pr.Mergeable != "UNKNOWN" {
		meta = append(meta, strings.ToLower(pr.Mergeable))
	}
	if pr.ReviewDecision != "" {
		meta = append(meta, strings.ToLower(strings.ReplaceAll(pr.ReviewDecision, "_", " ")))
	}
	lines = append(lines, styledLine{text: strings.Join(meta, " · "), style: styles.Muted})
	if len(pr.Labels) > 0 {
		names := make([]string, len(pr.Labels))
		for i, l := range pr.Labels {
			names[i] = l.Name
		}
		lines = append(lines, styledLine{text: "Labels: " + strings.Join(names, ", "), style: styles.Info})
	}
	if len(pr.ReviewRequests) > 0 {
		names := make([]string, len(pr.ReviewRequests))
		for i, r := range pr.ReviewRequests {
			names[i] = r.String()
		}
		lines = append(lines, styledLine{text: "Reviewers: " + strings.Join(names, ", "), style: styles.Info})
	}
	if diff != nil {
		added, deleted := diff.Totals()
		lines = append(lines, styledLine{text: fmt.Sprintf("%d files changed, +%d -%d", len(diff.Files), added, deleted), style: styles.Muted})
	}
	if len(body) > 0 {
		lines = append(lines, styledLine{})
		for _, l := range body {
			lines = append(lines, styledLine{text: l, raw: true})
		}
	}
	if len(pr.Reviews) > 0 {
		lines = append(lines, styledLine{}, styledLine{text: "Reviews", style: styles.PanelTitle})
		for _, r := range pr.Reviews {
			lines = append(lines, styledLine{text: fmt.Sprintf("%s %s", r.Author.Login, strings.ToLower(strings.ReplaceAll(r.State, "_", " "))), style: styles.Item})
		}
	}
	if len(pr.Commits) > 0 {
		lines = append(lines, styledLine{}, styledLine{text: fmt.Sprintf("Commits (%d)", len(pr.Commits)), style: styles.PanelTitle})
		for _, c := range pr.Commits {
			lines = append(lines, styledLine{text: c.ShortSHA() + " " + c.Headline, style: styles.Item})
		}
	}
	return lines
}

// detailLineCount returns the largest useful scroll offset of the detail
// pane at the current width.
func (m *Model) detailLineCount() int {
	var pr *github.PullRequest
	if p, ok := m.stores.Detail.PullRequest(); ok {
		pr = &p
	}
	var diff *github.Diff
	if d, ok := m.stores.Detail.Diff(); ok {
		diff = &d
	}
	return lastIndex(len(detailContent(pr, diff, m.stores.Detail.Number(), m.renderDetailBody())))
}

func checkRows(s Snapshot, width, rows int) []styledLine {
	if !s.ChecksLoaded {
		return []styledLine{placeholder(s.LoadingKind(backend.KindChecks), "Loading checks…", "No checks loaded")}
	}
	if len(s.Checks) == 0 {
		return []styledLine{{text: "No workflow runs for this commit", style: styles.Muted}}
	}
	data := make([][]string, len(s.Checks))
	for i, run := range s.Checks {
		data[i] = []string{run.StatusIcon(), runTitle(run), runState(run)}
	}
	formatted := table.FormatColumns(data, []table.Column{{}, {MaxWidth: width / 2}, {}})
	list := s.CheckList
	return listRows(formatted, &list, rows, width, s.Mode.Focus == uistate.FocusChecks)
}

func runState(run github.WorkflowRun) string {
	if run.Completed() {
		return run.Conclusion
	}
	return strings.ReplaceAll(run.Status, "_", " ")
}

func runsView(s Snapshot, width, height int) []string {
	var lines []styledLine
	switch {
	case !s.RunsLoaded:
		lines = []styledLine{placeholder(s.LoadingKind(backend.KindRuns), "Loading workflow runs…", "No workflow runs loaded")}
	case len(s.Runs) == 0:
		lines = []styledLine{{text: "No workflow runs", style: styles.Info}}
	default:
		data := make([][]string, len(s.Runs))
		now := time.Now()
		for i, run := range s.Runs {
			data[i] = []string{run.StatusIcon(), runTitle(run), run.DisplayTitle, run.HeadBranch, run.Event, age(run.CreatedAt, now)}
		}
		formatted := table.FormatColumns(data, []table.Column{
			{},
			{MaxWidth: 24},
			{MaxWidth: 40},
			{MaxWidth: 24},
			{},
			{Align: table.AlignRight},
		})
		list := s.RunList
		lines = listRows(formatted, &list, height-1, width, true)
	}
	return panel("Workflow runs", true, lines, width, height)
}

func jobsView(s Snapshot, width, height int) []string {
	title := "Jobs"
	if s.JobsRunID != 0 {
		title = "Jobs · run " + backend.RunTarget(s.JobsRunID)
		for _, run := range s.Runs {
			if run.ID == s.JobsRunID {
				title += " · " + runTitle(run)
				break
			}
		}
	}
	var lines []styledLine
	switch {
	case s.JobsRunID == 0:
		lines = []styledLine{{text: "No workflow run selected", style: styles.Muted}}
	case !s.JobsLoaded:
		lines = []styledLine{placeholder(s.LoadingKind(backend.KindJobs), "Loading jobs…", "No jobs loaded")}
	case len(s.Jobs) == 0:
		lines = []styledLine{{text: "No jobs", style: styles.Info}}
	default:
		data := make([][]string, len(s.Jobs))
		for i, job := range s.Jobs {
			data[i] = []string{job.StatusIcon(), job.Name, jobDuration(job)}
		}
		formatted := table.FormatColumns(data, []table.Column{{}, {MaxWidth: width - 16}, {Align: table.AlignRight}})
		list := s.JobList
		rows := height - 1
		var steps []github.Step
		if list.Valid() && list.Cursor < len(s.Jobs) {
			steps = s.Jobs[list.Cursor].Steps
		}
		if len(steps) > 0 {
			rows = (height - 1) / 2
		}
		lines = listRows(formatted, &list, rows, width, true)
		if len(steps) > 0 {
			lines = append(lines, styledLine{}, styledLine{text: "Steps", style: styles.PanelTitle})
			for _, step := range steps {
				lines = append(lines, styledLine{text: fmt.Sprintf("%s %2d %s", statusGlyph(step.Status, step.Conclusion), step.Number, step.Name), style: styles.Item})
			}
		}
	}
	return panel(title, true, lines, width, height)
}

func statusGlyph(status, conclusion string) string {
	return github.Job{Status: status, Conclusion: conclusion}.StatusIcon()
}

func jobDuration(job github.Job) string {
	d := job.Duration()
	if d == 0 {
		return strings.ReplaceAll(job.Status, "_", " ")
	}
	return d.Round(time.Second).String()
}

func logView(s Snapshot, width, height int) []string {
	title := "Log"
	if s.LogTitle != "" {
		title += " · " + s.LogTitle
	}
	if s.LogQuery != "" {
		if len(s.LogMatches) > 0 {
			title += fmt.Sprintf("  /%s (%d/%d)", s.LogQuery, s.LogMatch+1, len(s.LogMatches))
		} else {
			title += fmt.Sprintf("  /%s (no matches)", s.LogQuery)
		}
	}
	switch {
	case s.LogRunID == 0:
		return panel(title, true, []styledLine{{text: "No log selected. Press L on a check or enter on a job.", style: styles.Muted}}, width, height)
	case !s.LogLoaded:
		return panel(title, true, []styledLine{placeholder(s.LoadingKind(backend.KindLog), "Loading log…", "Log not loaded")}, width, height)
	case s.Log == "":
		return panel(title, true, []styledLine{{text: "(empty log)", style: styles.Muted}}, width, height)
	}
	all := strings.Split(s.Log, "\n")
	matches := make(map[int]bool, len(s.LogMatches))
	for _, idx := range s.LogMatches {
		matches[idx] = true
	}
	current := -1
	if s.LogMatch >= 0 && s.LogMatch < len(s.LogMatches) {
		current = s.LogMatches[s.LogMatch]
	}
	rows := height - 1
	lines := make([]styledLine, 0, rows)
	for idx := s.LogScroll.Line; idx < len(all) && len(lines) < rows; idx++ {
		gutter := "  "
		switch {
		case idx == current:
			gutter = styles.CurrentMatch.Render("▶") + " "
		case matches[idx]:
			gutter = styles.Match.Render("•") + " "
		}
		text := strings.ReplaceAll(all[idx], "\t", tabStop)
		if s.LogScroll.Column > 0 {
			text = ansi.Cut(text, s.LogScroll.Column, s.LogScroll.Column+width)
		}
		lines = append(lines, styledLine{text: gutter + text, raw: true})
	}
	return panel(title, true, lines, width, height)
}

func (m *Model) logLineCount() int {
	text, ok := m.stores.Log.Text()
	if !ok || text == "" {
		return 0
	}
	return strings.Count(text, "\n")
}

func diffView(s Snapshot, width, height int) []string {
	title := "Diff"
	if s.DetailNumber != 0 {
		title = "Diff · #" + strconv.Itoa(s.DetailNumber)
	}
	if s.Diff == nil {
		return panel(title, true, []styledLine{placeholder(s.LoadingKind(backend.KindDiff), "Loading diff…", "No diff loaded")}, width, height)
	}
	content := diffContent(*s.Diff)
	return panel(title, true, window(content, s.DiffScroll.Line, height-1), width, height)
}

func diffContent(d github.Diff) []styledLine {
	if strings.TrimSpace(d.Text) == "" {
		return []styledLine{{text: "(empty diff)", style: styles.Muted}}
	}
	added, deleted := d.Totals()
	lines := []styledLine{{text: fmt.Sprintf("%d files changed, +%d -%d", len(d.Files), added, deleted), style: styles.Header}}
	for _, f := range d.Files {
		lines = append(lines, styledLine{text: fmt.Sprintf("  %s +%d -%d", f.Name, f.Added, f.Deleted), style: styles.Muted})
	}
	lines = append(lines, styledLine{})
	for _, raw := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
		text := strings.ReplaceAll(raw, "\t", tabStop)
		style := styles.Item
		switch {
		case strings.HasPrefix(text, "diff --git"), strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			style = styles.DiffFile
		case strings.HasPrefix(text, "@@"):
			style = styles.DiffHunk
		case strings.HasPrefix(text, "+"):
			style = styles.DiffAdded
		case strings.HasPrefix(text, "-"):
			style = styles.DiffRemoved
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	return lines
}

func (m *Model) diffLineCount() int {
	d, ok := m.stores.Detail.Diff()
	if !ok {
		return 0
	}
	return lastIndex(len(diffContent(d)))
}

// pullRequestSearchText is what the list search matches against.
func pullRequestSearchText(pr github.PullRequest) string {
	return fmt.Sprintf("#%d %s %s %s", pr.Number, pr.Title, pr.Author.Login, pr.HeadRef)
}

func age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func lastIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}

// window returns up to n lines starting at offset.
func window(lines []styledLine, offset, n int) []styledLine {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lines) {
		return nil
	}
	end := len(lines)
	if n >= 0 && offset+n < end {
		end = offset + n
	}
	return lines[offset:end]
}

// panel renders a titled block of exactly height rows and width columns.
func panel(title string, focused bool, lines []styledLine, width, height int) []string {
	titleStyle := styles.PanelTitle
	marker := "  "
	if focused {
		titleStyle = styles.PanelBorderFocused
		marker = "▸ "
	}
	all := make([]styledLine, 0, len(lines)+1)
	all = append(all, styledLine{text: marker + title, style: titleStyle})
	all = append(all, lines...)
	all = limitHeight(all, height, width)
	all = applyWidth(all, width)
	out := strings.Split(renderLines(all), "\n")
	for len(out) < height {
		out = append(out, "")
	}
	for i, line := range out {
		out[i] = padCells(line, width)
	}
	return out
}

func padCells(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func joinColumns(left, right []string, sep string) []string {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		out[i] = l + sep + r
	}
	return out
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
