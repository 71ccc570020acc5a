package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/data/dispatcher"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/logging/events"
	"github.com/atomicstack/ghflow/internal/theme"
	"github.com/atomicstack/ghflow/internal/ui/command"
	uistate "github.com/atomicstack/ghflow/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTickRate             = 100 * time.Millisecond
	defaultNotificationDuration = 3 * time.Second
	defaultMergeMethod          = "squash"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Dispatcher runs background requests on behalf of the model.
// backend.Dispatcher implements it.
type Dispatcher interface {
	Spawn(req backend.Request) string
	Ready() <-chan struct{}
	Drain() []backend.Result
}

var _ Dispatcher = (*backend.Dispatcher)(nil)

// Options configures a Model.
type Options struct {
	Dispatcher           Dispatcher
	Repo                 string
	InitialPR            int
	MergeMethod          string
	TickRate             time.Duration
	NotificationDuration time.Duration
	AutoRefresh          time.Duration
	Width                int
	Height               int
	// Clipboard overrides the system clipboard writer.
	Clipboard func(string) error
}

type tickMsg struct{}

// Model implements the Bubble Tea model and owns every piece of mutable UI
// state. Background work reaches it only as backend.Result values.
type Model struct {
	mode   uistate.Mode
	keys   uistate.KeyMap
	tick   uint64
	status Status

	dispatcher  Dispatcher
	pending     map[backend.Key]bool
	generations map[backend.Key]uint64

	stores dispatcher.Stores
	data   *dispatcher.Dispatcher

	prList      uistate.List
	prVisible   []int
	prQuery     string
	queryBefore string
	checks      uistate.List
	runs        uistate.List
	jobs        uistate.List

	detailScroll uistate.Scroll
	diffScroll   uistate.Scroll
	logScroll    uistate.Scroll
	logQuery     string
	logMatches   []int
	logMatch     int

	repo         string
	initialPR    int
	mergeMethod  string
	tickRate     time.Duration
	notifyTicks  uint64
	refreshTicks uint64

	width  int
	height int

	running  bool
	quitting bool

	spinner   spinner.Model
	help      help.Model
	bus       *command.Bus
	clipboard func(string) error
	cache     *renderCache

	detailBody []string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state.
func NewModel(opts Options) *Model {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	notification := opts.NotificationDuration
	if notification <= 0 {
		notification = defaultNotificationDuration
	}
	merge := opts.MergeMethod
	if merge == "" {
		merge = defaultMergeMethod
	}
	write := opts.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	stores := dispatcher.NewStores()
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m := &Model{
		mode:        uistate.Initial(),
		keys:        uistate.Keys(),
		dispatcher:  opts.Dispatcher,
		pending:     make(map[backend.Key]bool),
		generations: make(map[backend.Key]uint64),
		stores:      stores,
		data:        dispatcher.New(stores),
		repo:        opts.Repo,
		initialPR:   opts.InitialPR,
		mergeMethod: merge,
		tickRate:    tickRate,
		notifyTicks: ticksFor(notification, tickRate),
		width:       opts.Width,
		height:      opts.Height,
		spinner:     sp,
		help:        help.New(),
		bus:         command.New(),
		clipboard:   write,
		cache:       newRenderCache(),
	}
	if opts.AutoRefresh > 0 {
		m.refreshTicks = ticksFor(opts.AutoRefresh, tickRate)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts the tick loop and the
// result listener, then requests the initial data.
func (m *Model) Init() tea.Cmd {
	m.running = true
	m.bootstrap()
	return tea.Batch(m.tickCmd(), m.waitForResults(), m.spinner.Tick)
}

// bootstrap issues the fetches the first frame depends on.
func (m *Model) bootstrap() {
	filter := m.stores.PullRequests.Filter()
	m.spawnFetch(backend.Key{Kind: backend.KindPullRequests, Target: string(filter)}, backend.ListPullRequests(filter))
	if m.initialPR > 0 {
		m.mode.View = uistate.ViewDetail
		m.mode.Focus = uistate.FocusDetail
		m.selectPR(m.initialPR)
	}
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(resultsReadyMsg{}):   m.handleResultsReadyMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.detailBody = m.renderDetailBody()
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickRate, func(time.Time) tea.Msg { return tickMsg{} })
}

// handleTickMsg advances the clock, expires notifications and drains any
// results that arrived since the last frame.
func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	m.handleTick()
	if !m.running {
		return nil
	}
	return m.tickCmd()
}

func (m *Model) handleTick() {
	m.tick++
	m.expireStatus()
	m.processMessages()
	if m.refreshTicks > 0 && m.tick%m.refreshTicks == 0 {
		m.autoRefresh()
	}
}

func (m *Model) handleSpinnerMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.running {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	m.help.Width = resize.Width
	events.UI.Resize(resize.Width, resize.Height)
	return nil
}

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	Mode         uistate.Mode
	Tick         uint64
	Status       Status
	Repo         string
	Filter       github.Filter
	Query        string
	PullRequests []github.PullRequest
	PRList       uistate.List
	ListLoaded   bool
	RecentBranch *github.RecentBranch
	Detail       *github.PullRequest
	DetailNumber int
	Checks       []github.WorkflowRun
	ChecksLoaded bool
	CheckList    uistate.List
	Diff         *github.Diff
	DetailBody   []string
	Runs         []github.WorkflowRun
	RunsLoaded   bool
	RunList      uistate.List
	JobsRunID    int64
	Jobs         []github.Job
	JobsLoaded   bool
	JobList      uistate.List
	LogTitle     string
	LogRunID     int64
	LogJobID     int64
	Log          string
	LogLoaded    bool
	LogQuery     string
	LogMatches   []int
	LogMatch     int
	DetailScroll uistate.Scroll
	DiffScroll   uistate.Scroll
	LogScroll    uistate.Scroll
	Loading      map[backend.Key]bool
	Width        int
	Height       int
}

// Snapshot copies the current state for rendering.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Mode:         m.mode,
		Tick:         m.tick,
		Repo:         m.repo,
		Filter:       m.stores.PullRequests.Filter(),
		Query:        m.prQuery,
		PullRequests: m.visiblePullRequests(),
		PRList:       m.prList,
		ListLoaded:   m.stores.PullRequests.Loaded(),
		RecentBranch: m.stores.PullRequests.RecentBranch(),
		DetailNumber: m.stores.Detail.Number(),
		Checks:       m.stores.Detail.Checks(),
		ChecksLoaded: m.stores.Detail.ChecksLoaded(),
		CheckList:    m.checks,
		DetailBody:   append([]string(nil), m.detailBody...),
		Runs:         m.stores.Runs.Entries(),
		RunsLoaded:   m.stores.Runs.Loaded(),
		RunList:      m.runs,
		JobsRunID:    m.stores.Jobs.RunID(),
		Jobs:         m.stores.Jobs.Entries(),
		JobsLoaded:   m.stores.Jobs.Loaded(),
		JobList:      m.jobs,
		LogTitle:     m.stores.Log.Title(),
		LogQuery:     m.logQuery,
		LogMatches:   append([]int(nil), m.logMatches...),
		LogMatch:     m.logMatch,
		DetailScroll: m.detailScroll,
		DiffScroll:   m.diffScroll,
		LogScroll:    m.logScroll,
		Loading:      make(map[backend.Key]bool, len(m.pending)),
		Width:        m.width,
		Height:       m.height,
	}
	if m.status.Visible(m.tick) {
		s.Status = m.status
	}
	if pr, ok := m.stores.Detail.PullRequest(); ok {
		s.Detail = &pr
	}
	if d, ok := m.stores.Detail.Diff(); ok {
		s.Diff = &d
	}
	s.LogRunID, s.LogJobID = m.stores.Log.Target()
	s.Log, s.LogLoaded = m.stores.Log.Text()
	for key, pending := range m.pending {
		if pending {
			s.Loading[key] = true
		}
	}
	return s
}

// LoadingKind reports whether any request of kind is in flight.
func (s Snapshot) LoadingKind(kind backend.Kind) bool {
	for key := range s.Loading {
		if key.Kind == kind {
			return true
		}
	}
	return false
}

// Busy reports whether any request is in flight.
func (s Snapshot) Busy() bool {
	return len(s.Loading) > 0
}
