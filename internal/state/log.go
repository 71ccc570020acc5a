package state

// LogStore holds the log text shown on the Logs tab.
type LogStore interface {
	Target() (runID, jobID int64)
	Title() string
	Select(runID, jobID int64, title string)
	Clear()
	Text() (string, bool)
	SetText(string)
}

type logStore struct {
	runID  int64
	jobID  int64
	title  string
	text   string
	loaded bool
}

func NewLogStore() LogStore {
	return &logStore{}
}

func (s *logStore) Target() (int64, int64) {
	return s.runID, s.jobID
}

func (s *logStore) Title() string {
	return s.title
}

// Select points the store at a log. Switching target discards the text.
func (s *logStore) Select(runID, jobID int64, title string) {
	if runID != s.runID || jobID != s.jobID {
		s.text = ""
		s.loaded = false
	}
	s.runID, s.jobID, s.title = runID, jobID, title
}

func (s *logStore) Clear() {
	*s = logStore{}
}

func (s *logStore) Text() (string, bool) {
	return s.text, s.loaded
}

func (s *logStore) SetText(text string) {
	s.text = text
	s.loaded = true
}
