package state

// List tracks the cursor and viewport of a scrollable list of Len entries.
// The owner keeps Len in sync with its data via SetLen.
type List struct {
	Len    int
	Cursor int
	Offset int
}

// SetLen updates the entry count and clamps the cursor into range.
func (l *List) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	l.Len = n
	l.clamp()
}

// Reset moves the cursor back to the first entry.
func (l *List) Reset() {
	l.Cursor = 0
	l.Offset = 0
}

// Valid reports whether the cursor points at an entry.
func (l *List) Valid() bool {
	return l.Len > 0 && l.Cursor >= 0 && l.Cursor < l.Len
}

// Move steps the cursor by delta, wrapping around either end.
func (l *List) Move(delta int) bool {
	if l.Len == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%l.Len + l.Len) % l.Len
	return old != l.Cursor
}

// MoveHome moves the cursor to the first entry.
func (l *List) MoveHome() bool {
	if l.Len == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveEnd moves the cursor to the last entry.
func (l *List) MoveEnd() bool {
	if l.Len == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = l.Len - 1
	return old != l.Cursor
}

// MovePage moves the cursor by whole pages without wrapping.
func (l *List) MovePage(pages, maxVisible int) bool {
	return l.moveClamped(pages * l.pageSize(maxVisible))
}

func (l *List) moveClamped(delta int) bool {
	if l.Len == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	l.clamp()
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	size := maxVisible
	if size <= 0 || size > l.Len {
		size = l.Len
	}
	if size < 1 {
		size = 1
	}
	return size
}

func (l *List) clamp() {
	if l.Len == 0 {
		l.Cursor = 0
		l.Offset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= l.Len {
		l.Cursor = l.Len - 1
	}
}

// EnsureVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureVisible(maxVisible int) {
	l.clamp()
	if l.Len == 0 || maxVisible <= 0 {
		l.Offset = 0
		return
	}
	maxOffset := l.Len - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.Offset > maxOffset {
		l.Offset = maxOffset
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if upper := l.Offset + maxVisible - 1; l.Cursor > upper {
		l.Offset = l.Cursor - maxVisible + 1
	}
}

// Window returns the [start, end) slice bounds currently visible.
func (l *List) Window(maxVisible int) (int, int) {
	l.EnsureVisible(maxVisible)
	if maxVisible <= 0 || maxVisible > l.Len {
		return 0, l.Len
	}
	return l.Offset, l.Offset + maxVisible
}

// Scroll is a clamped line offset for read-only panes such as diffs and logs.
type Scroll struct {
	Line   int
	Column int
}

// ScrollBy moves the line offset, clamping to [0, max].
func (s *Scroll) ScrollBy(delta, max int) {
	s.Line += delta
	if s.Line > max {
		s.Line = max
	}
	if s.Line < 0 {
		s.Line = 0
	}
}

// ScrollColumns moves the horizontal offset, never below zero.
func (s *Scroll) ScrollColumns(delta int) {
	s.Column += delta
	if s.Column < 0 {
		s.Column = 0
	}
}
