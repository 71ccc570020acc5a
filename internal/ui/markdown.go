package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderCache memoises the markdown rendering of the pull request body so
// frames that do not change it skip glamour entirely.
type renderCache struct {
	width    int
	renderer *glamour.TermRenderer
	body     string
	lines    []string
}

func newRenderCache() *renderCache {
	return &renderCache{}
}

// markdown renders body wrapped to width. Rendering failures fall back to
// the plain text.
func (c *renderCache) markdown(body string, width int) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	if width < 20 {
		width = 20
	}
	if c.lines != nil && c.body == body && c.width == width {
		return c.lines
	}
	if c.renderer == nil || c.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width-2),
		)
		if err != nil {
			r = nil
		}
		c.renderer = r
		c.width = width
	}
	text := body
	if c.renderer != nil {
		if out, err := c.renderer.Render(body); err == nil {
			text = strings.Trim(out, "\n")
		}
	}
	c.body = body
	c.lines = strings.Split(text, "\n")
	return c.lines
}

// renderDetailBody renders the selected pull request body at the width the
// detail pane currently has.
func (m *Model) renderDetailBody() []string {
	pr, ok := m.stores.Detail.PullRequest()
	if !ok {
		return nil
	}
	width, _ := viewSize(Snapshot{Width: m.width, Height: m.height})
	return m.cache.markdown(pr.Body, detailPaneWidth(width, m.mode.View))
}
