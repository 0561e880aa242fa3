package formatter

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	memoMu        sync.Mutex
	memoRenderers = map[int]*glamour.TermRenderer{}
)

// RenderMemo renders a card or day memo as terminal markdown wrapped at
// width. A fixed dark style is used; auto-detection queries the terminal.
// On renderer failure the memo is returned as written.
func RenderMemo(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	r, err := memoRenderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func memoRenderer(width int) (*glamour.TermRenderer, error) {
	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memoRenderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	memoRenderers[width] = r
	return r, nil
}

// MemoPreview returns the first line of a memo cut to width, for list rows.
func MemoPreview(md string, width int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(md), "\n")
	return Truncate(line, width)
}
