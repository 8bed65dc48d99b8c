// Package statusbar renders the single status line under the text
// area: file name, modified marker, caret position, queue depth and
// transient messages (find prompts, errors).
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StylePrompt    tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StylePrompt:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	caret      types.TextPosition
	isModified bool
	pending    int

	prompt      string // active input prompt (find mode), empty when off
	promptInput string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetFileInfo updates the file path and modified marker.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCaretInfo updates the displayed caret position.
func (sb *StatusBar) SetCaretInfo(pos types.TextPosition) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.caret = pos
}

// SetPending updates the queued-operation count indicator.
func (sb *StatusBar) SetPending(n int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.pending = n
}

// SetPrompt shows an input prompt (e.g. "Find: ") with the text typed
// so far. An empty prompt returns the bar to its default display.
func (sb *StatusBar) SetPrompt(prompt, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
	sb.promptInput = input
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// defaultDisplayText builds the default status line text.
func (sb *StatusBar) defaultDisplayText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	pendingIndicator := ""
	if sb.pending > 0 {
		pendingIndicator = fmt.Sprintf(" -- %d op(s) queued", sb.pending)
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s",
		fPath, modifiedIndicator, sb.caret.Line+1, sb.caret.Col+1, pendingIndicator)
}

// Draw renders the status bar onto the bottom row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if height <= 0 || width <= 0 {
		return
	}
	row := height - 1

	text := sb.defaultDisplayText()
	style := sb.config.StyleDefault
	if sb.isModified {
		style = sb.config.StyleModified
	}
	switch {
	case sb.prompt != "":
		text = sb.prompt + sb.promptInput
		style = sb.config.StylePrompt
	case sb.tempMessage != "":
		if time.Since(sb.tempMessageTime) < sb.config.MessageTimeout {
			text = sb.tempMessage
			style = sb.config.StyleMessage
		} else {
			sb.tempMessage = ""
		}
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
	x := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < width {
		runes := gr.Runes()
		screen.SetContent(x, row, runes[0], runes[1:], style)
		x += gr.Width()
	}
}
