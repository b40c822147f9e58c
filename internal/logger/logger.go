// Package logger provides the small diagnostics surface the resolver and CLI
// share. It is deliberately narrower than a general-purpose logging library:
// there are no source maps and no line/column tracking, because nothing
// upstream of the resolver produces source locations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Kind classifies a logged message.
type Kind uint8

const (
	Debug Kind = iota
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Debug:
		return "debug"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Msg is a single logged diagnostic.
type Msg struct {
	Kind Kind
	Text string
}

// Log receives diagnostics as resolution proceeds. Callers that don't care
// about diagnostics pass Discard; tests pass a *DeferredLog to assert on
// what was logged without touching a terminal.
type Log interface {
	Add(kind Kind, text string)
	AddMsg(msg Msg)
}

// Discard silently drops every message. The CLI uses it when --verbose is
// off; logging is an external collaborator, not part of the algorithm.
var Discard Log = discardLog{}

type discardLog struct{}

func (discardLog) Add(Kind, string) {}
func (discardLog) AddMsg(Msg)       {}

// TerminalLog writes colorized diagnostics to a writer (normally os.Stderr),
// colorizing only when the writer is attached to a real terminal.
type TerminalLog struct {
	mu     sync.Mutex
	w      io.Writer
	colors bool
}

// NewTerminalLog builds a Log that writes to w, colorizing if w is a TTY.
func NewTerminalLog(w io.Writer) *TerminalLog {
	colors := false
	if f, ok := w.(*os.File); ok {
		colors = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TerminalLog{w: w, colors: colors}
}

func (l *TerminalLog) Add(kind Kind, text string) {
	l.AddMsg(Msg{Kind: kind, Text: text})
}

func (l *TerminalLog) AddMsg(msg Msg) {
	l.mu.Lock()
	defer l.mu.Unlock()

	label := msg.Kind.String()
	if l.colors {
		switch msg.Kind {
		case Error:
			label = color.RedString(label)
		case Warning:
			label = color.YellowString(label)
		case Debug:
			label = color.CyanString(label)
		}
	}
	fmt.Fprintf(l.w, "%s: %s\n", label, msg.Text)
}

// DeferredLog collects messages in memory. It's used by tests that want to
// assert on what the resolver logged without depending on a terminal.
type DeferredLog struct {
	mu   sync.Mutex
	Msgs []Msg
}

// NewDeferredLog returns an empty DeferredLog.
func NewDeferredLog() *DeferredLog {
	return &DeferredLog{}
}

func (l *DeferredLog) Add(kind Kind, text string) {
	l.AddMsg(Msg{Kind: kind, Text: text})
}

func (l *DeferredLog) AddMsg(msg Msg) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Msgs = append(l.Msgs, msg)
}

// HasErrors reports whether any Error-kind message was recorded.
func (l *DeferredLog) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Msgs {
		if m.Kind == Error {
			return true
		}
	}
	return false
}
