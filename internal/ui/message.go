package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/followback/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSubmitted MsgKind = iota
	MsgExported
)

// exportResult carries the outcome of writing result.csv.
type exportResult struct {
	path string
	err  error
}

// submittedMsg is the constructor for [MsgSubmitted]
func submittedMsg(snap tasks.Snapshot) Msg {
	return Msg{kind: MsgSubmitted, data: snap}
}

// exportedMsg is the constructor for [MsgExported]
func exportedMsg(path string, err error) Msg {
	return Msg{kind: MsgExported, data: exportResult{path: path, err: err}}
}
