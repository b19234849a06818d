package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
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
	MsgRowsLoaded MsgKind = iota
	MsgDeleted
	MsgOpened
)

type rowsLoaded struct {
	tab   Tab
	query query
	items []list.Item
	err   error
}

type deleted struct {
	tab   Tab
	label string
	err   error
}

type opened struct {
	url string
	err error
}

// rowsLoadedMsg is the constructor for [MsgRowsLoaded]
func rowsLoadedMsg(tab Tab, q query, items []list.Item, err error) Msg {
	return Msg{kind: MsgRowsLoaded, data: rowsLoaded{tab: tab, query: q, items: items, err: err}}
}

// deletedMsg is the constructor for [MsgDeleted]
func deletedMsg(tab Tab, label string, err error) Msg {
	return Msg{kind: MsgDeleted, data: deleted{tab: tab, label: label, err: err}}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(url string, err error) Msg {
	return Msg{kind: MsgOpened, data: opened{url: url, err: err}}
}
