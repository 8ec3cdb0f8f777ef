package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
)

type snapshotMsg coordinator.Snapshot

// Mailbox hands coordinator snapshots to the program. It holds at most one
// snapshot and a newer one replaces an unread older one, so Post never
// blocks. Coordinator mutators publish on the caller's goroutine, which is
// the program's own update loop when a key press triggers them.
type Mailbox struct {
	ch chan coordinator.Snapshot
}

func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan coordinator.Snapshot, 1)}
}

// Post stores snap, dropping any snapshot not yet received. It has the
// signature coordinator.WithOnChange expects.
func (m *Mailbox) Post(snap coordinator.Snapshot) {
	for {
		select {
		case m.ch <- snap:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// wait returns a command that delivers the next snapshot.
func (m *Mailbox) wait() tea.Cmd {
	if m == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(<-m.ch)
	}
}
