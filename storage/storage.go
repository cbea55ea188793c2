package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EntryKind string

const (
	KindIssueCreated  EntryKind = "issue_created"
	KindLabelsChanged EntryKind = "labels_changed"
	KindCardMoved     EntryKind = "card_moved"
)

// Entry is one change the bot made on the tracker.
type Entry struct {
	ID          uuid.UUID
	Kind        EntryKind
	Repository  string
	IssueNumber int
	Detail      string
	At          time.Time
}

func NewEntry(kind EntryKind, repository string, issueNumber int, detail string) Entry {
	return Entry{
		ID:          uuid.New(),
		Kind:        kind,
		Repository:  repository,
		IssueNumber: issueNumber,
		Detail:      detail,
		At:          time.Now().UTC(),
	}
}

// Journal keeps an audit trail of the changes. It is write only, the
// tracker itself stays the single source of truth.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

// Nop is the journal used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

// Memory keeps the entries in memory.
type Memory struct {
	Entries []Entry
}

func (m *Memory) Record(_ context.Context, entry Entry) error {
	m.Entries = append(m.Entries, entry)
	return nil
}
