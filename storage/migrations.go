package storage

var pgMigration = []string{
	`CREATE TYPE entry_kind AS ENUM ('issue_created', 'labels_changed', 'card_moved')`,
	`CREATE TABLE journal (
id uuid PRIMARY KEY,
kind entry_kind NOT NULL,
repository VARCHAR(255) NOT NULL,
issue_number INTEGER NOT NULL,
detail TEXT NOT NULL DEFAULT '',
created_at TIMESTAMP WITH TIME ZONE NOT NULL
)`,
	`CREATE INDEX journal_issue ON journal (repository, issue_number)`,
}
