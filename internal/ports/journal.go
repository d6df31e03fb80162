package ports

import "github.com/sf044/vitalsync/internal/domain"

// JournalEntryID is the monotonically increasing id of a journal record.
type JournalEntryID uint64

// JournalStats summarizes the on-disk state of an alarm journal.
type JournalStats struct {
	OldestUnreviewed JournalEntryID
	LatestAppended   JournalEntryID
	SizeBytes        int64
}

// AlarmJournal is an append-only persistent log of alarm tier transitions.
// Review marks entries as seen (e.g. acknowledged by an operator console)
// so replays after restart only surface what was never reviewed.
type AlarmJournal interface {
	Append(e domain.AlarmEvent) (JournalEntryID, error)
	Iterate(from JournalEntryID, fn func(id JournalEntryID, e domain.AlarmEvent) error) error
	Review(upto JournalEntryID) error
	Stats() JournalStats
}
