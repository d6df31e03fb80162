// Package journal persists alarm tier transitions to an append-only log so
// an operator can review what fired across restarts.
package journal

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

const recordHeaderLen = 12

// FileJournal is a file-backed ports.AlarmJournal. Entries are framed as
// [8 bytes id][4 bytes len][len bytes json]; a partial trailing record left
// by a crash is truncated away on open. The review watermark lives in a
// sidecar meta file.
type FileJournal struct {
	mu        sync.Mutex
	path      string
	metaPath  string
	file      *os.File
	writer    *bufio.Writer
	nextID    ports.JournalEntryID
	reviewed  ports.JournalEntryID
	sizeBytes int64
}

func NewFileJournal(dir string) (*FileJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "alarms.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	j := &FileJournal{
		path:     path,
		metaPath: filepath.Join(dir, "alarms.meta"),
		file:     f,
		writer:   bufio.NewWriterSize(f, 64<<10),
	}
	if err := j.bootstrap(); err != nil {
		f.Close()
		return nil, err
	}
	return j, nil
}

func (j *FileJournal) bootstrap() error {
	if err := j.scanExisting(); err != nil {
		return err
	}
	if err := j.loadReviewed(); err != nil {
		return err
	}
	if j.nextID < j.reviewed {
		j.nextID = j.reviewed
	}
	_, err := j.file.Seek(0, io.SeekEnd)
	return err
}

// scanExisting walks the log to find the last intact record, truncating any
// partial tail from an interrupted write.
func (j *FileJournal) scanExisting() error {
	stat, err := os.Stat(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err != nil || stat.Size() == 0 {
		return nil
	}

	rf, err := os.Open(j.path)
	if err != nil {
		return err
	}
	defer rf.Close()

	reader := bufio.NewReader(rf)
	var (
		offset int64
		lastID ports.JournalEntryID
	)

	for {
		var hdr [recordHeaderLen]byte
		if _, err := io.ReadFull(reader, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return fmt.Errorf("journal scan header: %w", err)
		}
		id := ports.JournalEntryID(binary.BigEndian.Uint64(hdr[0:8]))
		length := binary.BigEndian.Uint32(hdr[8:12])

		if length > 0 {
			if _, err := io.CopyN(io.Discard, reader, int64(length)); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					break
				}
				return fmt.Errorf("journal scan body: %w", err)
			}
		}
		offset += recordHeaderLen + int64(length)
		lastID = id
	}

	if err := j.file.Truncate(offset); err != nil {
		return err
	}
	j.sizeBytes = offset
	j.nextID = lastID
	return nil
}

func (j *FileJournal) loadReviewed() error {
	data, err := os.ReadFile(j.metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	val := strings.TrimSpace(string(data))
	if val == "" {
		return nil
	}
	u, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return fmt.Errorf("journal meta parse: %w", err)
	}
	j.reviewed = ports.JournalEntryID(u)
	return nil
}

// Append writes one alarm event and flushes it to the OS. Alarm transitions
// are rare enough that per-entry flushing costs nothing and keeps the log
// current if the process dies.
func (j *FileJournal) Append(e domain.AlarmEvent) (ports.JournalEntryID, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	id := j.nextID + 1

	b, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}

	var hdr [recordHeaderLen]byte
	binary.BigEndian.PutUint64(hdr[0:8], uint64(id))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(len(b)))

	if _, err := j.writer.Write(hdr[:]); err != nil {
		return 0, err
	}
	if _, err := j.writer.Write(b); err != nil {
		return 0, err
	}
	if err := j.writer.Flush(); err != nil {
		return 0, err
	}

	j.nextID = id
	j.sizeBytes += int64(len(b) + len(hdr))
	return id, nil
}

// Iterate replays entries with id >= from in append order.
func (j *FileJournal) Iterate(from ports.JournalEntryID, fn func(id ports.JournalEntryID, e domain.AlarmEvent) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.writer.Flush(); err != nil {
		return err
	}

	f, err := os.Open(j.path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		var hdr [recordHeaderLen]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("journal iterate header: %w", err)
		}
		id := ports.JournalEntryID(binary.BigEndian.Uint64(hdr[0:8]))
		l := binary.BigEndian.Uint32(hdr[8:12])

		b := make([]byte, l)
		if _, err := io.ReadFull(r, b); err != nil {
			return fmt.Errorf("corrupt journal entry %d: %w", id, err)
		}
		if id < from {
			continue
		}

		var e domain.AlarmEvent
		if err := json.Unmarshal(b, &e); err != nil {
			return fmt.Errorf("corrupt journal entry %d: %w", id, err)
		}
		if err := fn(id, e); err != nil {
			return err
		}
	}
}

// Review advances the reviewed watermark and persists it.
func (j *FileJournal) Review(upto ports.JournalEntryID) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if upto > j.reviewed {
		j.reviewed = upto
	}
	data := []byte(fmt.Sprintf("%d\n", j.reviewed))
	return os.WriteFile(j.metaPath, data, 0o644)
}

func (j *FileJournal) Stats() ports.JournalStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return ports.JournalStats{
		OldestUnreviewed: j.reviewed + 1,
		LatestAppended:   j.nextID,
		SizeBytes:        j.sizeBytes,
	}
}

// Close flushes and releases the underlying file.
func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.writer.Flush(); err != nil {
		j.file.Close()
		return err
	}
	return j.file.Close()
}
