// Package audit provides the tamper-evident security audit trail behind
// the dashboard's audit reports. Authentication attempts and destructive
// actions — deletes, role changes, member removals — are appended as
// SHA-256 hash-chained JSON lines, so any later edit to the file is
// detectable.
//
// # Hash chain
//
// The event_hash for entry N is computed as
//
//	SHA-256( JSON({seq, ts, event, prev_hash}) )
//
// and each entry records the previous entry's event_hash. The genesis entry
// (seq=1) uses a prev_hash of 64 ASCII zero characters.
//
// # Append semantics
//
// Entries are single JSON lines written to a file opened with O_APPEND, so
// concurrent processes cannot interleave partial lines. A mutex serialises
// Append calls within the process to keep seq and prev_hash consistent.
package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// GenesisHash is the all-zero SHA-256 hex digest used as the prev_hash of
// the first entry in a chain.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Event is one auditable dashboard action.
type Event struct {
	// Actor is the authenticated user's email, or "anonymous" for failed
	// logins with unknown credentials.
	Actor string `json:"actor"`
	// Action names what happened: login, login_failed, alert_deleted,
	// report_deleted, member_removed, role_changed, database_deleted.
	Action string `json:"action"`
	// Target identifies the affected record, empty for login events.
	Target string `json:"target,omitempty"`
	// Detail carries free-form context, e.g. the new role.
	Detail string `json:"detail,omitempty"`
}

// line is the wire format for one audit log line.
type line struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"ts"`
	Event     Event     `json:"event"`
	PrevHash  string    `json:"prev_hash"`
	EventHash string    `json:"event_hash"`
}

// lineContent is the hashed subset of line; it deliberately excludes
// EventHash itself.
type lineContent struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"ts"`
	Event     Event     `json:"event"`
	PrevHash  string    `json:"prev_hash"`
}

func hashContent(c lineContent) string {
	data, err := json.Marshal(c)
	if err != nil {
		// lineContent contains only marshalable fields; this cannot fail.
		panic(fmt.Sprintf("audit: marshal content: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Trail is a tamper-evident, append-only audit writer. Create one with
// Open; a nil *Trail is valid and discards events, which lets deployments
// leave auditing unconfigured.
type Trail struct {
	mu       sync.Mutex
	file     *os.File
	prevHash string
	seq      int64
}

// Open opens (or creates) the audit file at path. Existing entries are
// re-verified so that the chain continues from a known-good state; a
// malformed or broken chain is an error.
func Open(path string) (*Trail, error) {
	prevHash := GenesisHash
	seq := int64(0)

	if _, err := os.Stat(path); err == nil {
		existing, err := readChain(path)
		if err != nil {
			return nil, err
		}
		if n := len(existing); n > 0 {
			prevHash = existing[n-1].EventHash
			seq = existing[n-1].Seq
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("audit: open for appending %q: %w", path, err)
	}

	return &Trail{file: f, prevHash: prevHash, seq: seq}, nil
}

// Append records one event. Safe for concurrent use; a nil Trail discards
// the event.
func (t *Trail) Append(evt Event) error {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	content := lineContent{
		Seq:       t.seq + 1,
		Timestamp: time.Now().UTC(),
		Event:     evt,
		PrevHash:  t.prevHash,
	}
	entry := line{
		Seq:       content.Seq,
		Timestamp: content.Timestamp,
		Event:     content.Event,
		PrevHash:  content.PrevHash,
		EventHash: hashContent(content),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit: marshal entry: %w", err)
	}
	data = append(data, '\n')

	if _, err := t.file.Write(data); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}

	t.seq = entry.Seq
	t.prevHash = entry.EventHash
	return nil
}

// Close flushes and closes the underlying file. A nil Trail is a no-op.
func (t *Trail) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.file.Sync(); err != nil {
		_ = t.file.Close()
		return fmt.Errorf("audit: sync: %w", err)
	}
	return t.file.Close()
}

// Verify re-reads the audit file at path and checks the whole hash chain,
// returning the verified events in order.
func Verify(path string) ([]Event, error) {
	lines, err := readChain(path)
	if err != nil {
		return nil, err
	}
	events := make([]Event, len(lines))
	for i, l := range lines {
		events[i] = l.Event
	}
	return events, nil
}

// readChain parses and verifies every line of the file at path.
func readChain(path string) ([]line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open for reading %q: %w", path, err)
	}
	defer f.Close()

	prevHash := GenesisHash
	var seq int64
	var lines []line

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var l line
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("audit: malformed entry at seq %d: %w", seq+1, err)
		}
		computed := hashContent(lineContent{
			Seq:       l.Seq,
			Timestamp: l.Timestamp,
			Event:     l.Event,
			PrevHash:  l.PrevHash,
		})
		if computed != l.EventHash {
			return nil, fmt.Errorf("audit: hash mismatch at seq %d: stored %q, computed %q",
				l.Seq, l.EventHash, computed)
		}
		if l.PrevHash != prevHash {
			return nil, fmt.Errorf("audit: chain break at seq %d: expected prev_hash %q, got %q",
				l.Seq, prevHash, l.PrevHash)
		}
		prevHash = l.EventHash
		seq = l.Seq
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: scanning %q: %w", path, err)
	}
	return lines, nil
}
