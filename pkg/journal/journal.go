package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/view"
)

const (
	bucketSessions = "sessions"
	bucketEvents   = "events"
)

// initDB holds the bucket initializers run on every Open.
var initDB = map[string]func(tx *bolt.Tx) error{
	"initialize session table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSessions))
		return err
	},
	"initialize event table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEvents))
		return err
	},
}

// Session is one recorded run.
type Session struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Started time.Time `json:"started"`
}

// Record is one persisted engine event.
type Record struct {
	Seq      int           `json:"seq"`
	Time     time.Time     `json:"time"`
	Kind     string        `json:"kind"`
	View     string        `json:"view,omitempty"`
	Node     string        `json:"node,omitempty"`
	Size     int           `json:"size,omitempty"`
	Created  int           `json:"created,omitempty"`
	Removed  int           `json:"removed,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// String returns a one-line description of the record.
func (r Record) String() string {
	if r.Kind == view.EventReconcile.String() {
		return fmt.Sprintf("%4d %-9s %s size=%d created=%d removed=%d in %s",
			r.Seq, r.Kind, r.View, r.Size, r.Created, r.Removed, r.Duration)
	}
	return fmt.Sprintf("%4d %-9s %s %s", r.Seq, r.Kind, r.View, r.Node)
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger used to report write failures from Observe.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Journal) {
		j.logger = logger
	}
}

// WithClock overrides the time source for records and sessions.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// Journal is an event store backed by bbolt. It is safe for concurrent use.
type Journal struct {
	db     *bolt.DB
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	session uint64
}

// Open opens or creates the journal at path, creating parent directories.
func Open(path string, opts ...Option) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(errors.CodeJournalOpen).WithDetail(path).Wrap(err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New(errors.CodeJournalOpen).WithDetail(path).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.New(errors.CodeJournalOpen).WithDetail(path).Wrap(err)
	}

	j := &Journal{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.db.Path()
}

// Begin starts a new session; subsequent events are recorded into it.
func (j *Journal) Begin(name string) (Session, error) {
	s := Session{Name: name, Started: j.now()}
	err := j.db.Update(func(tx *bolt.Tx) error {
		sessions := tx.Bucket([]byte(bucketSessions))
		seq, err := sessions.NextSequence()
		if err != nil {
			return err
		}
		s.ID = int(seq)
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if err := sessions.Put(marshalSeq(seq), data); err != nil {
			return err
		}
		_, err = tx.Bucket([]byte(bucketEvents)).CreateBucket(marshalSeq(seq))
		return err
	})
	if err != nil {
		return Session{}, errors.New(errors.CodeJournalWrite).WithDetail("begin session").Wrap(err)
	}

	j.mu.Lock()
	j.session = uint64(s.ID)
	j.mu.Unlock()
	return s, nil
}

// Current returns the ID of the session being recorded, or 0.
func (j *Journal) Current() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return int(j.session)
}

// Record appends ev to the current session, starting an unnamed session if
// none is active.
func (j *Journal) Record(ev view.Event) error {
	j.mu.Lock()
	session := j.session
	j.mu.Unlock()
	if session == 0 {
		s, err := j.Begin("")
		if err != nil {
			return err
		}
		session = uint64(s.ID)
	}

	r := newRecord(ev, j.now())
	err := j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents)).Bucket(marshalSeq(session))
		if b == nil {
			return errors.New(errors.CodeSessionNotFound).WithDetailf("session %d", session)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		r.Seq = int(seq)
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return errors.FromError(err, errors.CodeJournalWrite)
	}
	return nil
}

// Observe implements view.Observer. Write failures are logged.
func (j *Journal) Observe(ev view.Event) {
	if err := j.Record(ev); err != nil {
		j.logger.Warn("journal write failed", "kind", ev.Kind, "error", err)
	}
}

// Sessions returns every recorded session, oldest first.
func (j *Journal) Sessions() ([]Session, error) {
	var sessions []Session
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSessions)).ForEach(func(k, v []byte) error {
			var s Session
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("session %d: %w", unmarshalSeq(k), err)
			}
			sessions = append(sessions, s)
			return nil
		})
	})
	return sessions, err
}

// Session returns the session with the given ID.
func (j *Journal) Session(id int) (Session, error) {
	var s Session
	err := j.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSessions)).Get(marshalSeq(uint64(id)))
		if v == nil {
			return errors.New(errors.CodeSessionNotFound).WithDetailf("session %d", id)
		}
		return json.Unmarshal(v, &s)
	})
	return s, err
}

// Events returns the records of a session in order.
func (j *Journal) Events(id int) ([]Record, error) {
	var records []Record
	err := j.IterateEvents(id, func(r Record) {
		records = append(records, r)
	})
	return records, err
}

// IterateEvents calls f with each record of a session in order.
func (j *Journal) IterateEvents(id int, f func(Record)) error {
	return j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents)).Bucket(marshalSeq(uint64(id)))
		if b == nil {
			return errors.New(errors.CodeSessionNotFound).WithDetailf("session %d", id)
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("record %d: %w", unmarshalSeq(k), err)
			}
			f(r)
		}
		return nil
	})
}

// Delete removes a session and its records.
func (j *Journal) Delete(id int) error {
	err := j.db.Update(func(tx *bolt.Tx) error {
		key := marshalSeq(uint64(id))
		sessions := tx.Bucket([]byte(bucketSessions))
		if sessions.Get(key) == nil {
			return errors.New(errors.CodeSessionNotFound).WithDetailf("session %d", id)
		}
		if err := sessions.Delete(key); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketEvents)).DeleteBucket(key)
	})
	if err != nil {
		return err
	}

	j.mu.Lock()
	if j.session == uint64(id) {
		j.session = 0
	}
	j.mu.Unlock()
	return nil
}

func newRecord(ev view.Event, at time.Time) Record {
	r := Record{
		Time: at,
		Kind: ev.Kind.String(),
	}
	if ev.View != nil {
		r.View = fmt.Sprintf("%T", ev.View)
	}
	if s, ok := ev.Node.(fmt.Stringer); ok {
		r.Node = s.String()
	}
	if ev.Kind == view.EventReconcile {
		r.Size = ev.Size
		r.Created = ev.Created
		r.Removed = ev.Removed
		r.Duration = ev.Duration
	}
	return r
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
