package status

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/asalkeld/commitpolice/common"
)

// Blob is the object the day status lives in. storage.File from the nitric
// go-sdk satisfies it.
type Blob interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

type Store struct {
	blob Blob
	user string

	now func() time.Time
}

func NewStore(blob Blob, trackedUser string) *Store {
	return &Store{
		blob: blob,
		user: trackedUser,
		now:  common.Now,
	}
}

func (s *Store) today() string {
	return s.now().Format(common.DateFormat)
}

// Fresh is the day's starting state: nothing committed yet.
func (s *Store) Fresh() *DayStatus {
	return &DayStatus{
		Date:  s.today(),
		Users: map[string]bool{s.user: false},
	}
}

// Load returns today's status. A missing, unreadable or stale blob is
// replaced in-memory with a fresh record; reset reports that replacement so
// the caller can decide whether to materialize it.
func (s *Store) Load() (st *DayStatus, reset bool) {
	data, err := s.blob.Read()
	if err != nil {
		log.WithField("error", err).Info("No stored status, starting the day fresh.")
		return s.Fresh(), true
	}

	st = &DayStatus{}
	if err := json.Unmarshal(data, st); err != nil {
		log.WithField("error", err).Warn("Stored status is not valid JSON, starting the day fresh.")
		return s.Fresh(), true
	}

	if st.Date != s.today() {
		log.WithFields(log.Fields{
			"stored": st.Date,
			"today":  s.today(),
		}).Info("Date changed, resetting status.")
		return s.Fresh(), true
	}

	return st, false
}

// LoadForCheck is the checker's read path: a read-time reset is persisted
// immediately so the blob always exists once a check has run.
func (s *Store) LoadForCheck() *DayStatus {
	st, reset := s.Load()
	if reset {
		if err := s.Save(st); err != nil {
			log.WithField("error", err).Warn("Could not persist fresh status.")
		}
	}
	return st
}

// Save overwrites the blob. Last writer wins; the bucket has no conditional
// write, so concurrent read-modify-write sequences can drop one another.
func (s *Store) Save(st *DayStatus) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.blob.Write(data)
}
