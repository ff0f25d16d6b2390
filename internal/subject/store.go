// Package subject owns the collection of placed subjects.
package subject

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// KeySubjects is the storage key of the subject array.
const KeySubjects = "timetable_subjects"

// Store keeps subjects in insertion order. It performs no conflict checks;
// several subjects may share a cell.
type Store struct {
	mu       sync.Mutex
	subjects []timetable.Subject
	backend  db.Backend
	log      *zap.Logger
}

// Open loads the persisted subjects. A read or decode failure yields an
// empty store.
func Open(ctx context.Context, backend db.Backend, log *zap.Logger) *Store {
	s := &Store{backend: backend, log: log}

	var loaded []timetable.Subject
	if _, err := db.LoadJSON(ctx, backend, KeySubjects, &loaded); err != nil {
		log.Warn("loading subjects, starting empty", zap.String("key", KeySubjects), zap.Error(err))
		loaded = nil
	}
	s.subjects = loaded
	return s
}

// Add appends a subject unconditionally.
func (s *Store) Add(ctx context.Context, subj timetable.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects = append(s.subjects, subj.Clone())
	s.persist(ctx)
}

// Update replaces the subject with the same ID, keeping its position.
// Returns false if the ID is unknown.
func (s *Store) Update(ctx context.Context, subj timetable.Subject) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(subj.ID)
	if i < 0 {
		return false
	}
	s.subjects[i] = subj.Clone()
	s.persist(ctx)
	return true
}

// Delete removes the subject with the given ID.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.subjects = slices.Delete(s.subjects, i, i+1)
	s.persist(ctx)
	return true
}

// Query returns the subjects of a day. With a period, only subjects at
// exactly that period are returned; with nil, every subject of the day.
func (s *Store) Query(day timetable.Day, period *int) []timetable.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []timetable.Subject
	for _, subj := range s.subjects {
		if subj.DayOfWeek != day {
			continue
		}
		if period != nil && !subj.InPeriod(*period) {
			continue
		}
		out = append(out, subj.Clone())
	}
	return out
}

// Unscheduled returns the subjects without a period, grouped by day.
func (s *Store) Unscheduled() map[timetable.Day][]timetable.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[timetable.Day][]timetable.Subject)
	for _, subj := range s.subjects {
		if subj.IsUnscheduled() {
			out[subj.DayOfWeek] = append(out[subj.DayOfWeek], subj.Clone())
		}
	}
	return out
}

// Get returns the subject with the given ID.
func (s *Store) Get(id string) (timetable.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.subjects[i].Clone(), true
	}
	return timetable.Subject{}, false
}

// All returns every subject in insertion order.
func (s *Store) All() []timetable.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]timetable.Subject, len(s.subjects))
	for i, subj := range s.subjects {
		out[i] = subj.Clone()
	}
	return out
}

// Len returns the number of subjects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subjects)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.subjects, func(subj timetable.Subject) bool {
		return subj.ID == id
	})
}

// persist writes the full collection. Failures are logged and dropped.
func (s *Store) persist(ctx context.Context) {
	subjects := s.subjects
	if subjects == nil {
		subjects = []timetable.Subject{}
	}
	if err := db.SaveJSON(ctx, s.backend, KeySubjects, subjects); err != nil {
		s.log.Warn("saving subjects", zap.String("key", KeySubjects), zap.Int("count", len(subjects)), zap.Error(err))
	}
}
