// Package placement decides what saving a subject into a cell means.
//
// The policy is single occupancy on create: creating a subject in a
// (day, period) cell that is already taken overwrites the first occupant in
// place, keeping its ID. Edits update by ID and never scan for collisions, so
// an edit may still leave two subjects in one cell.
package placement

import (
	"context"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/timetable"
)

// Outcome reports what a placement did to the store.
type Outcome int

const (
	// Created means a new subject was appended.
	Created Outcome = iota
	// Replaced means an existing subject in the target cell was overwritten.
	Replaced
	// Updated means the edited subject was rewritten by its own ID.
	Updated
	// Ignored means an edit referenced an unknown ID.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Replaced:
		return "replaced"
	case Updated:
		return "updated"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Store is the subset of the subject store the resolver needs.
type Store interface {
	Add(ctx context.Context, s timetable.Subject)
	Update(ctx context.Context, s timetable.Subject) bool
	Query(day timetable.Day, period *int) []timetable.Subject
}

// Request is a subject to save. Editing is true when it comes from an edit
// of an existing subject rather than a create.
type Request struct {
	Subject timetable.Subject
	Editing bool
}

// Result is the subject as stored and what happened to it.
type Result struct {
	Subject timetable.Subject
	Outcome Outcome
}

// Resolver applies the placement policy against a subject store.
type Resolver struct {
	store Store
	log   *zap.Logger
}

// New creates a Resolver over store.
func New(store Store, log *zap.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// Place saves the requested subject according to the policy.
func (r *Resolver) Place(ctx context.Context, req Request) Result {
	s := req.Subject

	if req.Editing {
		if !r.store.Update(ctx, s) {
			r.log.Debug("edit of unknown subject ignored", zap.String("id", s.ID))
			return Result{Subject: s, Outcome: Ignored}
		}
		return Result{Subject: s, Outcome: Updated}
	}

	if s.Period != nil {
		if existing := r.store.Query(s.DayOfWeek, s.Period); len(existing) > 0 {
			s.ID = existing[0].ID
			r.store.Update(ctx, s)
			r.log.Debug("replaced occupant",
				zap.String("id", s.ID),
				zap.Int("day", int(s.DayOfWeek)),
				zap.Int("period", *s.Period),
			)
			return Result{Subject: s, Outcome: Replaced}
		}
	}

	if s.ID == "" {
		s.ID = timetable.NewID()
	}
	r.store.Add(ctx, s)
	return Result{Subject: s, Outcome: Created}
}
