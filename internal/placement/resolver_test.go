package placement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/subject"
	"github.com/javiermolinar/timetable/internal/timetable"
)

func newTestResolver(t *testing.T) (*Resolver, *subject.Store) {
	t.Helper()
	store := subject.Open(context.Background(), db.NewMemory(), zap.NewNop())
	return New(store, zap.NewNop()), store
}

func TestPlace_CreateInEmptyCell(t *testing.T) {
	r, store := newTestResolver(t)

	res := r.Place(context.Background(), Request{Subject: timetable.Subject{
		Name: "Math", DayOfWeek: 2, Period: timetable.IntPtr(3),
	}})

	assert.Equal(t, Created, res.Outcome)
	assert.NotEmpty(t, res.Subject.ID)
	got := store.Query(2, timetable.IntPtr(3))
	require.Len(t, got, 1)
	assert.Equal(t, res.Subject.ID, got[0].ID)
}

func TestPlace_CreateReplacesOccupant(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)
	store.Add(ctx, timetable.Subject{ID: "A", Name: "Old", DayOfWeek: 1, Period: timetable.IntPtr(1), Color: timetable.ColorRed})

	res := r.Place(ctx, Request{Subject: timetable.Subject{
		Name: "New", DayOfWeek: 1, Period: timetable.IntPtr(1), Color: timetable.ColorGreen,
	}})

	assert.Equal(t, Replaced, res.Outcome)
	cell := store.Query(1, timetable.IntPtr(1))
	require.Len(t, cell, 1)
	assert.Equal(t, "A", cell[0].ID)
	assert.Equal(t, "New", cell[0].Name)
	assert.Equal(t, timetable.ColorGreen, cell[0].Color)
	assert.Equal(t, 1, store.Len())
}

func TestPlace_ReplaceTakesFirstOfStacked(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)
	store.Add(ctx, timetable.Subject{ID: "A", Name: "one", DayOfWeek: 4, Period: timetable.IntPtr(2)})
	store.Add(ctx, timetable.Subject{ID: "B", Name: "two", DayOfWeek: 4, Period: timetable.IntPtr(2)})

	res := r.Place(ctx, Request{Subject: timetable.Subject{Name: "three", DayOfWeek: 4, Period: timetable.IntPtr(2)}})

	assert.Equal(t, "A", res.Subject.ID)
	cell := store.Query(4, timetable.IntPtr(2))
	require.Len(t, cell, 2)
	assert.Equal(t, "three", cell[0].Name)
	assert.Equal(t, "two", cell[1].Name)
}

func TestPlace_CreateWithoutPeriodAppends(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)
	store.Add(ctx, timetable.Subject{ID: "A", DayOfWeek: 1})

	res := r.Place(ctx, Request{Subject: timetable.Subject{Name: "Club", DayOfWeek: 1, CustomTime: timetable.StringPtr("17:00")}})

	assert.Equal(t, Created, res.Outcome)
	assert.Len(t, store.Unscheduled()[1], 2)
}

func TestPlace_OtherDaySamePeriodDoesNotCollide(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)
	store.Add(ctx, timetable.Subject{ID: "A", DayOfWeek: 1, Period: timetable.IntPtr(1)})

	res := r.Place(ctx, Request{Subject: timetable.Subject{DayOfWeek: 2, Period: timetable.IntPtr(1)}})
	assert.Equal(t, Created, res.Outcome)
	assert.Equal(t, 2, store.Len())
}

func TestPlace_EditDoesNotScan(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)
	store.Add(ctx, timetable.Subject{ID: "A", Name: "a", DayOfWeek: 1, Period: timetable.IntPtr(1)})
	store.Add(ctx, timetable.Subject{ID: "B", Name: "b", DayOfWeek: 1, Period: timetable.IntPtr(2)})

	res := r.Place(ctx, Request{Editing: true, Subject: timetable.Subject{
		ID: "B", Name: "b moved", DayOfWeek: 1, Period: timetable.IntPtr(1),
	}})

	assert.Equal(t, Updated, res.Outcome)
	cell := store.Query(1, timetable.IntPtr(1))
	require.Len(t, cell, 2, "edit may create a collision")
	assert.Equal(t, []string{"A", "B"}, []string{cell[0].ID, cell[1].ID})
}

func TestPlace_EditUnknownIsIgnored(t *testing.T) {
	r, store := newTestResolver(t)

	res := r.Place(context.Background(), Request{Editing: true, Subject: timetable.Subject{ID: "ghost", DayOfWeek: 1}})

	assert.Equal(t, Ignored, res.Outcome)
	assert.Equal(t, 0, store.Len())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
