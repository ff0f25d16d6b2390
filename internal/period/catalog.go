// Package period owns the catalog of numbered time slot definitions.
package period

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/timetable"
)

// Storage keys.
const (
	KeyPeriods = "timetable_periods"
	KeySeeded  = "timetable_periods_has_set_defaults"
)

// Catalog holds period definitions ordered by number.
// Every mutation rewrites the whole persisted array.
type Catalog struct {
	mu      sync.Mutex
	periods []timetable.Period
	backend db.Backend
	log     *zap.Logger
}

// Open loads the catalog from the backend. The first time it ever runs
// against a backend it seeds the default periods and records that it did.
// Read or decode failures leave the catalog empty and nothing is written.
func Open(ctx context.Context, backend db.Backend, log *zap.Logger) *Catalog {
	c := &Catalog{backend: backend, log: log}

	var seeded bool
	if _, err := db.LoadJSON(ctx, backend, KeySeeded, &seeded); err != nil {
		// Unknown install state, so never seed here.
		log.Warn("loading seeded flag, starting empty", zap.String("key", KeySeeded), zap.Error(err))
		return c
	}

	if !seeded {
		c.periods = timetable.DefaultPeriods()
		c.persist(ctx)
		if err := db.SaveJSON(ctx, backend, KeySeeded, true); err != nil {
			log.Warn("saving seeded flag", zap.String("key", KeySeeded), zap.Error(err))
		}
		log.Debug("seeded default periods", zap.Int("count", len(c.periods)))
		return c
	}

	var loaded []timetable.Period
	if _, err := db.LoadJSON(ctx, backend, KeyPeriods, &loaded); err != nil {
		log.Warn("loading periods, starting empty", zap.String("key", KeyPeriods), zap.Error(err))
		loaded = nil
	}
	timetable.SortPeriods(loaded)
	c.periods = loaded
	return c
}

// Add appends a period and re-sorts by number. Duplicate numbers are allowed.
func (c *Catalog) Add(ctx context.Context, p timetable.Period) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.periods = append(c.periods, p)
	timetable.SortPeriods(c.periods)
	c.persist(ctx)
}

// Update replaces the period with the same ID and re-sorts.
// Returns false, changing nothing, if the ID is unknown.
func (c *Catalog) Update(ctx context.Context, p timetable.Period) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(p.ID)
	if i < 0 {
		return false
	}
	c.periods[i] = p
	timetable.SortPeriods(c.periods)
	c.persist(ctx)
	return true
}

// Delete removes the period with the given ID. Subjects referencing its
// number are left alone.
func (c *Catalog) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.periods = slices.Delete(c.periods, i, i+1)
	c.persist(ctx)
	return true
}

// NextNumber suggests a number for a new period: one past the highest.
func (c *Catalog) NextNumber() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	highest := 0
	for _, p := range c.periods {
		highest = max(highest, p.Number)
	}
	return highest + 1
}

// Find returns the first period with the given number.
func (c *Catalog) Find(number int) (timetable.Period, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.periods {
		if p.Number == number {
			return p, true
		}
	}
	return timetable.Period{}, false
}

// Get returns the period with the given ID.
func (c *Catalog) Get(id string) (timetable.Period, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.periods[i], true
	}
	return timetable.Period{}, false
}

// List returns a copy of the periods in display order.
func (c *Catalog) List() []timetable.Period {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.periods)
}

// Numbers returns the distinct period numbers in ascending order.
func (c *Catalog) Numbers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	nums := make([]int, 0, len(c.periods))
	for _, p := range c.periods {
		nums = append(nums, p.Number)
	}
	slices.Sort(nums)
	return slices.Compact(nums)
}

// Len returns the number of periods.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.periods)
}

func (c *Catalog) indexOf(id string) int {
	return slices.IndexFunc(c.periods, func(p timetable.Period) bool {
		return p.ID == id
	})
}

// persist writes the full catalog. Failures are logged and dropped.
func (c *Catalog) persist(ctx context.Context) {
	periods := c.periods
	if periods == nil {
		periods = []timetable.Period{}
	}
	if err := db.SaveJSON(ctx, c.backend, KeyPeriods, periods); err != nil {
		c.log.Warn("saving periods", zap.String("key", KeyPeriods), zap.Error(err))
	}
}
