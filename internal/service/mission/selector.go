package mission

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/glucoamigo/backend/internal/model/mission"
	"github.com/glucoamigo/backend/internal/storage/local"
)

// storageKey is the fixed name the daily selection lives under in the
// local store.
const storageKey = "daily_missions"

// dailyCount is how many missions a day offers.
const dailyCount = 2

// Selector draws the day's missions: one selection per calendar day,
// regenerated only when the stored day key differs from today's.
type Selector struct {
	store   *local.Store
	catalog []mission.Mission
	now     func() time.Time
	rand    *rand.Rand
}

func NewSelector(store *local.Store, catalog []mission.Mission) *Selector {
	return &Selector{
		store:   store,
		catalog: append([]mission.Mission(nil), catalog...),
		now:     time.Now,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock fixes the selector's notion of today. Intended for tests.
func (s *Selector) WithClock(now func() time.Time) *Selector {
	s.now = now
	return s
}

// WithRand fixes the selector's randomness source. Intended for tests.
func (s *Selector) WithRand(r *rand.Rand) *Selector {
	s.rand = r
	return s
}

// Today returns the missions for the current day. A stored selection
// for today is reused unchanged; otherwise a fresh draw is persisted
// under the same key, overwriting the previous day. Storage failures
// are logged and yield an empty selection rather than a panic.
func (s *Selector) Today() []mission.Mission {
	key := s.dayKey()

	var rec mission.DailySelection
	err := s.store.Get(storageKey, &rec)
	switch {
	case err == nil && rec.Date == key:
		return rec.Missions
	case err != nil && !errors.Is(err, local.ErrNotFound):
		log.Printf("[mission] failed to read daily selection: %v", err)
		return nil
	}

	drawn := s.draw()
	rec = mission.DailySelection{Date: key, Missions: drawn}
	if err := s.store.Set(storageKey, rec); err != nil {
		log.Printf("[mission] failed to persist daily selection: %v", err)
		return nil
	}
	return drawn
}

func (s *Selector) dayKey() string {
	return s.now().Format(time.DateOnly)
}

// draw picks min(dailyCount, len(catalog)) missions without
// replacement via a partial Fisher-Yates shuffle.
func (s *Selector) draw() []mission.Mission {
	pool := append([]mission.Mission(nil), s.catalog...)
	n := dailyCount
	if len(pool) < n {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + s.rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}
