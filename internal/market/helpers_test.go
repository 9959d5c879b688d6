package market

import (
	"fmt"
	"testing"
)

const testYear = 2024

// stubRandom replays scripted values, clamped into the requested range, and
// falls back to pick (or the lower bound) once the script runs out.
type stubRandom struct {
	ints      []int
	floats    []float64
	pick      func(min, max int) int
	pickFloat func(min, max float64) float64
}

func (s *stubRandom) Int(min, max int) int {
	if len(s.ints) > 0 {
		v := s.ints[0]
		s.ints = s.ints[1:]
		return clampInt(v, min, max)
	}
	if s.pick != nil {
		return s.pick(min, max)
	}
	return min
}

func (s *stubRandom) Float(min, max float64) float64 {
	if len(s.floats) > 0 {
		v := s.floats[0]
		s.floats = s.floats[1:]
		return clampFloat(v, min, max)
	}
	if s.pickFloat != nil {
		return s.pickFloat(min, max)
	}
	return min
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}

func alwaysMax() *stubRandom {
	return &stubRandom{
		pick:      func(_, max int) int { return max },
		pickFloat: func(_, max float64) float64 { return max },
	}
}

func alwaysMin() *stubRandom {
	return &stubRandom{}
}

type clubSpec struct {
	id         uint
	human      bool
	keepers    int
	outfield   int
	overall    int
	budget     int64
	wageBudget int64
	leagueID   uint
}

func defaultSpec(id uint, human bool) clubSpec {
	return clubSpec{
		id:         id,
		human:      human,
		keepers:    2,
		outfield:   16,
		overall:    70,
		budget:     50_000_000,
		wageBudget: 10_000_000,
	}
}

// newTestWorld builds clubs whose players get ids club*100+n, keepers first.
func newTestWorld(t *testing.T, specs ...clubSpec) *World {
	t.Helper()
	w := NewWorld(testYear)
	w.AddLeague(&League{ID: 1, Name: "Premier Division", Tier: 1})
	w.AddLeague(&League{ID: 2, Name: "Second Division", Tier: 2})
	w.AddLeague(&League{ID: 3, Name: "Third Division", Tier: 3})
	for _, s := range specs {
		league := s.leagueID
		if league == 0 {
			league = 1
		}
		club := &Club{
			ID:              s.id,
			Name:            fmt.Sprintf("Club %d", s.id),
			LeagueID:        league,
			TransferBudget:  s.budget,
			WageBudget:      s.wageBudget,
			HumanControlled: s.human,
		}
		if err := w.AddClub(club); err != nil {
			t.Fatalf("AddClub: %v", err)
		}
		for i := 1; i <= s.keepers+s.outfield; i++ {
			position := 1 + i%3
			if i <= s.keepers {
				position = GoalkeeperPosition
			}
			p := &Player{
				ID:         s.id*100 + uint(i),
				Name:       fmt.Sprintf("Player %d-%d", s.id, i),
				ClubID:     s.id,
				Position:   position,
				Age:        25,
				Overall:    s.overall,
				Potential:  s.overall,
				Value:      1_000_000,
				Wage:       10_000,
				ExpiryYear: testYear + 2,
			}
			if err := w.AddPlayer(p); err != nil {
				t.Fatalf("AddPlayer: %v", err)
			}
		}
	}
	return w
}

func newTestEngine(t *testing.T, w *World, rng Random) *Engine {
	t.Helper()
	e, err := NewEngine(w, DefaultRules(), rng, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func mustClub(t *testing.T, w *World, id uint) *Club {
	t.Helper()
	c, err := w.Club(id)
	if err != nil {
		t.Fatalf("Club(%d): %v", id, err)
	}
	return c
}

func mustPlayer(t *testing.T, w *World, id uint) *Player {
	t.Helper()
	p, err := w.Player(id)
	if err != nil {
		t.Fatalf("Player(%d): %v", id, err)
	}
	return p
}

func messagesFor(c *Club, playerID uint) []*Transfer {
	var out []*Transfer
	for _, t := range c.Inbox {
		if t.PlayerID == playerID {
			out = append(out, t)
		}
	}
	return out
}

func totalTransferBudget(w *World) int64 {
	var total int64
	for _, c := range w.Clubs() {
		total += c.TransferBudget
	}
	return total
}
