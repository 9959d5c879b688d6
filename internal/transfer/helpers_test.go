package transfer

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
)

// memoryRepo keeps a snapshot of the arena the way the database would.
type memoryRepo struct {
	snapshot *market.World
	managers map[uint]uint
	history  []TransferHistory
	saves    int
	failSave error
}

func newMemoryRepo(w *market.World) *memoryRepo {
	return &memoryRepo{snapshot: cloneWorld(w), managers: make(map[uint]uint)}
}

func (r *memoryRepo) IsEmpty() (bool, error) { return r.snapshot == nil, nil }

func (r *memoryRepo) LoadWorld() (*market.World, map[uint]uint, error) {
	if r.snapshot == nil {
		return nil, nil, ErrNoMarket
	}
	managers := make(map[uint]uint, len(r.managers))
	for k, v := range r.managers {
		managers[k] = v
	}
	w := cloneWorld(r.snapshot)
	w.History = w.History[:0]
	for i := range r.history {
		w.History = append(w.History, r.history[i].ToMarket())
	}
	return w, managers, nil
}

func (r *memoryRepo) SaveWorld(w *market.World, historyFrom int) error {
	if r.failSave != nil {
		return r.failSave
	}
	r.snapshot = cloneWorld(w)
	for _, rec := range w.History[historyFrom:] {
		row := historyFromMarket(rec)
		row.ID = uint(len(r.history) + 1)
		r.history = append(r.history, row)
	}
	r.saves++
	return nil
}

func (r *memoryRepo) AssignManager(clubID, userID uint) error {
	for _, managed := range r.managers {
		if managed == clubID {
			return club.ErrClubTaken
		}
	}
	r.managers[userID] = clubID
	return nil
}

func (r *memoryRepo) GetHistory(page, limit int, filters map[string]interface{}) ([]TransferHistory, int64, error) {
	var out []TransferHistory
	for _, h := range r.history {
		if v, ok := filters["club_id"]; ok && h.SellerClubID != v.(uint) && h.BuyerClubID != v.(uint) {
			continue
		}
		if v, ok := filters["player_id"]; ok && h.PlayerID != v.(uint) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	start := min((page-1)*limit, len(out))
	end := min(start+limit, len(out))
	return out[start:end], total, nil
}

func (r *memoryRepo) WithTransaction(txFunc func(MarketRepository) error) error {
	return txFunc(r)
}

func cloneWorld(src *market.World) *market.World {
	w := market.NewWorld(src.CurrentYear)
	w.Cycle = src.Cycle
	for _, l := range src.Leagues() {
		cp := *l
		w.AddLeague(&cp)
	}
	for _, c := range src.Clubs() {
		cp := &market.Club{
			ID:              c.ID,
			Name:            c.Name,
			LeagueID:        c.LeagueID,
			TransferBudget:  c.TransferBudget,
			WageBudget:      c.WageBudget,
			HumanControlled: c.HumanControlled,
			Messages:        append([]string(nil), c.Messages...),
		}
		for _, t := range c.Inbox {
			tc := *t
			cp.Inbox = append(cp.Inbox, &tc)
		}
		if err := w.AddClub(cp); err != nil {
			panic(err)
		}
	}
	for _, c := range src.Clubs() {
		for _, id := range c.PlayerIDs() {
			p, err := src.Player(id)
			if err != nil {
				panic(err)
			}
			cp := *p
			if err := w.AddPlayer(&cp); err != nil {
				panic(err)
			}
		}
	}
	for _, cd := range src.Cooldowns.Entries() {
		w.Cooldowns.Add(cd)
	}
	w.History = append([]market.TransferHistoryRecord(nil), src.History...)
	return w
}

// testWorld has three clubs of 18 players in one league. Player ids are
// clubID*100 + n.
func testWorld(t *testing.T) *market.World {
	t.Helper()
	w := market.NewWorld(2024)
	w.AddLeague(&market.League{ID: 1, Name: "Premier Division", Tier: 1})
	for clubID := uint(1); clubID <= 3; clubID++ {
		if err := w.AddClub(&market.Club{
			ID:             clubID,
			Name:           fmt.Sprintf("Club %d", clubID),
			LeagueID:       1,
			TransferBudget: 50_000_000,
			WageBudget:     2_000_000,
		}); err != nil {
			t.Fatal(err)
		}
		for n := uint(1); n <= 18; n++ {
			pos := 2
			if n <= 2 {
				pos = market.GoalkeeperPosition
			}
			if err := w.AddPlayer(&market.Player{
				ID:         clubID*100 + n,
				Name:       fmt.Sprintf("Player %d-%d", clubID, n),
				ClubID:     clubID,
				Position:   pos,
				Age:        25,
				Overall:    70,
				Potential:  75,
				Value:      1_000_000,
				Wage:       10_000,
				ExpiryYear: 2026,
			}); err != nil {
				t.Fatal(err)
			}
		}
	}
	return w
}

func newTestService(t *testing.T) (*MarketService, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo(testWorld(t))
	svc, err := NewMarketService(repo, market.DefaultRules(), market.NewRandom(7), nil)
	if err != nil {
		t.Fatalf("NewMarketService: %v", err)
	}
	return svc, repo
}

func mustClaim(t *testing.T, svc *MarketService, userID, clubID uint) {
	t.Helper()
	if err := svc.ClaimClub(userID, clubID); err != nil {
		t.Fatalf("ClaimClub(%d, %d): %v", userID, clubID, err)
	}
}

var errDiskFull = errors.New("disk full")
