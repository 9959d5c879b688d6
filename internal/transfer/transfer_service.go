package transfer

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"sync"

	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
)

// MarketService is the single writer of the market. Every operation runs
// under one lock and writes the arena back before returning.
type MarketService struct {
	mu     sync.Mutex
	repo   MarketRepository
	rules  market.Rules
	rng    market.Random
	logger *slog.Logger

	engine       *market.Engine
	managers     map[uint]uint
	savedHistory int
}

func NewMarketService(repo MarketRepository, rules market.Rules, rng market.Random, logger *slog.Logger) (*MarketService, error) {
	s := &MarketService{repo: repo, rules: rules, rng: rng, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MarketService) load() error {
	world, managers, err := s.repo.LoadWorld()
	if err != nil {
		return fmt.Errorf("loading market: %w", err)
	}
	engine, err := market.NewEngine(world, s.rules, s.rng, s.logger)
	if err != nil {
		return err
	}
	for _, clubID := range managers {
		if err := world.SetHumanControlled(clubID, true); err != nil {
			return err
		}
	}
	s.engine = engine
	s.managers = managers
	s.savedHistory = len(world.History)
	return nil
}

// persist writes the arena back. On failure the in-memory arena is
// reloaded so it never runs ahead of the database.
func (s *MarketService) persist() error {
	world := s.engine.World()
	err := s.repo.WithTransaction(func(repo MarketRepository) error {
		return repo.SaveWorld(world, s.savedHistory)
	})
	if err != nil {
		log.Printf("Error saving market state: %v", err)
		if reloadErr := s.load(); reloadErr != nil {
			log.Printf("Error reloading market state: %v", reloadErr)
		}
		return fmt.Errorf("saving market: %w", err)
	}
	s.savedHistory = len(world.History)
	return nil
}

// settle persists after a successful action, and after the failures that
// still changed the arena.
func (s *MarketService) settle(err error) error {
	if err != nil && !errors.Is(err, market.ErrStaleTransfer) {
		return err
	}
	if perr := s.persist(); perr != nil {
		return perr
	}
	return err
}

func (s *MarketService) clubOf(userID uint) (*market.Club, error) {
	clubID, ok := s.managers[userID]
	if !ok {
		return nil, club.ErrNoClub
	}
	return s.engine.World().Club(clubID)
}

// ClubOf returns the id of the club the user manages.
func (s *MarketService) ClubOf(userID uint) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *MarketService) ClaimClub(userID, clubID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Phase() != market.PhaseIdle {
		return market.ErrCycleInProgress
	}
	if _, ok := s.managers[userID]; ok {
		return club.ErrAlreadyManaging
	}
	c, err := s.engine.World().Club(clubID)
	if err != nil {
		return err
	}
	if c.HumanControlled {
		return club.ErrClubTaken
	}
	if err := s.repo.AssignManager(clubID, userID); err != nil {
		return err
	}
	c.HumanControlled = true
	s.managers[userID] = clubID
	log.Printf("User %d now manages club %d", userID, clubID)
	return nil
}

// Inbox returns copies of the messages waiting for the manager's answer.
func (s *MarketService) Inbox(userID uint) ([]market.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return nil, err
	}
	out := make([]market.Transfer, 0, len(c.Inbox))
	for _, t := range c.Inbox {
		out = append(out, *t)
	}
	return out, nil
}

func (s *MarketService) Messages(userID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return nil, err
	}
	return append([]string{}, c.Messages...), nil
}

func (s *MarketService) ClearMessages(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return err
	}
	c.Messages = nil
	return s.persist()
}

func (s *MarketService) OpenBid(userID, playerID uint, fee int64) (market.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return market.Transfer{}, err
	}
	t, err := s.engine.OpenBid(c.ID, playerID, fee)
	if err := s.settle(err); err != nil {
		return market.Transfer{}, err
	}
	return *t, nil
}

func (s *MarketService) Respond(userID uint, transferID, action string, fee int64) error {
	a, err := market.ParseAction(action)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return err
	}
	return s.settle(s.engine.RespondToTransfer(c.ID, transferID, a, fee))
}

func (s *MarketService) Dismiss(userID uint, transferID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return err
	}
	return s.settle(s.engine.DismissTransfer(c.ID, transferID))
}

func (s *MarketService) ActivateReleaseClause(userID, playerID uint) (market.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return market.Transfer{}, err
	}
	t, err := s.engine.ActivateReleaseClause(c.ID, playerID)
	if err := s.settle(err); err != nil {
		return market.Transfer{}, err
	}
	return *t, nil
}

func (s *MarketService) NegotiateContract(userID, playerID uint, req ContractRequest) (market.ContractResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return market.ContractResponse{}, err
	}
	resp, err := s.engine.NegotiateContract(market.ContractOffer{
		PlayerID:      playerID,
		ClubID:        c.ID,
		Length:        req.Length,
		Wage:          req.Wage,
		ReleaseClause: req.ReleaseClause,
		Renewal:       req.Renewal,
	})
	if err := s.settle(err); err != nil {
		return market.ContractResponse{}, err
	}
	return resp, nil
}

func (s *MarketService) ConcludeContract(userID, playerID uint, accept bool) (market.ContractResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return market.ContractResponse{}, err
	}
	resp, err := s.engine.ConcludeContract(c.ID, playerID, accept)
	if err := s.settle(err); err != nil {
		return market.ContractResponse{}, err
	}
	return resp, nil
}

func (s *MarketService) SetTransferStatus(userID, playerID uint, listed, blocked bool) (market.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.clubOf(userID)
	if err != nil {
		return market.Player{}, err
	}
	p, err := s.engine.SetTransferStatus(c.ID, playerID, listed, blocked)
	if err := s.settle(err); err != nil {
		return market.Player{}, err
	}
	return *p, nil
}

// AdvanceCycles runs n market passes, saving after each one.
func (s *MarketService) AdvanceCycles(n int) ([]market.CycleReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := make([]market.CycleReport, 0, n)
	for i := 0; i < n; i++ {
		report, err := s.engine.AdvanceCycle()
		if err != nil {
			return reports, err
		}
		if err := s.persist(); err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *MarketService) StartSeason(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if year <= s.engine.World().CurrentYear {
		return fmt.Errorf("%w: season %d is not after %d", ErrInvalidSeason, year, s.engine.World().CurrentYear)
	}
	return s.settle(s.engine.StartSeason(year))
}

// Status reports the market clock.
func (s *MarketService) Status() (year, cycle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.engine.World()
	return w.CurrentYear, w.Cycle
}

func (s *MarketService) Cooldowns() []market.NegotiationCooldown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.World().Cooldowns.Entries()
}
