package market

import (
	"fmt"
	"log/slog"
)

// Phase is the orchestrator's position inside a cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDecayingInboxes
	PhaseDecayingCooldowns
	PhaseProcessingInboxes
	PhaseBidding
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDecayingInboxes:
		return "decaying_inboxes"
	case PhaseDecayingCooldowns:
		return "decaying_cooldowns"
	case PhaseProcessingInboxes:
		return "processing_inboxes"
	case PhaseBidding:
		return "bidding"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// CycleReport summarises one orchestrator pass.
type CycleReport struct {
	Cycle                 int `json:"cycle"`
	ExpiredMessages       int `json:"expired_messages"`
	ExpiredCooldowns      int `json:"expired_cooldowns"`
	ProcessedMessages     int `json:"processed_messages"`
	StaleMessages         int `json:"stale_messages"`
	Bids                  int `json:"bids"`
	ReleaseClauseTriggers int `json:"release_clause_triggers"`
	Completions           int `json:"completions"`
	FailedCompletions     int `json:"failed_completions"`
	BlockedTransfers      int `json:"blocked_transfers"`
}

type contractKey struct {
	clubID   uint
	playerID uint
}

type pendingContract struct {
	offer    ContractOffer
	response ContractResponse
}

// Engine runs the market over one World. It is not safe for concurrent
// use; callers serialise access.
type Engine struct {
	world     *World
	rules     Rules
	rng       Random
	log       *slog.Logger
	bids      *BidEvaluator
	contracts *ContractEvaluator

	phase    Phase
	counters map[contractKey]pendingContract
}

// NewEngine validates the rules and wires the evaluators. A nil logger
// discards engine events.
func NewEngine(world *World, rules Rules, rng Random, logger *slog.Logger) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		world:     world,
		rules:     rules,
		rng:       rng,
		log:       logger,
		bids:      NewBidEvaluator(rules, rng),
		contracts: NewContractEvaluator(rules, rng),
		counters:  make(map[contractKey]pendingContract),
	}, nil
}

func (e *Engine) World() *World { return e.world }
func (e *Engine) Rules() Rules  { return e.rules }
func (e *Engine) Phase() Phase  { return e.phase }

// AdvanceCycle runs one market pass: inbox decay, cooldown decay, AI inbox
// processing and AI bidding, in that order. Decaying first keeps messages
// created during the pass at their full tick budget.
func (e *Engine) AdvanceCycle() (CycleReport, error) {
	if e.phase != PhaseIdle {
		return CycleReport{}, ErrCycleInProgress
	}
	defer func() { e.phase = PhaseIdle }()

	var report CycleReport

	e.phase = PhaseDecayingInboxes
	report.ExpiredMessages = e.world.DecayInboxes()

	e.phase = PhaseDecayingCooldowns
	report.ExpiredCooldowns = e.world.Cooldowns.Decay()

	// Unanswered contract counters lapse with the cycle.
	clear(e.counters)

	e.phase = PhaseProcessingInboxes
	e.processInboxes(&report)

	e.phase = PhaseBidding
	e.placeBids(&report)

	e.world.Cycle++
	report.Cycle = e.world.Cycle

	e.log.Info("market cycle complete",
		"cycle", report.Cycle,
		"expired_messages", report.ExpiredMessages,
		"expired_cooldowns", report.ExpiredCooldowns,
		"processed", report.ProcessedMessages,
		"bids", report.Bids,
		"completions", report.Completions,
		"failed_completions", report.FailedCompletions,
		"blocked", report.BlockedTransfers,
	)
	return report, nil
}

// StartSeason moves the market to a new year. Open negotiations do not
// survive the season change.
func (e *Engine) StartSeason(year int) error {
	if e.phase != PhaseIdle {
		return ErrCycleInProgress
	}
	purged := e.world.PurgeAllTransfers()
	clear(e.counters)
	e.world.CurrentYear = year
	e.log.Info("season started", "year", year, "purged_messages", purged)
	return nil
}

func (e *Engine) idle() error {
	if e.phase != PhaseIdle {
		return ErrCycleInProgress
	}
	return nil
}
