package market

import "fmt"

// BandTerms shapes a price band: min = value / FloorDivisor and
// max = value * clamp(yearsLeft / YearsDivisor, MinMultiplier, MaxMultiplier).
type BandTerms struct {
	FloorDivisor  float64 `mapstructure:"floor_divisor"`
	YearsDivisor  float64 `mapstructure:"years_divisor"`
	MinMultiplier float64 `mapstructure:"min_multiplier"`
	MaxMultiplier float64 `mapstructure:"max_multiplier"`
}

// Rules holds every tunable of the market.
type Rules struct {
	MinSquadSize   int `mapstructure:"min_squad_size"`
	MaxSquadSize   int `mapstructure:"max_squad_size"`
	MinGoalkeepers int `mapstructure:"min_goalkeepers"`
	MinOutfielders int `mapstructure:"min_outfielders"`

	MessageTicks       int `mapstructure:"message_ticks"`
	ReleaseClauseTicks int `mapstructure:"release_clause_ticks"`

	BidInterestThreshold   int `mapstructure:"bid_interest_threshold"`
	TransferListedInterest int `mapstructure:"transfer_listed_interest"`

	RejectionCooldownTicks         int `mapstructure:"rejection_cooldown_ticks"`
	CompletedTransferCooldownTicks int `mapstructure:"completed_transfer_cooldown_ticks"`
	SellerRejectionCooldownMin     int `mapstructure:"seller_rejection_cooldown_min"`
	SellerRejectionCooldownMax     int `mapstructure:"seller_rejection_cooldown_max"`
	ContractSuccessCooldownTicks   int `mapstructure:"contract_success_cooldown_ticks"`
	ContractFailureCooldownMin     int `mapstructure:"contract_failure_cooldown_min"`
	ContractFailureCooldownMax     int `mapstructure:"contract_failure_cooldown_max"`

	WageAffordabilityPenalty float64 `mapstructure:"wage_affordability_penalty"`
	SignificantFigures       int     `mapstructure:"significant_figures"`
	CounterRatio             float64 `mapstructure:"counter_ratio"`
	MaxContractLength        int     `mapstructure:"max_contract_length"`

	RatingBand          int `mapstructure:"rating_band"`
	LowRatedThreshold   int `mapstructure:"low_rated_threshold"`
	LowRatedClubCeiling int `mapstructure:"low_rated_club_ceiling"`

	Seller BandTerms `mapstructure:"seller"`
	Buyer  BandTerms `mapstructure:"buyer"`
}

func DefaultRules() Rules {
	return Rules{
		MinSquadSize:   16,
		MaxSquadSize:   30,
		MinGoalkeepers: 2,
		MinOutfielders: 14,

		MessageTicks:       3,
		ReleaseClauseTicks: 2,

		BidInterestThreshold:   90,
		TransferListedInterest: 25,

		RejectionCooldownTicks:         5,
		CompletedTransferCooldownTicks: 7,
		SellerRejectionCooldownMin:     3,
		SellerRejectionCooldownMax:     7,
		ContractSuccessCooldownTicks:   7,
		ContractFailureCooldownMin:     3,
		ContractFailureCooldownMax:     7,

		WageAffordabilityPenalty: 0.75,
		SignificantFigures:       3,
		CounterRatio:             1.75,
		MaxContractLength:        5,

		RatingBand:          5,
		LowRatedThreshold:   60,
		LowRatedClubCeiling: 65,

		Seller: BandTerms{FloorDivisor: 1.25, YearsDivisor: 2, MinMultiplier: 1.0, MaxMultiplier: 2.0},
		Buyer:  BandTerms{FloorDivisor: 1.5, YearsDivisor: 3, MinMultiplier: 0.75, MaxMultiplier: 1.25},
	}
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.MinSquadSize < 1 || r.MaxSquadSize < r.MinSquadSize:
		return fmt.Errorf("%w: squad size range [%d, %d]", ErrInvalidRules, r.MinSquadSize, r.MaxSquadSize)
	case r.MinGoalkeepers < 0 || r.MinOutfielders < 0:
		return fmt.Errorf("%w: negative position minimum", ErrInvalidRules)
	case r.MinGoalkeepers+r.MinOutfielders > r.MaxSquadSize:
		return fmt.Errorf("%w: position minimums exceed max squad size", ErrInvalidRules)
	case r.MessageTicks < 1 || r.ReleaseClauseTicks < 1:
		return fmt.Errorf("%w: message ticks must be positive", ErrInvalidRules)
	case r.SellerRejectionCooldownMin > r.SellerRejectionCooldownMax:
		return fmt.Errorf("%w: seller rejection cooldown range", ErrInvalidRules)
	case r.ContractFailureCooldownMin > r.ContractFailureCooldownMax:
		return fmt.Errorf("%w: contract failure cooldown range", ErrInvalidRules)
	case r.SignificantFigures < 1 || r.SignificantFigures > maxSignificantFigures:
		return fmt.Errorf("%w: significant figures must be within [1, %d]", ErrInvalidRules, maxSignificantFigures)
	case r.CounterRatio < 1:
		return fmt.Errorf("%w: counter ratio below 1", ErrInvalidRules)
	case r.MaxContractLength < 1:
		return fmt.Errorf("%w: max contract length must be positive", ErrInvalidRules)
	}
	for name, b := range map[string]BandTerms{"seller": r.Seller, "buyer": r.Buyer} {
		if b.FloorDivisor <= 0 || b.YearsDivisor <= 0 || b.MinMultiplier <= 0 || b.MaxMultiplier < b.MinMultiplier {
			return fmt.Errorf("%w: %s band terms", ErrInvalidRules, name)
		}
	}
	return nil
}
