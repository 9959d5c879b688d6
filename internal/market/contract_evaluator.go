package market

import "math"

// AcceptTerms is returned by a sub-decision that takes the offered value.
const AcceptTerms = -1

const (
	shortContractWeight = 300
	longContractWeight  = 600
	wageDemandFactor    = 2.25
)

// ContractEvaluator answers contract offers on behalf of a player.
type ContractEvaluator struct {
	rules Rules
	rng   Random
}

func NewContractEvaluator(rules Rules, rng Random) *ContractEvaluator {
	return &ContractEvaluator{rules: rules, rng: rng}
}

// EvaluateLength returns AcceptTerms or the length the player asks for.
// Younger players weigh long deals more heavily.
func (e *ContractEvaluator) EvaluateLength(p *Player, offer ContractOffer, currentYear int) int {
	maxLength := e.rules.MaxContractLength
	remaining := p.YearsLeft(currentYear)
	multiplier := float64(e.rng.Int(100, 200))

	var weight int
	floor := 1
	if offer.Renewal {
		weight = int(float64(7-(remaining+offer.Length)) * multiplier / (float64(p.Age) / 20))
		floor = 0
	} else {
		weight = int(float64(7-offer.Length) * multiplier / (float64(p.Age) / 22))
	}

	requested := AcceptTerms
	switch {
	case weight <= shortContractWeight && offer.Length > floor:
		spread := 2
		if p.Age > 25 {
			spread = 3
		}
		requested = max(offer.Length-e.rng.Int(1, spread), floor)
	case weight >= longContractWeight && offer.Length < maxLength:
		spread := 2
		if p.Age < 23 {
			spread = 3
		}
		requested = min(offer.Length+e.rng.Int(1, spread), maxLength)
	}

	if offer.Renewal {
		effective := offer.Length
		if requested != AcceptTerms {
			effective = requested
		}
		if remaining+effective > maxLength {
			requested = max(maxLength-remaining, 0)
		}
	}
	if requested == offer.Length {
		return AcceptTerms
	}
	return requested
}

// MinimumWage samples the lowest wage the player signs for.
func (e *ContractEvaluator) MinimumWage(p *Player) int64 {
	hi := int64(math.Ceil(float64(p.Wage) * wageDemandFactor))
	return TruncateSF(randomMoney(e.rng, p.Wage, hi), e.rules.SignificantFigures)
}

// EvaluateWage returns the sampled minimum and either AcceptTerms or the
// counter demand.
func (e *ContractEvaluator) EvaluateWage(p *Player, offered int64) (int64, int64) {
	minimum := e.MinimumWage(p)
	if offered < minimum {
		return minimum, minimum
	}
	return minimum, AcceptTerms
}

// EvaluateReleaseClause returns AcceptTerms or the clause the player wants.
// Younger players are more likely to ask for one.
func (e *ContractEvaluator) EvaluateReleaseClause(p *Player, offered int64) int64 {
	if p.Age <= 0 {
		return AcceptTerms
	}
	threshold := 100 - (16/float64(p.Age))*55
	if e.rng.Float(0, 100) <= threshold {
		return AcceptTerms
	}
	hi := int64(math.Ceil(float64(p.Value) * 1.5))
	preferred := TruncateSF(randomMoney(e.rng, p.Value, hi), e.rules.SignificantFigures)
	if preferred <= p.ReleaseClause {
		preferred = p.ReleaseClause + preferred/2
	}
	if offered == 0 || offered > preferred {
		return preferred
	}
	return AcceptTerms
}

// Evaluate runs every sub-decision. A wage below half of the player's
// minimum ends talks outright.
func (e *ContractEvaluator) Evaluate(p *Player, offer ContractOffer, currentYear int) ContractResponse {
	length := e.EvaluateLength(p, offer, currentYear)
	minimumWage, wage := e.EvaluateWage(p, offer.Wage)
	clause := e.EvaluateReleaseClause(p, offer.ReleaseClause)

	resp := ContractResponse{
		Outcome:       ContractAccepted,
		Length:        offer.Length,
		Wage:          offer.Wage,
		ReleaseClause: offer.ReleaseClause,
	}
	if offer.Wage < minimumWage/2 {
		resp.Outcome = ContractRejected
		return resp
	}
	if length != AcceptTerms {
		resp.Outcome = ContractCountered
		resp.Length = length
	}
	if wage != AcceptTerms {
		resp.Outcome = ContractCountered
		resp.Wage = wage
	}
	if clause != AcceptTerms {
		resp.Outcome = ContractCountered
		resp.ReleaseClause = clause
	}
	return resp
}
