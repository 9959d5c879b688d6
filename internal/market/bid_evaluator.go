package market

import (
	"fmt"
	"math"
)

type Decision int

const (
	Accept Decision = iota
	Counter
	Reject
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Counter:
		return "counter"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// BidEvaluation is the answer to a fee. Fee is the fee to send back: the
// proposal itself on Accept, the counter amount on Counter, zero on Reject.
type BidEvaluation struct {
	Decision Decision
	Fee      int64
}

// BidEvaluator prices players for both sides of a deal. The seller side
// guards a minimum; the buyer side guards a maximum.
type BidEvaluator struct {
	rules Rules
	rng   Random
}

func NewBidEvaluator(rules Rules, rng Random) *BidEvaluator {
	return &BidEvaluator{rules: rules, rng: rng}
}

func (e *BidEvaluator) band(p *Player, currentYear int, terms BandTerms) (int64, int64) {
	value := float64(p.Value)
	multiplier := float64(p.YearsLeft(currentYear)) / terms.YearsDivisor
	multiplier = math.Max(terms.MinMultiplier, math.Min(terms.MaxMultiplier, multiplier))

	lo := int64(math.Floor(value / terms.FloorDivisor))
	hi := int64(math.Ceil(value * multiplier))
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// SellerBand is the range the selling club samples its minimum from.
func (e *BidEvaluator) SellerBand(p *Player, currentYear int) (int64, int64) {
	return e.band(p, currentYear, e.rules.Seller)
}

// BuyerBand is the range a buying club samples its maximum from.
func (e *BidEvaluator) BuyerBand(p *Player, currentYear int) (int64, int64) {
	return e.band(p, currentYear, e.rules.Buyer)
}

// SampleSellerPrice draws a rounded price from the seller band.
func (e *BidEvaluator) SampleSellerPrice(p *Player, currentYear int) int64 {
	lo, hi := e.SellerBand(p, currentYear)
	return TruncateSF(randomMoney(e.rng, lo, hi), e.rules.SignificantFigures)
}

// MinimumAcceptable is the lowest fee the owner takes. A release clause
// below the sampled price replaces it.
func (e *BidEvaluator) MinimumAcceptable(p *Player, currentYear int) int64 {
	minimum := e.SampleSellerPrice(p, currentYear)
	if p.ReleaseClause > 0 && p.ReleaseClause < minimum {
		minimum = p.ReleaseClause
	}
	return minimum
}

// EvaluateBid judges an incoming fee from the seller's side.
func (e *BidEvaluator) EvaluateBid(p *Player, currentYear int, fee int64) BidEvaluation {
	minimum := e.MinimumAcceptable(p, currentYear)
	switch {
	case fee >= minimum:
		return BidEvaluation{Decision: Accept, Fee: fee}
	case float64(fee) >= float64(minimum)/e.rules.CounterRatio:
		return BidEvaluation{Decision: Counter, Fee: minimum}
	default:
		return BidEvaluation{Decision: Reject}
	}
}

// MaximumPayable is the most the buyer will spend on the player, never more
// than its transfer budget.
func (e *BidEvaluator) MaximumPayable(buyer *Club, p *Player, currentYear int) int64 {
	lo, hi := e.BuyerBand(p, currentYear)
	maximum := TruncateSF(randomMoney(e.rng, lo, hi), e.rules.SignificantFigures)
	if maximum > buyer.TransferBudget {
		maximum = TruncateSF(buyer.TransferBudget, e.rules.SignificantFigures)
	}
	return maximum
}

// EvaluateAsk judges a seller's asking price from the buyer's side.
func (e *BidEvaluator) EvaluateAsk(buyer *Club, p *Player, currentYear int, ask int64) BidEvaluation {
	maximum := e.MaximumPayable(buyer, p, currentYear)
	switch {
	case maximum <= 0:
		return BidEvaluation{Decision: Reject}
	case ask <= maximum:
		return BidEvaluation{Decision: Accept, Fee: ask}
	case float64(ask) <= float64(maximum)*e.rules.CounterRatio:
		return BidEvaluation{Decision: Counter, Fee: maximum}
	default:
		return BidEvaluation{Decision: Reject}
	}
}
