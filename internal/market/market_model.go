package market

import "fmt"

// GoalkeeperPosition is the only position that counts towards the
// goalkeeper minimum; every other position is an outfielder.
const GoalkeeperPosition = 0

// AllClubs is the club id used by cooldowns that apply against every club.
const AllClubs uint = 0

type Player struct {
	ID               uint
	Name             string
	ClubID           uint
	Position         int
	Age              int
	Overall          int
	Potential        int
	Value            int64
	Wage             int64
	ReleaseClause    int64
	ExpiryYear       int
	TransferListed   bool
	TransfersBlocked bool
}

func (p *Player) IsGoalkeeper() bool {
	return p.Position == GoalkeeperPosition
}

// YearsLeft returns the whole years remaining on the contract, never negative.
func (p *Player) YearsLeft(currentYear int) int {
	if years := p.ExpiryYear - currentYear; years > 0 {
		return years
	}
	return 0
}

type League struct {
	ID   uint
	Name string
	Tier int
}

// Club is a roster plus the two inboxes. Inbox holds negotiation messages
// waiting for this club's response, in arrival order. Messages holds
// informational text shown to human managers.
type Club struct {
	ID              uint
	Name            string
	LeagueID        uint
	TransferBudget  int64
	WageBudget      int64
	HumanControlled bool
	Inbox           []*Transfer
	Messages        []string

	roster []uint
}

// PlayerIDs returns a copy of the roster ids.
func (c *Club) PlayerIDs() []uint {
	out := make([]uint, len(c.roster))
	copy(out, c.roster)
	return out
}

func (c *Club) SquadSize() int {
	return len(c.roster)
}

// Transfer is a directional negotiation message. It lives in the inbox of
// the club that must respond next.
type Transfer struct {
	ID                     string
	BiddingClubID          uint
	SellingClubID          uint
	PlayerID               uint
	Fee                    int64
	ExpirationTicks        int
	CounterOffer           bool
	RejectedOffer          bool
	FeeAgreed              bool
	ActivatedReleaseClause bool
}

// Status names the message state for clients.
func (t *Transfer) Status() string {
	switch {
	case t.ActivatedReleaseClause:
		return "release_clause"
	case t.FeeAgreed:
		return "fee_agreed"
	case t.RejectedOffer:
		return "rejected"
	case t.CounterOffer:
		return "counter_offer"
	default:
		return "bid"
	}
}

// Active reports whether the message still represents an open negotiation.
func (t *Transfer) Active() bool {
	return !t.RejectedOffer && t.ExpirationTicks > 0
}

type CooldownKind int

const (
	TransferNegotiating CooldownKind = iota
	ContractNegotiating
)

func (k CooldownKind) String() string {
	switch k {
	case TransferNegotiating:
		return "transfer"
	case ContractNegotiating:
		return "contract"
	default:
		return fmt.Sprintf("CooldownKind(%d)", int(k))
	}
}

// NegotiationCooldown blocks new negotiations for a player. ClubID AllClubs
// makes it apply to every club.
type NegotiationCooldown struct {
	PlayerID       uint
	ClubID         uint
	Kind           CooldownKind
	TicksRemaining int
}

type TransferHistoryRecord struct {
	PlayerID     uint
	SellerClubID uint
	BuyerClubID  uint
	Fee          int64
	Year         int
}

// ContractOffer is a proposal made by a club to one player. Renewal offers
// extend the current contract by Length years.
type ContractOffer struct {
	PlayerID      uint
	ClubID        uint
	Length        int
	Wage          int64
	ReleaseClause int64
	Renewal       bool
}

type ContractOutcome int

const (
	ContractAccepted ContractOutcome = iota
	ContractCountered
	ContractRejected
)

func (o ContractOutcome) String() string {
	switch o {
	case ContractAccepted:
		return "accepted"
	case ContractCountered:
		return "countered"
	case ContractRejected:
		return "rejected"
	default:
		return fmt.Sprintf("ContractOutcome(%d)", int(o))
	}
}

// ContractResponse carries the player's answer. For a counter the terms are
// the player's demands; accepted sub-decisions keep the offered value.
type ContractResponse struct {
	Outcome       ContractOutcome
	Length        int
	Wage          int64
	ReleaseClause int64
}
