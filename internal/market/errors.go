package market

import "errors"

// Lookup errors. These indicate malformed input from the caller and are
// never retried.
var (
	ErrUnknownClub     = errors.New("unknown club")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrUnknownLeague   = errors.New("unknown league")
	ErrUnknownTransfer = errors.New("unknown transfer message")
)

// Negotiation gates.
var (
	ErrCycleInProgress        = errors.New("market cycle in progress")
	ErrInvalidRules           = errors.New("invalid market rules")
	ErrInvalidFee             = errors.New("fee must be positive")
	ErrInvalidOffer           = errors.New("invalid contract offer")
	ErrInvalidAction          = errors.New("action not allowed for this message")
	ErrOwnPlayer              = errors.New("player already belongs to this club")
	ErrNotOwner               = errors.New("player does not belong to this club")
	ErrTransfersBlocked       = errors.New("transfers are blocked for this player")
	ErrAlreadyNegotiating     = errors.New("club is already negotiating for this player")
	ErrCooldownActive         = errors.New("player refuses to negotiate at the moment")
	ErrNotForSale             = errors.New("player is not for sale")
	ErrInsufficientBudget     = errors.New("insufficient transfer budget")
	ErrInsufficientWageBudget = errors.New("insufficient wage budget")
	ErrSquadTooSmall          = errors.New("selling club cannot go below the minimum squad size")
	ErrSquadFull              = errors.New("buying club squad is full")
	ErrLeagueGap              = errors.New("player will not drop that many divisions")
	ErrNoReleaseClause        = errors.New("player has no release clause")
	ErrReleaseClauseBinding   = errors.New("an activated release clause can only be accepted")
	ErrNoAgreedFee            = errors.New("no agreed fee for this player")
	ErrNoPendingCounter       = errors.New("no pending contract counter for this player")
	ErrStaleTransfer          = errors.New("transfer message is no longer valid")
)
