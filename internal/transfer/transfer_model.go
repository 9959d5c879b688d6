package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNoMarket is returned by LoadWorld before the market has been seeded.
	ErrNoMarket      = errors.New("no market state stored")
	ErrInvalidSeason = errors.New("invalid season")
)

// TransferMessage is one inbox entry. HolderClubID is the club that must
// answer next; Position keeps the inbox arrival order.
type TransferMessage struct {
	ID                     uint      `json:"-" gorm:"primaryKey"`
	PublicID               uuid.UUID `json:"id" gorm:"type:uuid;uniqueIndex;not null"`
	HolderClubID           uint      `json:"holder_club_id" gorm:"index;not null"`
	Position               int       `json:"position"`
	BiddingClubID          uint      `json:"bidding_club_id"`
	SellingClubID          uint      `json:"selling_club_id"`
	PlayerID               uint      `json:"player_id" gorm:"index"`
	Fee                    int64     `json:"fee"`
	ExpirationTicks        int       `json:"expiration_ticks"`
	CounterOffer           bool      `json:"counter_offer"`
	RejectedOffer          bool      `json:"rejected_offer"`
	FeeAgreed              bool      `json:"fee_agreed"`
	ActivatedReleaseClause bool      `json:"activated_release_clause"`
	models.BaseModel
}

type NegotiationCooldown struct {
	ID             uint   `json:"-" gorm:"primaryKey"`
	PlayerID       uint   `json:"player_id" gorm:"index"`
	ClubID         uint   `json:"club_id"`
	Kind           string `json:"kind" gorm:"size:16"`
	TicksRemaining int    `json:"ticks_remaining"`
}

type TransferHistory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PlayerID     uint      `json:"player_id" gorm:"index"`
	SellerClubID uint      `json:"seller_club_id" gorm:"index"`
	BuyerClubID  uint      `json:"buyer_club_id" gorm:"index"`
	Fee          int64     `json:"fee"`
	Year         int       `json:"year" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}

// SeasonState is a single row holding the market clock.
type SeasonState struct {
	ID          uint `gorm:"primaryKey;autoIncrement:false"`
	CurrentYear int
	Cycle       int
	UpdatedAt   time.Time
}

const seasonStateID = 1

func messageFromMarket(holderID uint, position int, t *market.Transfer) (TransferMessage, error) {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return TransferMessage{}, fmt.Errorf("transfer message %q: %w", t.ID, err)
	}
	return TransferMessage{
		PublicID:               id,
		HolderClubID:           holderID,
		Position:               position,
		BiddingClubID:          t.BiddingClubID,
		SellingClubID:          t.SellingClubID,
		PlayerID:               t.PlayerID,
		Fee:                    t.Fee,
		ExpirationTicks:        t.ExpirationTicks,
		CounterOffer:           t.CounterOffer,
		RejectedOffer:          t.RejectedOffer,
		FeeAgreed:              t.FeeAgreed,
		ActivatedReleaseClause: t.ActivatedReleaseClause,
	}, nil
}

func (m *TransferMessage) ToMarket() *market.Transfer {
	return &market.Transfer{
		ID:                     m.PublicID.String(),
		BiddingClubID:          m.BiddingClubID,
		SellingClubID:          m.SellingClubID,
		PlayerID:               m.PlayerID,
		Fee:                    m.Fee,
		ExpirationTicks:        m.ExpirationTicks,
		CounterOffer:           m.CounterOffer,
		RejectedOffer:          m.RejectedOffer,
		FeeAgreed:              m.FeeAgreed,
		ActivatedReleaseClause: m.ActivatedReleaseClause,
	}
}

func cooldownFromMarket(c market.NegotiationCooldown) NegotiationCooldown {
	return NegotiationCooldown{
		PlayerID:       c.PlayerID,
		ClubID:         c.ClubID,
		Kind:           c.Kind.String(),
		TicksRemaining: c.TicksRemaining,
	}
}

func (c *NegotiationCooldown) ToMarket() (market.NegotiationCooldown, error) {
	kind, err := parseCooldownKind(c.Kind)
	if err != nil {
		return market.NegotiationCooldown{}, err
	}
	return market.NegotiationCooldown{
		PlayerID:       c.PlayerID,
		ClubID:         c.ClubID,
		Kind:           kind,
		TicksRemaining: c.TicksRemaining,
	}, nil
}

func parseCooldownKind(s string) (market.CooldownKind, error) {
	switch s {
	case market.TransferNegotiating.String():
		return market.TransferNegotiating, nil
	case market.ContractNegotiating.String():
		return market.ContractNegotiating, nil
	}
	return 0, fmt.Errorf("unknown cooldown kind %q", s)
}

func historyFromMarket(r market.TransferHistoryRecord) TransferHistory {
	return TransferHistory{
		PlayerID:     r.PlayerID,
		SellerClubID: r.SellerClubID,
		BuyerClubID:  r.BuyerClubID,
		Fee:          r.Fee,
		Year:         r.Year,
	}
}

func (h *TransferHistory) ToMarket() market.TransferHistoryRecord {
	return market.TransferHistoryRecord{
		PlayerID:     h.PlayerID,
		SellerClubID: h.SellerClubID,
		BuyerClubID:  h.BuyerClubID,
		Fee:          h.Fee,
		Year:         h.Year,
	}
}

// Requests

type BidRequest struct {
	PlayerID uint  `json:"player_id" binding:"required"`
	Fee      int64 `json:"fee" binding:"required,gt=0"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required,transfer_action"`
	Fee    int64  `json:"fee" binding:"omitempty,gt=0"`
}

type ContractRequest struct {
	Length        int   `json:"length" binding:"gte=0"`
	Wage          int64 `json:"wage" binding:"required,gt=0"`
	ReleaseClause int64 `json:"release_clause" binding:"omitempty,gte=0"`
	Renewal       bool  `json:"renewal"`
}

type ConcludeRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type TransferStatusRequest struct {
	Listed  bool `json:"listed"`
	Blocked bool `json:"blocked"`
}

type AdvanceRequest struct {
	Cycles int `json:"cycles" binding:"required,min=1,max=100"`
}

type SeasonRequest struct {
	Year int `json:"year" binding:"required,min=1900,max=3000"`
}

// Responses

type TransferResponse struct {
	ID                     string `json:"id"`
	BiddingClubID          uint   `json:"bidding_club_id"`
	SellingClubID          uint   `json:"selling_club_id"`
	PlayerID               uint   `json:"player_id"`
	Fee                    int64  `json:"fee"`
	FeeDisplay             string `json:"fee_display"`
	ExpirationTicks        int    `json:"expiration_ticks"`
	Status                 string `json:"status"`
	ActivatedReleaseClause bool   `json:"activated_release_clause"`
}

type ContractResultResponse struct {
	Outcome              string `json:"outcome"`
	Length               int    `json:"length"`
	Wage                 int64  `json:"wage"`
	WageDisplay          string `json:"wage_display"`
	ReleaseClause        int64  `json:"release_clause"`
	ReleaseClauseDisplay string `json:"release_clause_display"`
}

type HistoryResponse struct {
	ID           uint      `json:"id"`
	PlayerID     uint      `json:"player_id"`
	SellerClubID uint      `json:"seller_club_id"`
	BuyerClubID  uint      `json:"buyer_club_id"`
	Fee          int64     `json:"fee"`
	FeeDisplay   string    `json:"fee_display"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
}

func FilterTransferRecord(t *market.Transfer) TransferResponse {
	return TransferResponse{
		ID:                     t.ID,
		BiddingClubID:          t.BiddingClubID,
		SellingClubID:          t.SellingClubID,
		PlayerID:               t.PlayerID,
		Fee:                    t.Fee,
		FeeDisplay:             market.FormatCash(t.Fee),
		ExpirationTicks:        t.ExpirationTicks,
		Status:                 t.Status(),
		ActivatedReleaseClause: t.ActivatedReleaseClause,
	}
}

func FilterContractResult(r market.ContractResponse) ContractResultResponse {
	return ContractResultResponse{
		Outcome:              r.Outcome.String(),
		Length:               r.Length,
		Wage:                 r.Wage,
		WageDisplay:          market.FormatCash(r.Wage),
		ReleaseClause:        r.ReleaseClause,
		ReleaseClauseDisplay: market.FormatCash(r.ReleaseClause),
	}
}

func FilterHistoryRecord(h *TransferHistory) HistoryResponse {
	return HistoryResponse{
		ID:           h.ID,
		PlayerID:     h.PlayerID,
		SellerClubID: h.SellerClubID,
		BuyerClubID:  h.BuyerClubID,
		Fee:          h.Fee,
		FeeDisplay:   market.FormatCash(h.Fee),
		Year:         h.Year,
		CreatedAt:    h.CreatedAt,
	}
}
