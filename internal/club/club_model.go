package club

import (
	"errors"

	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/models"
)

var (
	ErrClubTaken       = errors.New("club already has a manager")
	ErrAlreadyManaging = errors.New("user already manages a club")
	ErrNoClub          = errors.New("user does not manage a club")
)

// League, Club and Player rows keep the ids assigned in the market arena.
type League struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"not null"`
	Tier int    `json:"tier" gorm:"not null;index"`
	models.BaseModel
}

type Club struct {
	ID             uint               `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name           string             `json:"name" gorm:"not null"`
	LeagueID       uint               `json:"league_id" gorm:"index"`
	League         *League            `json:"league,omitempty" gorm:"foreignKey:LeagueID"`
	TransferBudget int64              `json:"transfer_budget"`
	WageBudget     int64              `json:"wage_budget"`
	ManagerID      *uint              `json:"manager_id,omitempty" gorm:"uniqueIndex"`
	Messages       models.StringSlice `json:"-" gorm:"type:jsonb;default:'[]'"`
	models.BaseModel
}

type Player struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name             string `json:"name" gorm:"not null"`
	ClubID           uint   `json:"club_id" gorm:"index"`
	Position         int    `json:"position"`
	Age              int    `json:"age"`
	Overall          int    `json:"overall"`
	Potential        int    `json:"potential"`
	Value            int64  `json:"value"`
	Wage             int64  `json:"wage"`
	ReleaseClause    int64  `json:"release_clause"`
	ExpiryYear       int    `json:"expiry_year"`
	TransferListed   bool   `json:"transfer_listed"`
	TransfersBlocked bool   `json:"transfers_blocked"`
	models.BaseModel
}

var positionNames = []string{"GK", "DEF", "MID", "ATT"}

func PositionName(position int) string {
	if position < 0 || position >= len(positionNames) {
		return "UNK"
	}
	return positionNames[position]
}

func (l *League) ToMarket() *market.League {
	return &market.League{ID: l.ID, Name: l.Name, Tier: l.Tier}
}

func LeagueFromMarket(l *market.League) League {
	return League{ID: l.ID, Name: l.Name, Tier: l.Tier}
}

// ToMarket converts the row; a club with a manager is human controlled.
func (c *Club) ToMarket() *market.Club {
	return &market.Club{
		ID:              c.ID,
		Name:            c.Name,
		LeagueID:        c.LeagueID,
		TransferBudget:  c.TransferBudget,
		WageBudget:      c.WageBudget,
		HumanControlled: c.ManagerID != nil,
		Messages:        append([]string(nil), c.Messages...),
	}
}

// ClubFromMarket converts an arena club. The manager is not part of the
// arena and is left unset.
func ClubFromMarket(c *market.Club) Club {
	return Club{
		ID:             c.ID,
		Name:           c.Name,
		LeagueID:       c.LeagueID,
		TransferBudget: c.TransferBudget,
		WageBudget:     c.WageBudget,
		Messages:       models.StringSlice(append([]string{}, c.Messages...)),
	}
}

func (p *Player) ToMarket() *market.Player {
	return &market.Player{
		ID:               p.ID,
		Name:             p.Name,
		ClubID:           p.ClubID,
		Position:         p.Position,
		Age:              p.Age,
		Overall:          p.Overall,
		Potential:        p.Potential,
		Value:            p.Value,
		Wage:             p.Wage,
		ReleaseClause:    p.ReleaseClause,
		ExpiryYear:       p.ExpiryYear,
		TransferListed:   p.TransferListed,
		TransfersBlocked: p.TransfersBlocked,
	}
}

func PlayerFromMarket(p *market.Player) Player {
	return Player{
		ID:               p.ID,
		Name:             p.Name,
		ClubID:           p.ClubID,
		Position:         p.Position,
		Age:              p.Age,
		Overall:          p.Overall,
		Potential:        p.Potential,
		Value:            p.Value,
		Wage:             p.Wage,
		ReleaseClause:    p.ReleaseClause,
		ExpiryYear:       p.ExpiryYear,
		TransferListed:   p.TransferListed,
		TransfersBlocked: p.TransfersBlocked,
	}
}

type ClubResponse struct {
	ID                    uint   `json:"id"`
	Name                  string `json:"name"`
	LeagueID              uint   `json:"league_id"`
	LeagueName            string `json:"league_name,omitempty"`
	Tier                  int    `json:"tier,omitempty"`
	TransferBudget        int64  `json:"transfer_budget"`
	TransferBudgetDisplay string `json:"transfer_budget_display"`
	WageBudget            int64  `json:"wage_budget"`
	WageBudgetDisplay     string `json:"wage_budget_display"`
	Managed               bool   `json:"managed"`
}

type PlayerResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	ClubID               uint   `json:"club_id"`
	Position             string `json:"position"`
	Age                  int    `json:"age"`
	Overall              int    `json:"overall"`
	Potential            int    `json:"potential"`
	Value                int64  `json:"value"`
	ValueDisplay         string `json:"value_display"`
	Wage                 int64  `json:"wage"`
	WageDisplay          string `json:"wage_display"`
	ReleaseClause        int64  `json:"release_clause,omitempty"`
	ReleaseClauseDisplay string `json:"release_clause_display,omitempty"`
	ExpiryYear           int    `json:"expiry_year"`
	TransferListed       bool   `json:"transfer_listed"`
	TransfersBlocked     bool   `json:"transfers_blocked"`
}

func FilterClubRecord(c *Club) ClubResponse {
	resp := ClubResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		LeagueID:              c.LeagueID,
		TransferBudget:        c.TransferBudget,
		TransferBudgetDisplay: market.FormatCash(c.TransferBudget),
		WageBudget:            c.WageBudget,
		WageBudgetDisplay:     market.FormatCash(c.WageBudget),
		Managed:               c.ManagerID != nil,
	}
	if c.League != nil {
		resp.LeagueName = c.League.Name
		resp.Tier = c.League.Tier
	}
	return resp
}

func FilterPlayerRecord(p *market.Player) PlayerResponse {
	resp := PlayerResponse{
		ID:               p.ID,
		Name:             p.Name,
		ClubID:           p.ClubID,
		Position:         PositionName(p.Position),
		Age:              p.Age,
		Overall:          p.Overall,
		Potential:        p.Potential,
		Value:            p.Value,
		ValueDisplay:     market.FormatCash(p.Value),
		Wage:             p.Wage,
		WageDisplay:      market.FormatCash(p.Wage),
		ExpiryYear:       p.ExpiryYear,
		TransferListed:   p.TransferListed,
		TransfersBlocked: p.TransfersBlocked,
	}
	if p.ReleaseClause > 0 {
		resp.ReleaseClause = p.ReleaseClause
		resp.ReleaseClauseDisplay = market.FormatCash(p.ReleaseClause)
	}
	return resp
}
