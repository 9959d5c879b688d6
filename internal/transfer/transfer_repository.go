package transfer

import (
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

// MarketRepository stores the market arena between requests.
type MarketRepository interface {
	IsEmpty() (bool, error)
	// LoadWorld rebuilds the arena and returns the managers as userID to clubID.
	LoadWorld() (*market.World, map[uint]uint, error)
	// SaveWorld writes the arena back. History records before historyFrom
	// are already stored.
	SaveWorld(world *market.World, historyFrom int) error
	AssignManager(clubID, userID uint) error
	GetHistory(page, limit int, filters map[string]interface{}) ([]TransferHistory, int64, error)
	WithTransaction(txFunc func(MarketRepository) error) error
}

type marketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) IsEmpty() (bool, error) {
	var count int64
	if err := r.db.Model(&SeasonState{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *marketRepository) LoadWorld() (*market.World, map[uint]uint, error) {
	var state SeasonState
	if err := r.db.First(&state, seasonStateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNoMarket
		}
		return nil, nil, err
	}
	world := market.NewWorld(state.CurrentYear)
	world.Cycle = state.Cycle

	var leagues []club.League
	if err := r.db.Order("id asc").Find(&leagues).Error; err != nil {
		return nil, nil, err
	}
	for i := range leagues {
		world.AddLeague(leagues[i].ToMarket())
	}

	var clubs []club.Club
	if err := r.db.Order("id asc").Find(&clubs).Error; err != nil {
		return nil, nil, err
	}
	managers := make(map[uint]uint)
	for i := range clubs {
		if err := world.AddClub(clubs[i].ToMarket()); err != nil {
			return nil, nil, err
		}
		if clubs[i].ManagerID != nil {
			managers[*clubs[i].ManagerID] = clubs[i].ID
		}
	}

	var players []club.Player
	if err := r.db.Order("id asc").Find(&players).Error; err != nil {
		return nil, nil, err
	}
	for i := range players {
		if err := world.AddPlayer(players[i].ToMarket()); err != nil {
			return nil, nil, err
		}
	}

	var messages []TransferMessage
	if err := r.db.Order("holder_club_id asc, position asc").Find(&messages).Error; err != nil {
		return nil, nil, err
	}
	for i := range messages {
		holder, err := world.Club(messages[i].HolderClubID)
		if err != nil {
			return nil, nil, fmt.Errorf("transfer message %s: %w", messages[i].PublicID, err)
		}
		holder.Enqueue(messages[i].ToMarket())
	}

	var cooldowns []NegotiationCooldown
	if err := r.db.Order("id asc").Find(&cooldowns).Error; err != nil {
		return nil, nil, err
	}
	for i := range cooldowns {
		c, err := cooldowns[i].ToMarket()
		if err != nil {
			return nil, nil, err
		}
		world.Cooldowns.Add(c)
	}

	var history []TransferHistory
	if err := r.db.Order("id asc").Find(&history).Error; err != nil {
		return nil, nil, err
	}
	for i := range history {
		world.History = append(world.History, history[i].ToMarket())
	}
	return world, managers, nil
}

func (r *marketRepository) SaveWorld(world *market.World, historyFrom int) error {
	leagues := make([]club.League, 0)
	for _, l := range world.Leagues() {
		leagues = append(leagues, club.LeagueFromMarket(l))
	}
	if len(leagues) > 0 {
		if err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "tier", "updated_at"}),
		}).CreateInBatches(&leagues, batchSize).Error; err != nil {
			return fmt.Errorf("saving leagues: %w", err)
		}
	}

	clubs := make([]club.Club, 0)
	var messages []TransferMessage
	for _, c := range world.Clubs() {
		clubs = append(clubs, club.ClubFromMarket(c))
		for pos, t := range c.Inbox {
			m, err := messageFromMarket(c.ID, pos, t)
			if err != nil {
				return err
			}
			messages = append(messages, m)
		}
	}
	// manager_id is owned by AssignManager and never overwritten here.
	if len(clubs) > 0 {
		if err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "league_id", "transfer_budget", "wage_budget", "messages", "updated_at"}),
		}).CreateInBatches(&clubs, batchSize).Error; err != nil {
			return fmt.Errorf("saving clubs: %w", err)
		}
	}

	players := make([]club.Player, 0)
	for _, p := range world.Players() {
		players = append(players, club.PlayerFromMarket(p))
	}
	if len(players) > 0 {
		if err := r.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "club_id", "position", "age", "overall", "potential", "value", "wage",
				"release_clause", "expiry_year", "transfer_listed", "transfers_blocked", "updated_at",
			}),
		}).CreateInBatches(&players, batchSize).Error; err != nil {
			return fmt.Errorf("saving players: %w", err)
		}
	}

	if err := r.db.Where("1 = 1").Delete(&TransferMessage{}).Error; err != nil {
		return err
	}
	if len(messages) > 0 {
		if err := r.db.CreateInBatches(&messages, batchSize).Error; err != nil {
			return fmt.Errorf("saving transfer messages: %w", err)
		}
	}

	if err := r.db.Where("1 = 1").Delete(&NegotiationCooldown{}).Error; err != nil {
		return err
	}
	var cooldowns []NegotiationCooldown
	for _, c := range world.Cooldowns.Entries() {
		cooldowns = append(cooldowns, cooldownFromMarket(c))
	}
	if len(cooldowns) > 0 {
		if err := r.db.CreateInBatches(&cooldowns, batchSize).Error; err != nil {
			return fmt.Errorf("saving cooldowns: %w", err)
		}
	}

	if historyFrom < 0 {
		historyFrom = 0
	}
	var history []TransferHistory
	for _, rec := range world.History[min(historyFrom, len(world.History)):] {
		history = append(history, historyFromMarket(rec))
	}
	if len(history) > 0 {
		if err := r.db.CreateInBatches(&history, batchSize).Error; err != nil {
			return fmt.Errorf("saving transfer history: %w", err)
		}
	}

	state := SeasonState{ID: seasonStateID, CurrentYear: world.CurrentYear, Cycle: world.Cycle}
	return r.db.Save(&state).Error
}

// AssignManager gives an unmanaged club to the user.
func (r *marketRepository) AssignManager(clubID, userID uint) error {
	res := r.db.Model(&club.Club{}).
		Where("id = ? AND manager_id IS NULL", clubID).
		Update("manager_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return club.ErrClubTaken
	}
	return nil
}

func (r *marketRepository) GetHistory(page, limit int, filters map[string]interface{}) ([]TransferHistory, int64, error) {
	var history []TransferHistory
	var total int64

	query := r.db.Model(&TransferHistory{})
	if playerID, ok := filters["player_id"]; ok {
		query = query.Where("player_id = ?", playerID)
	}
	if clubID, ok := filters["club_id"]; ok {
		query = query.Where("(seller_club_id = ? OR buyer_club_id = ?)", clubID, clubID)
	}
	if year, ok := filters["year"]; ok {
		query = query.Where("year = ?", year)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("id desc").Find(&history).Error; err != nil {
		return nil, 0, err
	}
	return history, total, nil
}

func (r *marketRepository) WithTransaction(txFunc func(MarketRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&marketRepository{db: tx})
	})
}
