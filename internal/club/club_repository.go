package club

import (
	"errors"

	"gorm.io/gorm"
)

// ClubRepository is the read side of clubs and squads.
type ClubRepository interface {
	GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error)
	GetClubByID(id uint) (*Club, error)
	GetClubByManagerID(userID uint) (*Club, error)
	GetPlayersByClubID(clubID uint) ([]Player, error)
	GetAllLeagues() ([]League, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error) {
	var clubs []Club
	var total int64

	query := r.db.Model(&Club{}).Preload("League")
	if leagueID, ok := filters["league_id"]; ok {
		query = query.Where("league_id = ?", leagueID)
	}
	if name, ok := filters["name"]; ok {
		query = query.Where("name ILIKE ?", "%"+name.(string)+"%")
	}
	if managed, ok := filters["managed"]; ok {
		if managed.(bool) {
			query = query.Where("manager_id IS NOT NULL")
		} else {
			query = query.Where("manager_id IS NULL")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("id asc").Find(&clubs).Error; err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

func (r *clubRepository) GetClubByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.Preload("League").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) GetClubByManagerID(userID uint) (*Club, error) {
	var c Club
	if err := r.db.Preload("League").Where("manager_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) GetPlayersByClubID(clubID uint) ([]Player, error) {
	var players []Player
	if err := r.db.Where("club_id = ?", clubID).Order("position asc, overall desc, id asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *clubRepository) GetAllLeagues() ([]League, error) {
	var leagues []League
	if err := r.db.Order("tier asc, id asc").Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}
