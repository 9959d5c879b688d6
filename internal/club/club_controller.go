package club

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/transferhub/internal/common"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MarketGateway hands clubs to managers inside the running market.
type MarketGateway interface {
	ClaimClub(userID, clubID uint) error
}

type ClubController struct {
	repo   ClubRepository
	market MarketGateway
}

func NewClubController(repo ClubRepository, gateway MarketGateway) *ClubController {
	return &ClubController{repo: repo, market: gateway}
}

// GetLeagues godoc
// @Summary List leagues
// @Description Lists every league ordered by tier, top division first.
// @Tags Clubs
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]League}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /leagues [get]
func (cc *ClubController) GetLeagues(c *gin.Context) {
	leagues, err := cc.repo.GetAllLeagues()
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve leagues: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Leagues retrieved successfully", leagues)
}

// GetAllClubs godoc
// @Summary List clubs
// @Description Lists clubs with optional league, name and managed filters.
// @Tags Clubs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param league_id query int false "Filter by league"
// @Param name query string false "Filter by name (partial match)"
// @Param managed query bool false "Only clubs with (true) or without (false) a manager"
// @Success 200 {object} responses.PaginatedResponse{data=[]ClubResponse}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (cc *ClubController) GetAllClubs(c *gin.Context) {
	page, limit := common.GetPagination(c)

	filters := make(map[string]interface{})
	if leagueID, ok := common.ParseOptionalUint(c, "league_id"); ok {
		filters["league_id"] = leagueID
	}
	if name := c.Query("name"); name != "" {
		filters["name"] = name
	}
	if managed, err := strconv.ParseBool(c.Query("managed")); err == nil {
		filters["managed"] = managed
	}

	clubs, total, err := cc.repo.GetAllClubs(page, limit, filters)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve clubs: "+err.Error())
		return
	}
	out := make([]ClubResponse, 0, len(clubs))
	for i := range clubs {
		out = append(out, FilterClubRecord(&clubs[i]))
	}
	responses.SendPaginated(c, http.StatusOK, "Clubs retrieved successfully", out, total, page, limit)
}

// GetClubByID godoc
// @Summary Get a club
// @Tags Clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=ClubResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid club ID"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id} [get]
func (cc *ClubController) GetClubByID(c *gin.Context) {
	clubID, ok := common.ParseIDParam(c, "club_id", "club")
	if !ok {
		return
	}
	club, err := cc.repo.GetClubByID(clubID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve club: "+err.Error())
		return
	}
	if club == nil {
		responses.NotFound(c, "Club")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club retrieved successfully", FilterClubRecord(club))
}

// GetClubPlayers godoc
// @Summary Get a club's squad
// @Tags Clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=[]PlayerResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid club ID"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/players [get]
func (cc *ClubController) GetClubPlayers(c *gin.Context) {
	clubID, ok := common.ParseIDParam(c, "club_id", "club")
	if !ok {
		return
	}
	club, err := cc.repo.GetClubByID(clubID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve club: "+err.Error())
		return
	}
	if club == nil {
		responses.NotFound(c, "Club")
		return
	}
	players, err := cc.repo.GetPlayersByClubID(clubID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve players: "+err.Error())
		return
	}
	out := make([]PlayerResponse, 0, len(players))
	for i := range players {
		out = append(out, FilterPlayerRecord(players[i].ToMarket()))
	}
	responses.SendSuccess(c, http.StatusOK, "Squad retrieved successfully", out)
}

// ClaimClub godoc
// @Summary Take charge of a club
// @Description Hands an AI club to the authenticated manager. A manager runs one club at a time.
// @Tags Clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse "Club claimed"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Failure 409 {object} responses.ErrorResponse "Club already managed or manager already has a club"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/claim [post]
func (cc *ClubController) ClaimClub(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, ok := common.ParseIDParam(c, "club_id", "club")
	if !ok {
		return
	}

	switch err := cc.market.ClaimClub(userID, clubID); {
	case err == nil:
		responses.SendSuccess(c, http.StatusOK, "Club claimed successfully", gin.H{"club_id": clubID})
	case errors.Is(err, market.ErrUnknownClub):
		responses.NotFound(c, "Club")
	case errors.Is(err, ErrClubTaken), errors.Is(err, ErrAlreadyManaging):
		responses.Conflict(c, err.Error())
	case errors.Is(err, market.ErrCycleInProgress):
		responses.Conflict(c, err.Error())
	default:
		log.Printf("claim club %d for user %d: %v", clubID, userID, err)
		responses.InternalServerError(c, "Failed to claim club")
	}
}
