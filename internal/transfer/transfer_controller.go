package transfer

import (
	"errors"
	"log"
	"net/http"

	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/common"
	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/responses"
	"github.com/DhavalSuthar-24/transferhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransferController struct {
	service *MarketService
	repo    MarketRepository
}

func NewTransferController(service *MarketService, repo MarketRepository) *TransferController {
	return &TransferController{service: service, repo: repo}
}

var (
	notFoundErrors = []error{
		market.ErrUnknownClub, market.ErrUnknownPlayer, market.ErrUnknownLeague, market.ErrUnknownTransfer,
	}
	conflictErrors = []error{
		market.ErrCycleInProgress, market.ErrAlreadyNegotiating, market.ErrCooldownActive,
		market.ErrStaleTransfer, club.ErrClubTaken, club.ErrAlreadyManaging,
	}
	badRequestErrors = []error{
		market.ErrInvalidFee, market.ErrInvalidOffer, ErrInvalidSeason,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// sendMarketError maps engine and service errors to responses. Anything
// not listed is a business gate and reported as 422.
func sendMarketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, club.ErrNoClub):
		responses.Forbidden(c, "You do not manage a club")
	case isAny(err, notFoundErrors):
		responses.SendError(c, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		responses.Conflict(c, err.Error())
	case isAny(err, badRequestErrors):
		responses.BadRequest(c, err.Error())
	case isMarketGate(err):
		responses.Unprocessable(c, err.Error())
	default:
		log.Printf("Market operation failed: %v", err)
		responses.InternalServerError(c, "Market operation failed")
	}
}

func isMarketGate(err error) bool {
	return isAny(err, []error{
		market.ErrInvalidAction, market.ErrOwnPlayer, market.ErrNotOwner, market.ErrTransfersBlocked,
		market.ErrNotForSale, market.ErrInsufficientBudget, market.ErrInsufficientWageBudget,
		market.ErrSquadTooSmall, market.ErrSquadFull, market.ErrLeagueGap, market.ErrNoReleaseClause,
		market.ErrReleaseClauseBinding, market.ErrNoAgreedFee, market.ErrNoPendingCounter,
	})
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"code":    http.StatusBadRequest,
			"errors":  validator.ParseError(err),
		})
		return false
	}
	return true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	return userID, true
}

func transferIDParam(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("transfer_id"))
	if err != nil {
		responses.BadRequest(c, "Invalid transfer ID")
		return "", false
	}
	return id.String(), true
}

func transferRecords(in []market.Transfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(in))
	for i := range in {
		out = append(out, FilterTransferRecord(&in[i]))
	}
	return out
}

// GetMarketStatus godoc
// @Summary Market clock
// @Tags Market
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Current season and cycle"
// @Router /market/status [get]
func (tc *TransferController) GetMarketStatus(c *gin.Context) {
	year, cycle := tc.service.Status()
	responses.SendSuccess(c, http.StatusOK, "Market status retrieved successfully", gin.H{"year": year, "cycle": cycle})
}

// GetInbox godoc
// @Summary Transfer inbox
// @Description Messages waiting for the manager's club to answer, oldest first.
// @Tags Transfers
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TransferResponse}
// @Failure 403 {object} responses.ErrorResponse "User does not manage a club"
// @Security ApiKeyAuth
// @Router /me/club/inbox [get]
func (tc *TransferController) GetInbox(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	inbox, err := tc.service.Inbox(userID)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Inbox retrieved successfully", transferRecords(inbox))
}

// GetMessages godoc
// @Summary Club news
// @Tags Transfers
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]string}
// @Security ApiKeyAuth
// @Router /me/club/messages [get]
func (tc *TransferController) GetMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	messages, err := tc.service.Messages(userID)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Messages retrieved successfully", messages)
}

// ClearMessages godoc
// @Summary Clear club news
// @Tags Transfers
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /me/club/messages [delete]
func (tc *TransferController) ClearMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := tc.service.ClearMessages(userID); err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Messages cleared", nil)
}

// PlaceBid godoc
// @Summary Bid for a player
// @Tags Transfers
// @Accept json
// @Produce json
// @Param request body BidRequest true "Player and fee"
// @Success 201 {object} responses.SuccessResponse{data=TransferResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid request"
// @Failure 409 {object} responses.ErrorResponse "Already negotiating or player refuses"
// @Failure 422 {object} responses.ErrorResponse "Market rule refused the bid"
// @Security ApiKeyAuth
// @Router /transfers/bids [post]
func (tc *TransferController) PlaceBid(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req BidRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := tc.service.OpenBid(userID, req.PlayerID, req.Fee)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Bid submitted", FilterTransferRecord(&t))
}

// RespondToTransfer godoc
// @Summary Answer a transfer message
// @Description Accept, reject or counter a message in the manager's inbox. fee is required for counters.
// @Tags Transfers
// @Accept json
// @Produce json
// @Param transfer_id path string true "Transfer message ID"
// @Param request body RespondRequest true "Answer"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Message not found"
// @Failure 422 {object} responses.ErrorResponse "Answer not allowed"
// @Security ApiKeyAuth
// @Router /transfers/{transfer_id}/respond [post]
func (tc *TransferController) RespondToTransfer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	transferID, ok := transferIDParam(c)
	if !ok {
		return
	}
	var req RespondRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := tc.service.Respond(userID, transferID, req.Action, req.Fee); err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Response sent", gin.H{"transfer_id": transferID, "action": req.Action})
}

// DismissTransfer godoc
// @Summary Dismiss a rejected message
// @Tags Transfers
// @Produce json
// @Param transfer_id path string true "Transfer message ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Message not found"
// @Security ApiKeyAuth
// @Router /transfers/{transfer_id} [delete]
func (tc *TransferController) DismissTransfer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	transferID, ok := transferIDParam(c)
	if !ok {
		return
	}
	if err := tc.service.Dismiss(userID, transferID); err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Message dismissed", nil)
}

// ActivateReleaseClause godoc
// @Summary Pay a release clause
// @Tags Transfers
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 201 {object} responses.SuccessResponse{data=TransferResponse}
// @Failure 422 {object} responses.ErrorResponse "No clause or insufficient budget"
// @Security ApiKeyAuth
// @Router /players/{player_id}/release-clause [post]
func (tc *TransferController) ActivateReleaseClause(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	playerID, ok := common.ParseIDParam(c, "player_id", "player")
	if !ok {
		return
	}
	t, err := tc.service.ActivateReleaseClause(userID, playerID)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Release clause activated", FilterTransferRecord(&t))
}

// NegotiateContract godoc
// @Summary Offer a contract
// @Description Renew one of the club's players or sign a player whose fee has been agreed.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param player_id path int true "Player ID"
// @Param request body ContractRequest true "Contract terms"
// @Success 200 {object} responses.SuccessResponse{data=ContractResultResponse}
// @Failure 409 {object} responses.ErrorResponse "Player refuses to negotiate"
// @Failure 422 {object} responses.ErrorResponse "Offer not allowed"
// @Security ApiKeyAuth
// @Router /players/{player_id}/contract [post]
func (tc *TransferController) NegotiateContract(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	playerID, ok := common.ParseIDParam(c, "player_id", "player")
	if !ok {
		return
	}
	var req ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := tc.service.NegotiateContract(userID, playerID, req)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player responded", FilterContractResult(resp))
}

// ConcludeContract godoc
// @Summary Accept or walk away from a player's demands
// @Tags Contracts
// @Accept json
// @Produce json
// @Param player_id path int true "Player ID"
// @Param request body ConcludeRequest true "Decision"
// @Success 200 {object} responses.SuccessResponse{data=ContractResultResponse}
// @Failure 422 {object} responses.ErrorResponse "No pending demands"
// @Security ApiKeyAuth
// @Router /players/{player_id}/contract/conclude [post]
func (tc *TransferController) ConcludeContract(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	playerID, ok := common.ParseIDParam(c, "player_id", "player")
	if !ok {
		return
	}
	var req ConcludeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := tc.service.ConcludeContract(userID, playerID, *req.Accept)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Negotiation concluded", FilterContractResult(resp))
}

// SetTransferStatus godoc
// @Summary List or block a player
// @Tags Transfers
// @Accept json
// @Produce json
// @Param player_id path int true "Player ID"
// @Param request body TransferStatusRequest true "Status"
// @Success 200 {object} responses.SuccessResponse{data=club.PlayerResponse}
// @Failure 422 {object} responses.ErrorResponse "Player belongs to another club"
// @Security ApiKeyAuth
// @Router /players/{player_id}/transfer-status [put]
func (tc *TransferController) SetTransferStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	playerID, ok := common.ParseIDParam(c, "player_id", "player")
	if !ok {
		return
	}
	var req TransferStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := tc.service.SetTransferStatus(userID, playerID, req.Listed, req.Blocked)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Transfer status updated", club.FilterPlayerRecord(&p))
}

// GetHistory godoc
// @Summary Completed transfers
// @Tags Transfers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param player_id query int false "Filter by player"
// @Param club_id query int false "Filter by buying or selling club"
// @Param year query int false "Filter by season"
// @Success 200 {object} responses.PaginatedResponse{data=[]HistoryResponse}
// @Router /transfers/history [get]
func (tc *TransferController) GetHistory(c *gin.Context) {
	page, limit := common.GetPagination(c)
	filters := make(map[string]interface{})
	for _, key := range []string{"player_id", "club_id", "year"} {
		if v, ok := common.ParseOptionalUint(c, key); ok {
			filters[key] = v
		}
	}
	history, total, err := tc.repo.GetHistory(page, limit, filters)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve transfer history: "+err.Error())
		return
	}
	out := make([]HistoryResponse, 0, len(history))
	for i := range history {
		out = append(out, FilterHistoryRecord(&history[i]))
	}
	responses.SendPaginated(c, http.StatusOK, "Transfer history retrieved successfully", out, total, page, limit)
}

// AdvanceCycles godoc
// @Summary Run market cycles
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body AdvanceRequest true "Number of cycles"
// @Success 200 {object} responses.SuccessResponse{data=[]market.CycleReport}
// @Failure 403 {object} responses.ErrorResponse "Commissioner only"
// @Security ApiKeyAuth
// @Router /admin/market/cycles [post]
func (tc *TransferController) AdvanceCycles(c *gin.Context) {
	var req AdvanceRequest
	if !bindJSON(c, &req) {
		return
	}
	reports, err := tc.service.AdvanceCycles(req.Cycles)
	if err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Market advanced", reports)
}

// StartSeason godoc
// @Summary Start a new season
// @Description Moves the market to a later year. Open negotiations are dropped.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body SeasonRequest true "Season year"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Year not after the current season"
// @Security ApiKeyAuth
// @Router /admin/season [put]
func (tc *TransferController) StartSeason(c *gin.Context) {
	var req SeasonRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := tc.service.StartSeason(req.Year); err != nil {
		sendMarketError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Season started", gin.H{"year": req.Year})
}

// GetCooldowns godoc
// @Summary Active negotiation cooldowns
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]NegotiationCooldown}
// @Security ApiKeyAuth
// @Router /admin/cooldowns [get]
func (tc *TransferController) GetCooldowns(c *gin.Context) {
	entries := tc.service.Cooldowns()
	out := make([]NegotiationCooldown, 0, len(entries))
	for _, e := range entries {
		out = append(out, cooldownFromMarket(e))
	}
	responses.SendSuccess(c, http.StatusOK, "Cooldowns retrieved successfully", out)
}
