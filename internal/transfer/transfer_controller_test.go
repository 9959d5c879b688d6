package transfer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/token"
	"github.com/DhavalSuthar-24/transferhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

const testSecret = "transfer-test-secret"

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) (*apiClient, *MarketService, *memoryRepo) {
	t.Helper()
	if err := validator.RegisterMarketValidations(); err != nil {
		t.Fatal(err)
	}
	gin.SetMode(gin.TestMode)
	svc, repo := newTestService(t)
	r := gin.New()
	registerRoutes(r.Group("/api"), NewTransferController(svc, repo), middleware.AuthMiddleware(testSecret, nil))
	return &apiClient{t: t, router: r}, svc, repo
}

func (a *apiClient) do(method, path string, userID uint, role string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		tok, err := token.GenerateJWT(userID, role, testSecret, 5)
		if err != nil {
			a.t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding %s: %v", w.Body.String(), err)
	}
	if err := json.Unmarshal(body.Data, v); err != nil {
		t.Fatalf("decoding data %s: %v", body.Data, err)
	}
}

func TestPlaceBidEndpoint(t *testing.T) {
	api, svc, _ := newAPI(t)
	mustClaim(t, svc, 7, 1)

	tests := []struct {
		name   string
		userID uint
		role   string
		body   interface{}
		want   int
	}{
		{"no token", 0, "", BidRequest{PlayerID: 205, Fee: 900_000}, http.StatusUnauthorized},
		{"commissioner", 7, "commissioner", BidRequest{PlayerID: 205, Fee: 900_000}, http.StatusForbidden},
		{"no club", 9, "manager", BidRequest{PlayerID: 205, Fee: 900_000}, http.StatusForbidden},
		{"missing fee", 7, "manager", gin.H{"player_id": 205}, http.StatusBadRequest},
		{"unknown player", 7, "manager", BidRequest{PlayerID: 999, Fee: 900_000}, http.StatusNotFound},
		{"own player", 7, "manager", BidRequest{PlayerID: 105, Fee: 900_000}, http.StatusUnprocessableEntity},
		{"over budget", 7, "manager", BidRequest{PlayerID: 205, Fee: 90_000_000}, http.StatusUnprocessableEntity},
		{"placed", 7, "manager", BidRequest{PlayerID: 205, Fee: 900_000}, http.StatusCreated},
		{"already negotiating", 7, "manager", BidRequest{PlayerID: 205, Fee: 900_000}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/api/transfers/bids", tt.userID, tt.role, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusCreated {
				var got TransferResponse
				decodeData(t, w, &got)
				if got.Status != "bid" || got.FeeDisplay != "$900,000" || got.SellingClubID != 2 {
					t.Fatalf("unexpected transfer %+v", got)
				}
			}
		})
	}
}

func TestRespondEndpoints(t *testing.T) {
	api, svc, _ := newAPI(t)
	mustClaim(t, svc, 7, 1)
	mustClaim(t, svc, 8, 2)

	if w := api.do(http.MethodPost, "/api/transfers/bids", 7, "manager", BidRequest{PlayerID: 205, Fee: 900_000}); w.Code != http.StatusCreated {
		t.Fatalf("bid: %d %s", w.Code, w.Body.String())
	}

	w := api.do(http.MethodGet, "/api/me/club/inbox", 8, "manager", nil)
	var inbox []TransferResponse
	decodeData(t, w, &inbox)
	if len(inbox) != 1 {
		t.Fatalf("seller inbox = %+v", inbox)
	}
	id := inbox[0].ID

	if w := api.do(http.MethodPost, "/api/transfers/not-a-uuid/respond", 8, "manager", RespondRequest{Action: "accept"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/transfers/"+id+"/respond", 8, "manager", RespondRequest{Action: "haggle"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad action: %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/transfers/"+id+"/respond", 7, "manager", RespondRequest{Action: "accept"}); w.Code != http.StatusNotFound {
		t.Fatalf("answering another club's message: %d", w.Code)
	}
	if w := api.do(http.MethodDelete, "/api/transfers/"+id, 8, "manager", nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("dismissing an open bid: %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/transfers/"+id+"/respond", 8, "manager", RespondRequest{Action: "reject"}); w.Code != http.StatusOK {
		t.Fatalf("reject: %d %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodGet, "/api/me/club/inbox", 7, "manager", nil)
	decodeData(t, w, &inbox)
	if len(inbox) != 1 || inbox[0].Status != "rejected" {
		t.Fatalf("buyer inbox = %+v", inbox)
	}
	if w := api.do(http.MethodDelete, "/api/transfers/"+inbox[0].ID, 7, "manager", nil); w.Code != http.StatusOK {
		t.Fatalf("dismiss: %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/transfers/bids", 7, "manager", BidRequest{PlayerID: 205, Fee: 950_000}); w.Code != http.StatusConflict {
		t.Fatalf("bid during cooldown: %d", w.Code)
	}

	var messages []string
	decodeData(t, api.do(http.MethodGet, "/api/me/club/messages", 7, "manager", nil), &messages)
	if len(messages) == 0 {
		t.Fatal("no news for the buyer")
	}
	if w := api.do(http.MethodDelete, "/api/me/club/messages", 7, "manager", nil); w.Code != http.StatusOK {
		t.Fatalf("clear messages: %d", w.Code)
	}
}

func TestContractEndpointsGates(t *testing.T) {
	api, svc, _ := newAPI(t)
	mustClaim(t, svc, 7, 1)

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"no agreed fee", "/api/players/205/contract", ContractRequest{Length: 3, Wage: 20_000}, http.StatusUnprocessableEntity},
		{"zero length", "/api/players/105/contract", gin.H{"length": 0, "wage": 20_000}, http.StatusBadRequest},
		{"bad player id", "/api/players/abc/contract", ContractRequest{Length: 3, Wage: 20_000}, http.StatusBadRequest},
		{"no counter", "/api/players/105/contract/conclude", gin.H{"accept": true}, http.StatusUnprocessableEntity},
		{"missing decision", "/api/players/105/contract/conclude", gin.H{}, http.StatusBadRequest},
		{"no clause", "/api/players/205/release-clause", nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, tt.path, 7, "manager", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestReleaseClauseEndpoint(t *testing.T) {
	api, svc, _ := newAPI(t)
	mustClaim(t, svc, 7, 1)
	p, _ := svc.engine.World().Player(206)
	p.ReleaseClause = 5_000_000

	w := api.do(http.MethodPost, "/api/players/206/release-clause", 7, "manager", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var got TransferResponse
	decodeData(t, w, &got)
	if got.Status != "release_clause" || got.Fee != 5_000_000 || !got.ActivatedReleaseClause {
		t.Fatalf("unexpected transfer %+v", got)
	}
}

func TestSetTransferStatusEndpoint(t *testing.T) {
	api, svc, repo := newAPI(t)
	mustClaim(t, svc, 7, 1)

	w := api.do(http.MethodPut, "/api/players/105/transfer-status", 7, "manager", TransferStatusRequest{Listed: true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	stored, _ := repo.snapshot.Player(105)
	if !stored.TransferListed {
		t.Fatal("listing not saved")
	}
	if w := api.do(http.MethodPut, "/api/players/205/transfer-status", 7, "manager", TransferStatusRequest{Blocked: true}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("another club's player: %d", w.Code)
	}
}

func TestAdminEndpoints(t *testing.T) {
	api, _, repo := newAPI(t)

	if w := api.do(http.MethodPost, "/api/admin/market/cycles", 7, "manager", AdvanceRequest{Cycles: 1}); w.Code != http.StatusForbidden {
		t.Fatalf("manager advancing the market: %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/admin/market/cycles", 1, "commissioner", AdvanceRequest{Cycles: 500}); w.Code != http.StatusBadRequest {
		t.Fatalf("too many cycles: %d", w.Code)
	}

	w := api.do(http.MethodPost, "/api/admin/market/cycles", 1, "commissioner", AdvanceRequest{Cycles: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("advance: %d %s", w.Code, w.Body.String())
	}
	var reports []struct {
		Cycle int `json:"cycle"`
	}
	decodeData(t, w, &reports)
	if len(reports) != 2 || reports[1].Cycle != 2 || repo.snapshot.Cycle != 2 {
		t.Fatalf("reports = %+v, stored cycle %d", reports, repo.snapshot.Cycle)
	}

	if w := api.do(http.MethodPut, "/api/admin/season", 1, "commissioner", SeasonRequest{Year: 2023}); w.Code != http.StatusBadRequest {
		t.Fatalf("earlier season: %d", w.Code)
	}
	if w := api.do(http.MethodPut, "/api/admin/season", 1, "commissioner", SeasonRequest{Year: 2025}); w.Code != http.StatusOK {
		t.Fatalf("season: %d", w.Code)
	}
	if w := api.do(http.MethodGet, "/api/admin/cooldowns", 1, "commissioner", nil); w.Code != http.StatusOK {
		t.Fatalf("cooldowns: %d", w.Code)
	}

	var status struct {
		Year  int `json:"year"`
		Cycle int `json:"cycle"`
	}
	decodeData(t, api.do(http.MethodGet, "/api/market/status", 0, "", nil), &status)
	if status.Year != 2025 || status.Cycle != 2 {
		t.Fatalf("status = %+v", status)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	api, _, repo := newAPI(t)
	for i := 0; i < 12; i++ {
		seller, buyer := uint(2), uint(3)
		if i%2 == 0 {
			seller, buyer = 3, 1
		}
		repo.history = append(repo.history, TransferHistory{
			ID: uint(i + 1), PlayerID: uint(200 + i), SellerClubID: seller, BuyerClubID: buyer, Fee: 1_250_000, Year: 2024,
		})
	}

	w := api.do(http.MethodGet, "/api/transfers/history?limit=5", 0, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var page []HistoryResponse
	decodeData(t, w, &page)
	if len(page) != 5 || page[0].ID != 12 || page[0].FeeDisplay != "$1,250,000" {
		t.Fatalf("page = %+v", page)
	}

	decodeData(t, api.do(http.MethodGet, "/api/transfers/history?club_id=1&limit=100", 0, "", nil), &page)
	if len(page) != 6 {
		t.Fatalf("club filter returned %d rows, want 6", len(page))
	}
}
