package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/internal/carpool"
	"github.com/clubmate-app/clubmate-backend/internal/notifications"
	pkgAuth "github.com/clubmate-app/clubmate-backend/pkg/auth"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCarpoolService struct {
	getRequestFn func(ctx context.Context, requestID uuid.UUID) (*carpool.RequestDetail, error)
}

func (s stubCarpoolService) CreateRequest(ctx context.Context, input carpool.CreateRequestInput) (*models.TransportRequest, error) {
	return &models.TransportRequest{}, nil
}

func (s stubCarpoolService) GetRequest(ctx context.Context, requestID uuid.UUID) (*carpool.RequestDetail, error) {
	if s.getRequestFn != nil {
		return s.getRequestFn(ctx, requestID)
	}
	return &carpool.RequestDetail{}, nil
}

func (s stubCarpoolService) ListRequestsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.TransportRequest, error) {
	return nil, nil
}

func (s stubCarpoolService) Propose(ctx context.Context, input carpool.ProposeInput) (*models.TransportProposal, error) {
	return &models.TransportProposal{}, nil
}

func (s stubCarpoolService) UpdateProposal(ctx context.Context, input carpool.UpdateProposalInput) (*models.TransportProposal, error) {
	return &models.TransportProposal{}, nil
}

func (s stubCarpoolService) DeleteProposal(ctx context.Context, input carpool.DeleteProposalInput) error {
	return nil
}

func (s stubCarpoolService) AcceptProposal(ctx context.Context, input carpool.AcceptProposalInput) (*carpool.RequestDetail, error) {
	return &carpool.RequestDetail{}, nil
}

func (s stubCarpoolService) Sign(ctx context.Context, input carpool.SignInput) (*carpool.RequestDetail, error) {
	return &carpool.RequestDetail{}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "clubmate",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config, carpoolService carpool.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil,
		carpoolService,
		stubNotificationsService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), stubCarpoolService{})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Clubmate-Env") != "test" {
		t.Fatal("expected env header on health response")
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig(), stubCarpoolService{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicPing(t *testing.T) {
	router := newTestRouter(testConfig(), stubCarpoolService{})
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubCarpoolService{})
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubCarpoolService{})
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleGuardian))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestCarpoolRequestDetailRoute(t *testing.T) {
	cfg := testConfig()
	requestID := uuid.New()
	var seenID uuid.UUID
	svc := stubCarpoolService{
		getRequestFn: func(ctx context.Context, id uuid.UUID) (*carpool.RequestDetail, error) {
			seenID = id
			return &carpool.RequestDetail{
				Request: models.TransportRequest{ID: id, Status: enums.TransportRequestStatusPending},
			}, nil
		},
	}
	router := newTestRouter(cfg, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carpool/requests/"+requestID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleGuardian))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if seenID != requestID {
		t.Fatalf("expected request %s forwarded got %s", requestID, seenID)
	}
	var envelope struct {
		Data carpool.RequestDetail `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Request.ID != requestID {
		t.Fatal("expected request in envelope")
	}
}

func TestCarpoolRoutesRequireJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubCarpoolService{})
	targets := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/carpool/requests/" + uuid.NewString()},
		{http.MethodGet, "/api/v1/carpool/requests?eventId=" + uuid.NewString()},
		{http.MethodGet, "/api/v1/notifications/"},
	}
	for _, target := range targets {
		req := httptest.NewRequest(target.method, target.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", target.method, target.path, resp.Code)
		}
	}
}
