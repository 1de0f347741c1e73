package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"wedding-registry-go/internal/auth"
	"wedding-registry-go/internal/config"
	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/internal/metrics"
	"wedding-registry-go/internal/ratelimit"
	"wedding-registry-go/internal/repository/inmemory"
	"wedding-registry-go/internal/transport/httpserver/handler"
	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
	guestbookhandler "wedding-registry-go/internal/transport/httpserver/handler/guestbook"
	guestshandler "wedding-registry-go/internal/transport/httpserver/handler/guests"
	"wedding-registry-go/pkg/logger"
)

type failingPinger struct{}

func (failingPinger) Health(context.Context) error { return errors.New("connection refused") }

type RouterSuite struct {
	suite.Suite
	router   http.Handler
	guests   *guestsdomain.Service
	registry *prometheus.Registry
	pingers  map[string]commonhandler.Pinger
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.pingers = map[string]commonhandler.Pinger{}
	s.router = s.buildRouter()

	_, err := s.guests.ImportDirectory(context.Background(), []guestsdomain.ImportEntry{
		{Name: "Ann Wilson", FamilyGroup: "wilson_ann", Side: "bride"},
		{Name: "John Wilson", FamilyGroup: "wilson_ann", Side: "bride"},
		{Name: "John Kane", FamilyGroup: "kane_wendy", Side: "groom"},
		{Name: "Beatrice Billcliff", Side: "bride"},
	}, false)
	s.Require().NoError(err)
}

func (s *RouterSuite) buildRouter() http.Handler {
	log := logger.NewNop()
	cfg := config.Config{
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RateLimit:          config.RateLimitConfig{AuthAttempts: 5, AuthWindow: 15 * time.Minute},
	}

	credentials, err := auth.NewCredentials("Forever", "ring", bcrypt.MinCost)
	s.Require().NoError(err)
	sessions := auth.NewSessions("test-secret", "wedding-registry", time.Hour, time.Hour)

	s.registry = prometheus.NewRegistry()
	m := metrics.New(s.registry)

	next := 0
	s.guests = guestsdomain.NewService(inmemory.NewGuestsRepository(),
		guestsdomain.WithCache(inmemory.NewDirectoryCache(), time.Minute),
		guestsdomain.WithRecorder(m),
		guestsdomain.WithLogger(log),
		guestsdomain.WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("g-%d", next)
		}),
	)
	guestbook := guestbookdomain.NewService(inmemory.NewGuestbookRepository())

	handlers := handler.New(
		commonhandler.New(credentials, sessions, s.pingers, log),
		guestshandler.New(s.guests, log),
		guestbookhandler.New(guestbook, log),
	)
	return NewRouter(cfg, handlers, sessions, ratelimit.NewMemoryStore(), s.registry, m, log)
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) login(path string, body any) string {
	rec := s.do(http.MethodPost, path, "", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var session auth.Session
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &session))
	return session.Token
}

func (s *RouterSuite) guestToken() string {
	return s.login("/api/auth/guest", map[string]string{"password": "forever"})
}

func (s *RouterSuite) adminToken() string {
	return s.login("/api/auth/admin", map[string]string{"code": "RING"})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *RouterSuite) TestHealthReportsFailingDependency() {
	s.pingers["redis"] = failingPinger{}

	rec := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.JSONEq(`{"status":"degraded","checks":{"redis":"unavailable"}}`, rec.Body.String())
}

func (s *RouterSuite) TestLoginRejectsWrongSecrets() {
	rec := s.do(http.MethodPost, "/api/auth/guest", "", map[string]string{"password": "nope"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("invalid_password", decode[errorEnvelope](s.T(), rec).Error.Code)

	rec = s.do(http.MethodPost, "/api/auth/admin", "", map[string]string{"code": "nope"})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/guest", "", map[string]string{"pass": "forever"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid_json", decode[errorEnvelope](s.T(), rec).Error.Code)
}

func (s *RouterSuite) TestGuestRoutesRequireSession() {
	rec := s.do(http.MethodPost, "/api/guest-list/lookup", "", map[string]string{"name": "Ann Wilson"})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/guest-list/lookup", "garbage", map[string]string{"name": "Ann Wilson"})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestAdminRoutesRejectGuestRole() {
	rec := s.do(http.MethodGet, "/api/admin/guest-list", s.guestToken(), nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestAdminSatisfiesGuestRoutes() {
	rec := s.do(http.MethodPost, "/api/guest-list/lookup", s.adminToken(), map[string]string{"name": "Ann Wilson"})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestStatsArePublic() {
	rec := s.do(http.MethodGet, "/api/guest-list/stats", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(4, decode[guestsdomain.Stats](s.T(), rec).TotalInvited)
}

func (s *RouterSuite) TestSignInIsRateLimitedPerAddress() {
	signIn := func(path, remoteAddr string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		rec := signIn("/api/auth/guest", "203.0.113.7:40000", map[string]string{"password": "guess"})
		s.Require().Equal(http.StatusUnauthorized, rec.Code)
	}
	rec := signIn("/api/auth/admin", "203.0.113.7:40001", map[string]string{"code": "guess"})
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	rec = signIn("/api/auth/admin", "203.0.113.7:40002", map[string]string{"code": "guess"})
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = signIn("/api/auth/guest", "203.0.113.7:40003", map[string]string{"password": "forever"})
	s.Require().Equal(http.StatusTooManyRequests, rec.Code)
	s.NotEmpty(rec.Header().Get("Retry-After"))
	envelope := decode[errorEnvelope](s.T(), rec)
	s.Equal("rate_limited", envelope.Error.Code)
	s.Contains(envelope.Error.Message, "try again")

	rec = signIn("/api/auth/guest", "198.51.100.9:40000", map[string]string{"password": "forever"})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestLookupReturnsFamily() {
	rec := s.do(http.MethodPost, "/api/guest-list/lookup", s.guestToken(), map[string]string{"name": "  ANN wilson "})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Guest struct {
			ID          string `json:"id"`
			FamilyGroup string `json:"family_group"`
		} `json:"guest"`
		FamilyMembers []struct {
			Name string `json:"name"`
		} `json:"family_members"`
		CanRSVPForFamily bool `json:"can_rsvp_for_family"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("g-1", body.Guest.ID)
	s.Equal("wilson_ann", body.Guest.FamilyGroup)
	s.True(body.CanRSVPForFamily)
	s.Require().Len(body.FamilyMembers, 2)
	s.Equal("John Wilson", body.FamilyMembers[1].Name)
}

func (s *RouterSuite) TestLookupValidation() {
	token := s.guestToken()

	rec := s.do(http.MethodPost, "/api/guest-list/lookup", token, map[string]string{"name": " a "})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Please enter your name", decode[errorEnvelope](s.T(), rec).Error.Message)

	rec = s.do(http.MethodPost, "/api/guest-list/lookup", token, map[string]string{"name": "Zed Nobody"})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(decode[errorEnvelope](s.T(), rec).Error.Message, "check spelling")
}

func (s *RouterSuite) TestSubmitRSVPForFamilyAndCheck() {
	token := s.guestToken()

	rec := s.do(http.MethodPost, "/api/guest-list/rsvp", token, map[string]any{
		"guest_id":  "g-1",
		"attending": "yes",
		"family_rsvps": []map[string]any{
			{"guest_id": "g-2", "attending": "no"},
			{"guest_id": "g-3", "attending": "yes"},
		},
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Guest struct {
			ID string `json:"id"`
		} `json:"guest"`
		Family []struct {
			ID string `json:"id"`
		} `json:"family"`
		Skipped int `json:"skipped"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("g-1", body.Guest.ID)
	s.Require().Len(body.Family, 1)
	s.Equal("g-2", body.Family[0].ID)
	s.Equal(1, body.Skipped)

	rec = s.do(http.MethodGet, "/api/guest-list/check-rsvp/g-2", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"rsvp_response":"no"`)
	s.Contains(rec.Body.String(), `"rsvp_by":"Ann Wilson"`)

	rec = s.do(http.MethodGet, "/api/guest-list/check-rsvp/g-3", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"has_rsvped":false`)

	rec = s.do(http.MethodGet, "/api/guest-list/stats", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	stats := decode[guestsdomain.Stats](s.T(), rec)
	s.Equal(4, stats.TotalInvited)
	s.Equal(2, stats.TotalRSVPed)
	s.Equal(1, stats.Attending)
	s.Equal(1, stats.NotAttending)
	s.Equal(50, stats.PercentRSVPed)
}

func (s *RouterSuite) TestSubmitRSVPValidation() {
	token := s.guestToken()

	rec := s.do(http.MethodPost, "/api/guest-list/rsvp", token, map[string]any{"guest_id": "g-1"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/guest-list/rsvp", token, map[string]any{"guest_id": "g-1", "attending": "perhaps"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid_response", decode[errorEnvelope](s.T(), rec).Error.Code)

	rec = s.do(http.MethodPost, "/api/guest-list/rsvp", token, map[string]any{"guest_id": "g-99", "attending": "yes"})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(decode[errorEnvelope](s.T(), rec).Error.Message, "look up your name again")
}

func (s *RouterSuite) TestCheckRSVPUnknownGuest() {
	rec := s.do(http.MethodGet, "/api/guest-list/check-rsvp/g-404", s.guestToken(), nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestAdminImportDryRunAndReplace() {
	token := s.adminToken()
	payload := map[string]any{"guests": []map[string]string{
		{"name": "Tyrone O'Bery", "family_group": "obery", "side": "groom"},
		{"name": "Jenny Taylor", "side": "bride"},
	}}

	rec := s.do(http.MethodPost, "/api/admin/guest-list/import?dry_run=true", token, payload)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"dry_run":true`)

	rec = s.do(http.MethodGet, "/api/admin/guest-list", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Ann Wilson")

	rec = s.do(http.MethodPost, "/api/admin/guest-list/import", token, payload)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"total_guests":2`)

	rec = s.do(http.MethodGet, "/api/admin/guest-list", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "Ann Wilson")
	s.Contains(rec.Body.String(), "Jenny Taylor")
}

func (s *RouterSuite) TestAdminImportRejectsOversizedBody() {
	payload := map[string]any{"guests": []map[string]string{
		{"name": strings.Repeat("a", 1<<20), "side": "bride"},
	}}

	rec := s.do(http.MethodPost, "/api/admin/guest-list/import", s.adminToken(), payload)
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Equal("payload_too_large", decode[errorEnvelope](s.T(), rec).Error.Code)
}

func (s *RouterSuite) TestAdminImportRejectsBadRow() {
	rec := s.do(http.MethodPost, "/api/admin/guest-list/import", s.adminToken(), map[string]any{"guests": []map[string]string{
		{"name": "Jenny Taylor", "side": "aunt"},
	}})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid_guest_row", decode[errorEnvelope](s.T(), rec).Error.Code)
}

func (s *RouterSuite) TestAdminReportAndStats() {
	token := s.adminToken()

	rec := s.do(http.MethodGet, "/api/admin/guest-list/report", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	report := decode[guestsdomain.GroupingReport](s.T(), rec)
	s.Equal(4, report.Summary.TotalGuests)
	s.Equal(3, report.Summary.FamilyGroups)

	rec = s.do(http.MethodGet, "/api/admin/stats", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total_invited":4`)
}

func (s *RouterSuite) TestGuestbookFlow() {
	guest := s.guestToken()

	rec := s.do(http.MethodPost, "/api/guestbook", guest, map[string]string{"name": "Ann", "message": " Congratulations! "})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	entry := decode[guestbookdomain.Entry](s.T(), rec)
	s.Equal("Congratulations!", entry.Message)

	rec = s.do(http.MethodPost, "/api/guestbook", guest, map[string]string{"name": "Ann"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/guestbook/"+entry.ID, guest, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/guestbook/"+entry.ID, s.adminToken(), nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/guestbook", guest, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"items":[]}`, rec.Body.String())
}

func (s *RouterSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/guest-list/lookup", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.do(http.MethodPost, "/api/guest-list/lookup", s.guestToken(), map[string]string{"name": "Ann Wilson"})

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(s.T(), strings.Contains(body, `wedding_guest_lookups_total{outcome="exact"} 1`), body)
	assert.True(s.T(), strings.Contains(body, `route="/api/guest-list/lookup"`), body)
}
