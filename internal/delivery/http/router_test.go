package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"goonj/internal/adapters/auth"
	"goonj/internal/catalog"
	"goonj/internal/clock"
	"goonj/internal/delivery/http/controllers"
	"goonj/internal/domain"
	"goonj/internal/services"
)

const routerSecret = "router-secret"

var routerNow = time.Date(2025, 2, 15, 8, 4, 9, 0, time.UTC)

// memoryRepo is an in-memory domain.RegistrationRepository.
type memoryRepo struct {
	mu      sync.Mutex
	records []*domain.Registration
}

func (m *memoryRepo) Create(_ context.Context, reg *domain.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]*domain.Registration{reg}, m.records...)
	return nil
}

func (m *memoryRepo) GetByIdempotencyKey(context.Context, string) (*domain.Registration, error) {
	return nil, domain.ErrNotFound
}

func (m *memoryRepo) ListAll(context.Context) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Registration, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubAuthService struct {
	token string
}

func (s stubAuthService) CreateAdmin(context.Context, string, string, string) (*domain.Admin, error) {
	return nil, nil
}

func (s stubAuthService) Login(context.Context, string, string) (string, error) {
	return s.token, nil
}

func newTestRouter(t *testing.T) (http.Handler, *memoryRepo, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFixed(routerNow)
	repo := &memoryRepo{records: []*domain.Registration{{
		ID: "reg-1", Name: `A, "B"`, Email: "a@example.com", Phone: "9876543210", College: "NIT",
		Course: "B.Tech", Year: "1st Year", TotalAmount: 200, TransactionID: "UPIREF1",
		Events:    []domain.RegisteredEvent{{ID: "tech1", Name: "Code Wars", Price: 200, Type: "technical"}},
		CreatedAt: routerNow.Add(-time.Hour),
	}}}

	jwt := auth.NewJWT(routerSecret, "goonj", domain.RoleAdmin, clk)
	token, err := jwt.Issue("admin-1", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	cat := catalog.Default()
	mux := NewRouter(Controllers{
		Catalog:      controllers.NewCatalogController(logger, cat),
		Registration: controllers.NewRegistrationController(logger, services.NewRegistrationService(cat, nil, repo, nil, nil, nil, logger)),
		Admin:        controllers.NewAdminController(logger, services.NewAdminService(repo, time.Minute, clk, logger)),
		Auth:         controllers.NewAuthController(logger, stubAuthService{token: token}),
	}, jwt, logger)
	return mux, repo, token
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router, repo, _ := newTestRouter(t)
	foreign, err := auth.NewJWT("another-secret", "goonj", "", clock.NewFixed(routerNow)).
		Issue("admin-1", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	routes := []struct{ method, target string }{
		{http.MethodGet, "/admin/registrations"},
		{http.MethodGet, "/admin/registrations/export"},
		{http.MethodDelete, "/admin/registrations/reg-1"},
	}
	for _, rt := range routes {
		for name, token := range map[string]string{"no token": "", "foreign token": foreign} {
			t.Run(rt.method+" "+rt.target+" "+name, func(t *testing.T) {
				rec := serve(router, rt.method, rt.target, "", token)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "unauthorized", gjson.Get(rec.Body.String(), "error.code").String())
			})
		}
	}
	assert.Len(t, repo.records, 1)
}

func TestRouter_AdminRoutesWithToken(t *testing.T) {
	router, repo, token := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/admin/registrations?course=B.Tech", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "data.matched").Int())

	rec = serve(router, http.MethodGet, "/admin/registrations/export", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="registrations-20250215-080409.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"A, ""B""","a@example.com"`)

	rec = serve(router, http.MethodDelete, "/admin/registrations/missing", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodDelete, "/admin/registrations/reg-1", "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.records)

	rec = serve(router, http.MethodGet, "/admin/registrations", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "data.total").Int())
}

func TestRouter_PublicRoutes(t *testing.T) {
	router, _, token := newTestRouter(t)

	tests := []struct {
		method, target, body string
		wantStatus           int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/catalog", "", http.StatusOK},
		{http.MethodGet, "/catalog/technical", "", http.StatusOK},
		{http.MethodGet, "/catalog/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/registrations/options", "", http.StatusOK},
		{http.MethodPost, "/registrations/quote", `{"event_ids":["tech1"]}`, http.StatusOK},
		{http.MethodPost, "/admin/login", `{"email":"ops@example.com","password":"hunter22"}`, http.StatusOK},
		{http.MethodPost, "/payments/intents", `{"event_ids":["tech1"]}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(router, tt.method, tt.target, tt.body, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}

	rec := serve(router, http.MethodPost, "/admin/login", `{"email":"ops@example.com","password":"hunter22"}`, "")
	assert.Equal(t, token, gjson.Get(rec.Body.String(), "data.token").String())
}
