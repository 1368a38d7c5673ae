package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mecanica_hub/internal/adapter/persistence/memory"
	"mecanica_hub/internal/config"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "routes-secret"

type capturePublisher struct {
	mu     sync.Mutex
	events []entities.LifecycleEvent
}

func (p *capturePublisher) Publish(_ context.Context, ev entities.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) types() []entities.LifecycleEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []entities.LifecycleEventType
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	pub    *capturePublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.SeedUser(entities.User{ID: "client-1", Name: "Ana", Email: "ana@example.com", Role: entities.RoleClient})
	store.SeedUser(entities.User{ID: "mech-1", Name: "Beto", Email: "beto@example.com", Role: entities.RoleMechanic})
	store.SeedServiceType(entities.ServiceType{ID: "oil", Name: "Cambio de aceite"})

	pub := &capturePublisher{}
	cfg := config.Config{JWTSecret: testSecret}
	h := NewHandlers(MemoryBackend(store), pub, nil, usecase.PaymentOptions{Mock: true}, zap.NewNop())
	return &testServer{t: t, router: NewRouter(cfg, zap.NewNop(), h), pub: pub}
}

func (s *testServer) token(userID string, role entities.Role) string {
	s.t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func (s *testServer) doList(path, token string) (int, []map[string]any) {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestRouter_PublicRoutes(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodGet, "/v1/ping", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	code, body = s.do(http.MethodGet, "/v1/service-requests/mine", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestRouter_ServiceRequestLifecycle(t *testing.T) {
	s := newTestServer(t)
	client := s.token("client-1", entities.RoleClient)
	mechanic := s.token("mech-1", entities.RoleMechanic)
	admin := s.token("admin-1", entities.RoleAdmin)

	scheduled := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	code, created := s.do(http.MethodPost, "/v1/service-requests", client,
		`{"service_type_id":"oil","description":"Cambio de aceite","address":"Calle 1","scheduled_at":"`+scheduled+`"}`)
	require.Equal(t, http.StatusCreated, code, created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "PENDIENTE", created["status"])
	assert.Regexp(t, `^MH-\d{8}-[0-9A-Z]{6}$`, created["case_number"])

	code, _ = s.do(http.MethodPost, "/v1/service-requests", mechanic, `{}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, available := s.doList("/v1/service-requests/available?service_type_id=oil", mechanic)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, available, 1)
	assert.Equal(t, id, available[0]["id"])

	code, _ = s.doList("/v1/service-requests/available", client)
	assert.Equal(t, http.StatusForbidden, code)

	code, assigned := s.do(http.MethodPost, "/v1/service-requests/"+id+"/assign", mechanic, "")
	require.Equal(t, http.StatusOK, code, assigned)
	assert.Equal(t, "ACEPTADO", assigned["status"])
	assert.Equal(t, "mech-1", assigned["mechanic_id"])

	code, body := s.do(http.MethodPatch, "/v1/service-requests/"+id+"/status", client, `{"status":"EN_CAMINO"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])

	code, transitions := s.do(http.MethodGet, "/v1/service-requests/"+id+"/transitions", mechanic, "")
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []any{"EN_CAMINO", "CANCELADO"}, transitions["transitions"])

	for _, next := range []string{"EN_CAMINO", "EN_PROCESO"} {
		code, body = s.do(http.MethodPatch, "/v1/service-requests/"+id+"/status", mechanic, `{"status":"`+next+`"}`)
		require.Equal(t, http.StatusOK, code, body)
	}

	code, body = s.do(http.MethodPatch, "/v1/service-requests/"+id+"/quote", mechanic, `{"price":150,"notes":"Aceite sintético"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, 150.0, body["price"])

	code, body = s.do(http.MethodPost, "/v1/service-requests/"+id+"/payments", client, `{}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SERVICE_NOT_PAYABLE", body["code"])

	code, body = s.do(http.MethodPatch, "/v1/service-requests/"+id+"/status", mechanic, `{"status":"FINALIZADO"}`)
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.do(http.MethodPatch, "/v1/service-requests/"+id+"/status", admin, `{"status":"CANCELADO"}`)
	assert.Equal(t, http.StatusConflict, code, "terminal statuses are sinks")

	code, paid := s.do(http.MethodPost, "/v1/service-requests/"+id+"/payments", client, `{"payment_method_id":"pix"}`)
	require.Equal(t, http.StatusCreated, code, paid)
	assert.Equal(t, "aprobado", paid["status"])
	assert.Equal(t, 150.0, paid["amount"])

	code, body = s.do(http.MethodPost, "/v1/service-requests/"+id+"/payments", client, `{}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SERVICE_ALREADY_PAID", body["code"])

	code, history := s.doList("/v1/service-requests/"+id+"/history", client)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, history, 4)
	assert.Equal(t, "PENDIENTE", history[0]["previous_status"])
	assert.Equal(t, "FINALIZADO", history[3]["new_status"])

	code, payments := s.doList("/v1/service-requests/"+id+"/payments", mechanic)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, payments, 1)

	code, _ = s.do(http.MethodGet, "/v1/service-requests/"+id, s.token("client-2", entities.RoleClient), "")
	assert.Equal(t, http.StatusForbidden, code)

	assert.Equal(t, []entities.LifecycleEventType{
		entities.EventCreated,
		entities.EventAssigned,
		entities.EventStatusChanged,
		entities.EventStatusChanged,
		entities.EventQuoteUpdated,
		entities.EventStatusChanged,
	}, s.pub.types())
}

func TestRouter_MechanicBusy(t *testing.T) {
	s := newTestServer(t)
	client := s.token("client-1", entities.RoleClient)
	mechanic := s.token("mech-1", entities.RoleMechanic)
	scheduled := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)

	var ids []string
	for i := 0; i < 2; i++ {
		code, created := s.do(http.MethodPost, "/v1/service-requests", client,
			`{"service_type_id":"oil","description":"d","address":"a","scheduled_at":"`+scheduled+`"}`)
		require.Equal(t, http.StatusCreated, code)
		ids = append(ids, created["id"].(string))
	}

	code, _ := s.do(http.MethodPost, "/v1/service-requests/"+ids[0]+"/assign", mechanic, "")
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(http.MethodPost, "/v1/service-requests/"+ids[1]+"/assign", mechanic, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "MECHANIC_BUSY", body["code"])

	code, _ = s.do(http.MethodPatch, "/v1/service-requests/"+ids[0]+"/status", mechanic, `{"status":"CANCELADO"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/v1/service-requests/"+ids[1]+"/assign", mechanic, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestWire_UnknownStorageDriver(t *testing.T) {
	_, err := wire(context.Background(), config.Config{StorageDriver: "postgres"}, zap.NewNop())
	assert.Error(t, err)
}

func TestWire_MemoryWithLocalDispatcher(t *testing.T) {
	app, err := wire(context.Background(), config.Config{
		StorageDriver:   config.StorageMemory,
		NotifyWorkers:   1,
		NotifyQueueSize: 4,
		Payments:        config.PaymentsConfig{Mock: true},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, app.handlers.ServiceRequests)
	assert.NotNil(t, app.handlers.Payments)
	assert.Len(t, app.closers, 1)
	app.close()
}

func TestRun_RefusesDefaultSecretOutsideMemory(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageDynamoDB, JWTSecret: config.DefaultJWTSecret}
	err := Run(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrDefaultJWTSecret)
}
