package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mecanica_hub/internal/adapter/http/handlers/mocks"
	"mecanica_hub/internal/adapter/http/middleware"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func withActor(id string, role entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, id, role)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body["code"]
}

func sampleDetails(status entities.ServiceStatus) entities.ServiceRequestDetails {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	return entities.ServiceRequestDetails{
		ServiceRequest: entities.ServiceRequest{
			ID:            "sr-1",
			CaseNumber:    "MH-20260504-ABC123",
			ClientID:      "client-1",
			MechanicID:    "mech-1",
			ServiceTypeID: "oil",
			Status:        status,
			ScheduledAt:   now.Add(24 * time.Hour),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Client: entities.User{ID: "client-1", Name: "Ana"},
	}
}

func TestServiceRequestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIServiceRequestUseCase) *gin.Engine {
		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.POST("/v1/service-requests", withActor("client-1", entities.RoleClient), h.Create)
		return r
	}

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPost, "/v1/service-requests", `{"service_type_id":"oil"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_SERVICE_REQUEST_INPUT" {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("scheduled_at not rfc3339", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		body := `{"service_type_id":"oil","description":"d","address":"a","scheduled_at":"mañana"}`
		w := doJSON(newRouter(uc), http.MethodPost, "/v1/service-requests", body)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_SCHEDULED_AT" {
			t.Fatalf("expected INVALID_SCHEDULED_AT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("non positive price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		body := `{"service_type_id":"oil","description":"d","address":"a","scheduled_at":"2030-01-01T10:00:00Z","price":0}`
		w := doJSON(newRouter(uc), http.MethodPost, "/v1/service-requests", body)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_PRICE" {
			t.Fatalf("expected INVALID_PRICE, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("past date rejected by usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.ServiceRequestDetails{}, usecase.ErrInvalidScheduledAt)

		body := `{"service_type_id":"oil","description":"d","address":"a","scheduled_at":"2020-01-01T10:00:00Z"}`
		w := doJSON(newRouter(uc), http.MethodPost, "/v1/service-requests", body)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_SCHEDULED_AT" {
			t.Fatalf("expected INVALID_SCHEDULED_AT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.CreateServiceRequestCommand) (entities.ServiceRequestDetails, error) {
				if cmd.ClientID != "client-1" || cmd.ServiceTypeID != "oil" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.Price == nil || *cmd.Price != 99.5 {
					t.Fatalf("unexpected price: %v", cmd.Price)
				}
				if !cmd.ScheduledAt.Equal(time.Date(2030, 1, 1, 13, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected scheduled_at: %v", cmd.ScheduledAt)
				}
				return sampleDetails(entities.StatusPendiente), nil
			})

		body := `{"service_type_id":"oil","description":"Cambio","address":"Calle 1","scheduled_at":"2030-01-01T10:00:00-03:00","price":99.5}`
		w := doJSON(newRouter(uc), http.MethodPost, "/v1/service-requests", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["case_number"] != "MH-20260504-ABC123" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestServiceRequestHandler_Assign(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIServiceRequestUseCase, id string, role entities.Role) *gin.Engine {
		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.POST("/v1/service-requests/:id/assign", withActor(id, role), h.Assign)
		return r
	}

	t.Run("mechanic assigns self", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().Assign(gomock.Any(), "sr-1", "mech-1", entities.RoleMechanic, "mech-1").Return(sampleDetails(entities.StatusAceptado), nil)

		w := doJSON(newRouter(uc, "mech-1", entities.RoleMechanic), http.MethodPost, "/v1/service-requests/sr-1/assign", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("admin names mechanic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().Assign(gomock.Any(), "sr-1", "mech-9", entities.RoleAdmin, "admin-1").Return(sampleDetails(entities.StatusAceptado), nil)

		w := doJSON(newRouter(uc, "admin-1", entities.RoleAdmin), http.MethodPost, "/v1/service-requests/sr-1/assign", `{"mechanic_id":" mech-9 "}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("admin without mechanic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		w := doJSON(newRouter(uc, "admin-1", entities.RoleAdmin), http.MethodPost, "/v1/service-requests/sr-1/assign", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("busy mechanic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().Assign(gomock.Any(), "sr-1", "mech-1", entities.RoleMechanic, "mech-1").Return(entities.ServiceRequestDetails{}, usecase.ErrMechanicBusy)

		w := doJSON(newRouter(uc, "mech-1", entities.RoleMechanic), http.MethodPost, "/v1/service-requests/sr-1/assign", "")
		if w.Code != http.StatusConflict || errorCode(t, w) != "MECHANIC_BUSY" {
			t.Fatalf("expected 409 MECHANIC_BUSY, got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestServiceRequestHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIServiceRequestUseCase) *gin.Engine {
		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.PATCH("/v1/service-requests/:id/status", withActor("mech-1", entities.RoleMechanic), h.UpdateStatus)
		return r
	}

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/service-requests/sr-1/status", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success normalizes status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().
			Transition(gomock.Any(), "sr-1", entities.StatusEnCamino, entities.RoleMechanic, "mech-1").
			Return(sampleDetails(entities.StatusEnCamino), nil)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/service-requests/sr-1/status", `{"status":"en_camino"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	errCases := []struct {
		err    error
		status int
		code   string
	}{
		{usecase.ErrInvalidStatus, http.StatusBadRequest, "INVALID_REQUEST"},
		{usecase.ErrServiceRequestNotFound, http.StatusNotFound, "SERVICE_REQUEST_NOT_FOUND"},
		{usecase.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{usecase.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{usecase.ErrMechanicBusy, http.StatusConflict, "MECHANIC_BUSY"},
		{fmt.Errorf("%w: %w", usecase.ErrStorage, errors.New("timeout")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errCases {
		t.Run(tc.code, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIServiceRequestUseCase(ctrl)
			uc.EXPECT().Transition(gomock.Any(), "sr-1", gomock.Any(), gomock.Any(), gomock.Any()).
				Return(entities.ServiceRequestDetails{}, tc.err)

			w := doJSON(newRouter(uc), http.MethodPatch, "/v1/service-requests/sr-1/status", `{"status":"FINALIZADO"}`)
			if w.Code != tc.status || errorCode(t, w) != tc.code {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestServiceRequestHandler_UpdateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIServiceRequestUseCase) *gin.Engine {
		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.PATCH("/v1/service-requests/:id/quote", withActor("mech-1", entities.RoleMechanic), h.UpdateQuote)
		return r
	}

	t.Run("negative price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/service-requests/sr-1/quote", `{"price":-5}`)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_PRICE" {
			t.Fatalf("expected INVALID_PRICE, got %d", w.Code)
		}
	})

	t.Run("notes only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().UpdateQuote(gomock.Any(), "sr-1", "mech-1", (*float64)(nil), "Falta repuesto").
			Return(sampleDetails(entities.StatusEnProceso), nil)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/service-requests/sr-1/quote", `{"notes":"Falta repuesto"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestServiceRequestHandler_Reads(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "sr-1", entities.RoleClient, "client-1").Return(sampleDetails(entities.StatusAceptado), nil)

		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.GET("/v1/service-requests/:id", withActor("client-1", entities.RoleClient), h.Get)

		w := doJSON(r, http.MethodGet, "/v1/service-requests/sr-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("history checks visibility first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		hist := mocks.NewMockIStatusHistoryUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "sr-1", entities.RoleClient, "stranger").Return(entities.ServiceRequestDetails{}, usecase.ErrForbidden)

		h := NewServiceRequestHandler(uc, hist, nil)
		r := gin.New()
		r.GET("/v1/service-requests/:id/history", withActor("stranger", entities.RoleClient), h.History)

		w := doJSON(r, http.MethodGet, "/v1/service-requests/sr-1/history", "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		hist := mocks.NewMockIStatusHistoryUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "sr-1", entities.RoleAdmin, "admin-1").Return(sampleDetails(entities.StatusAceptado), nil)
		hist.EXPECT().History(gomock.Any(), "sr-1").Return([]entities.StatusHistory{
			{ID: "h-1", ServiceID: "sr-1", PreviousStatus: entities.StatusPendiente, NewStatus: entities.StatusAceptado},
		}, nil)

		h := NewServiceRequestHandler(uc, hist, nil)
		r := gin.New()
		r.GET("/v1/service-requests/:id/history", withActor("admin-1", entities.RoleAdmin), h.History)

		w := doJSON(r, http.MethodGet, "/v1/service-requests/sr-1/history", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["new_status"] != "ACEPTADO" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("transitions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().AllowedTransitions(gomock.Any(), "sr-1", entities.RoleMechanic, "mech-1").
			Return([]entities.ServiceStatus{entities.StatusEnCamino, entities.StatusCancelado}, nil)

		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.GET("/v1/service-requests/:id/transitions", withActor("mech-1", entities.RoleMechanic), h.AllowedTransitions)

		w := doJSON(r, http.MethodGet, "/v1/service-requests/sr-1/transitions", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Transitions []string `json:"transitions"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body.Transitions) != 2 || body.Transitions[0] != "EN_CAMINO" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("available splits type ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().ListAvailable(gomock.Any(), []string{"oil", "brakes", "tires"}).
			Return([]entities.ServiceRequest{sampleDetails(entities.StatusPendiente).ServiceRequest}, nil)

		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.GET("/v1/service-requests/available", withActor("mech-1", entities.RoleMechanic), h.ListAvailable)

		w := doJSON(r, http.MethodGet, "/v1/service-requests/available?service_type_id=oil,brakes&service_type_id=tires&service_type_id=", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("assigned and mine use the caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceRequestUseCase(ctrl)
		uc.EXPECT().ListAssignedTo(gomock.Any(), "mech-1").Return(nil, nil)
		uc.EXPECT().ListByClient(gomock.Any(), "mech-1").Return(nil, errors.New("boom"))

		h := NewServiceRequestHandler(uc, nil, nil)
		r := gin.New()
		r.GET("/assigned", withActor("mech-1", entities.RoleMechanic), h.ListAssigned)
		r.GET("/mine", withActor("mech-1", entities.RoleMechanic), h.ListMine)

		w := doJSON(r, http.MethodGet, "/assigned", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
		}
		w = doJSON(r, http.MethodGet, "/mine", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestMapServiceRequestError_CaseNumberExhausted(t *testing.T) {
	appErr := mapServiceRequestError(usecase.ErrCaseNumberExhausted)
	if appErr.HTTPStatus != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", appErr.HTTPStatus)
	}
}
