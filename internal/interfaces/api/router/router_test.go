package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medreminder/internal/application/dto"
	"medreminder/internal/application/service"
	"medreminder/internal/domain/entity"
	"medreminder/internal/infrastructure/database"
	"medreminder/internal/infrastructure/scheduler"
	"medreminder/internal/interfaces/api/handler"
	authmw "medreminder/internal/interfaces/api/middleware"
	"medreminder/internal/pkg/logger"
)

var secret = []byte("router-secret")

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, entity.Endpoint, entity.Notification) error { return nil }

type app struct {
	e         *echo.Echo
	scheduler service.ReminderScheduler
	now       time.Time
}

func newApp(t *testing.T) *app {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, URL: ":memory:", Logger: logger.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.NewNop()
	a := &app{now: time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return a.now }

	schedules := database.NewScheduleRepository(db)
	confirmations := database.NewConfirmationRepository(db)
	users := database.NewUserRepository(db)

	userSvc := service.NewUserService(users, nil, log)
	scheduleSvc := service.NewScheduleService(schedules, log)
	confirmationSvc := service.NewConfirmationService(confirmations, service.ConfirmationOptions{Location: time.UTC, Clock: clock}, log)
	a.scheduler = service.NewReminderScheduler(scheduler.NewCron(time.UTC, log), schedules, confirmations, users, nopNotifier{},
		service.SchedulerOptions{Spec: "*/20 * * * * *", Location: time.UTC, Clock: clock}, log)

	a.e = NewRouter(&Config{
		ScheduleHandler:     handler.NewScheduleHandler(scheduleSvc, log),
		ConfirmationHandler: handler.NewConfirmationHandler(confirmationSvc, log),
		EndpointHandler:     handler.NewEndpointHandler(userSvc, "BPub", log),
		JWTSecret:           secret,
		Logger:              log,
	})
	return a
}

func (a *app) do(t *testing.T, user, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		token, err := authmw.GenerateToken(user, secret, time.Hour)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPublicRoutes(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, "", http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = a.do(t, "", http.MethodGet, "/api/vapid-public-key", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BPub", decode[map[string]string](t, rec)["publicKey"])

	rec = a.do(t, "", http.MethodGet, "/api/schedules", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, "", http.MethodPost, "/callback", "{}")
	assert.Equal(t, http.StatusNotFound, rec.Code, "LINE webhook is off without credentials")
}

func TestScheduleLifecycle(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, "u1", http.MethodPost, "/api/schedules", `{"medicine_name":"Aspirin","time":"08:00","period":"Morning","days":["Mon","Wed"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.ScheduleResponse](t, rec)
	assert.Equal(t, []string{"Mon", "Wed"}, created.Days)

	rec = a.do(t, "u1", http.MethodPost, "/api/schedules", `{"medicine_name":"Aspirin","time":"8am"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(t, "u1", http.MethodPost, "/api/schedules", `{"medicine_name":"Aspirin","time":"08:00","days":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(t, "u1", http.MethodPost, "/api/schedules", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, "u1", http.MethodGet, "/api/schedules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.ScheduleResponse](t, rec), 1)

	rec = a.do(t, "u1", http.MethodPut, "/api/schedules/"+created.ID, `{"time":"09:30"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "09:30", decode[dto.ScheduleResponse](t, rec).Time)

	rec = a.do(t, "u2", http.MethodGet, "/api/schedules/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, "u1", http.MethodDelete, "/api/schedules/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(t, "u1", http.MethodDelete, "/api/schedules/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAcknowledgeFlow(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, "u1", http.MethodPost, "/api/schedules", `{"medicine_name":"Aspirin","time":"08:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	_ = a.scheduler.Tick(context.Background(), a.now)

	rec = a.do(t, "u1", http.MethodGet, "/api/confirmations?date=2025-06-02", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]dto.ConfirmationResponse](t, rec)
	require.Len(t, list, 1)
	id := list[0].ID

	a.now = a.now.Add(2 * time.Minute)
	rec = a.do(t, "u1", http.MethodPost, "/api/confirmations/"+id+"/ack", `{"status":"snoozed","minutes":15}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snoozed := decode[dto.ConfirmationResponse](t, rec)
	assert.Equal(t, "snoozed", snoozed.Status)
	assert.Equal(t, "08:17", *snoozed.SnoozeUntil)

	rec = a.do(t, "u1", http.MethodPost, "/api/confirm", `{"confirmation_id":"`+id+`","status":"snoozed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(t, "u1", http.MethodPost, "/api/confirm", `{"confirmation_id":"`+id+`","status":"taken"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "taken", decode[dto.ConfirmationResponse](t, rec).Status)

	rec = a.do(t, "u1", http.MethodPost, "/api/confirmations/"+id+"/ack", `{"status":"taken"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(t, "u1", http.MethodPost, "/api/confirmations/"+id+"/ack", `{"status":"snoozed","minutes":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, "u1", http.MethodPost, "/api/confirm", `{"status":"taken"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, "u2", http.MethodGet, "/api/confirmations/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, "u1", http.MethodGet, "/api/confirmations/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "taken", decode[dto.ConfirmationResponse](t, rec).Status)

	rec = a.do(t, "u1", http.MethodGet, "/api/confirmations?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndpointRoutes(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, "u1", http.MethodGet, "/api/endpoint", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, "u1", http.MethodPut, "/api/endpoint", `{"kind":"line","address":"U123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, dto.EndpointResponse{Kind: "line", Address: "U123"}, decode[dto.EndpointResponse](t, rec))

	rec = a.do(t, "u1", http.MethodPut, "/api/endpoint", `{"kind":"pager","address":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, "u1", http.MethodGet, "/api/endpoint", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, "u1", http.MethodDelete, "/api/endpoint", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, "u1", http.MethodGet, "/api/endpoint", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
