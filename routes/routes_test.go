package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/testutil"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

type app struct {
	router *gin.Engine
	auth   *services.AuthService
	jwt    *utils.JWTManager
}

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string) error { return nil }

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	log := zap.NewNop()

	users := repositories.NewUserRepository(db)
	appliances := repositories.NewApplianceRepository(db)
	records := repositories.NewServiceRecordRepository(db)
	alerts := repositories.NewAlertRepository(db)
	devices := repositories.NewDeviceRepository(db)

	jm := utils.NewJWTManager(strings.Repeat("x", 32), time.Hour)
	receipts := utils.NewDiskReceiptStore(t.TempDir(), "/uploads")
	hub := services.NewRealtimeHub(log)
	push := services.NewPushService(devices, nil, "", log)
	dispatcher := services.NewAlertDispatcher(alerts, hub, push, log)
	warranty := services.NewWarrantyService(appliances, dispatcher, log)
	applSvc := services.NewApplianceService(appliances, receipts, warranty, log)
	auth := services.NewAuthService(users, jm, nopMailer{}, "http://localhost", log)

	r := SetupRouter(Deps{
		Log:           log,
		JWT:           jm,
		Users:         users,
		Auth:          auth,
		Profile:       services.NewUserService(users),
		Appliances:    applSvc,
		Records:       services.NewServiceRecordService(records, appliances),
		Notifications: services.NewNotificationService(warranty, alerts, push),
		Push:          push,
		Admin:         services.NewAdminService(users, applSvc, appliances, records, receipts, log),
		Hub:           hub,
	})
	return &app{router: r, auth: auth, jwt: jm}
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) multipart(t *testing.T, method, path, token string, fields map[string]string, file, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != "" {
		fw, err := mw.CreateFormFile("receipt", file)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "password123", "full_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token   string `json:"token"`
		Landing string `json:"landing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type applianceJSON struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	LastWarrantyStatus   string `json:"last_warranty_status"`
	DaysLeft             int    `json:"days_left"`
	WarrantyPeriodMonths int    `json:"warranty_period_months"`
	ReceiptURL           string `json:"receipt_url"`
}

func today() string {
	return utils.DateOnly(time.Now()).Format(time.DateOnly)
}

func TestAuthFlow(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	token := a.login(t, "flow@example.com")

	w = a.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email": "flow@example.com", "password": "password123", "full_name": "Dup",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "flow@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodPost, "/auth/forgot-password", "", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPut, "/profile", token, gin.H{
		"full_name": "Flow User", "address": "Somewhere", "phone_number": "9123456789",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPut, "/profile", token, gin.H{"full_name": "Flow User", "phone_number": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "phone_number", decode[map[string]string](t, w)["field"])

	w = a.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Flow User", decode[map[string]any](t, w)["full_name"])

	w = a.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplianceFlow(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "owner@example.com")
	other := a.login(t, "other@example.com")

	w := a.multipart(t, http.MethodPost, "/appliances", token, map[string]string{
		"name":                   "Kettle",
		"brand":                  "Boil",
		"purchase_date":          today(),
		"warranty_period_months": "0",
		"purchase_price":         "29.99",
	}, "receipt.png", "png-bytes")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[applianceJSON](t, w)
	assert.Equal(t, "Expiring Soon", created.Status)
	assert.Equal(t, "Expiring Soon", created.LastWarrantyStatus)
	assert.Equal(t, 0, created.DaysLeft)
	assert.True(t, strings.HasPrefix(created.ReceiptURL, "/uploads/receipts/"))

	w = a.multipart(t, http.MethodPost, "/appliances", token, map[string]string{
		"name": "Bad", "purchase_date": today(), "purchase_price": "1",
	}, "receipt.gif", "gif")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "receipt", decode[map[string]string](t, w)["field"])

	w = a.multipart(t, http.MethodPost, "/appliances", token, map[string]string{
		"name": "Bad", "purchase_date": "31/12/2024", "purchase_price": "1",
	}, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := "/appliances/" + jsonID(created.ID)
	w = a.do(t, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.multipart(t, http.MethodPut, path, token, map[string]string{
		"name":                   "Kettle 2",
		"purchase_date":          today(),
		"warranty_period_months": "24",
		"purchase_price":         "29.99",
		"remove_receipt":         "true",
	}, "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[applianceJSON](t, w)
	assert.Equal(t, "Active", updated.Status)
	assert.Equal(t, 24, updated.WarrantyPeriodMonths)
	assert.Empty(t, updated.ReceiptURL)

	w = a.do(t, http.MethodPost, path+"/service-records", token, gin.H{
		"service_date": today(), "vendor_name": "Fixit", "vendor_contact": "9876543210", "cost": "120.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, path+"/service-records", token, gin.H{
		"service_date": today(), "vendor_name": "Fixit", "vendor_contact": "9876543210",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, path+"/service-records", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = a.do(t, http.MethodGet, "/appliances", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]applianceJSON](t, w), 1)

	w = a.do(t, http.MethodGet, "/appliances/expiring?days=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(t, http.MethodGet, "/appliances/zero", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationsAndWebsocket(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "ws@example.com")

	srv := httptest.NewServer(a.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?access_token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The hub registers the session right after the upgrade.
	time.Sleep(50 * time.Millisecond)

	w := a.multipart(t, http.MethodPost, "/appliances", token, map[string]string{
		"name": "Heater", "purchase_date": today(), "purchase_price": "10",
	}, "", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(msg, &frame))
	assert.Equal(t, "warranty.notification", frame.Kind)
	assert.Equal(t, "Heater warranty is expiring soon!", frame.Message)

	w = a.do(t, http.MethodPost, "/notifications/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	check := decode[struct {
		Evaluations []services.Evaluation `json:"evaluations"`
	}](t, w)
	require.Len(t, check.Evaluations, 1)
	assert.False(t, check.Evaluations[0].Transitioned)

	w = a.do(t, http.MethodGet, "/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]struct {
		ID      uint   `json:"id"`
		Message string `json:"message"`
	}](t, w)
	require.Len(t, history, 1)

	w = a.do(t, http.MethodPost, "/notifications/"+jsonID(history[0].ID)+"/read", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/notifications/toggle", token, gin.H{"enabled": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/devices", token, gin.H{"platform": "android", "token": "abc"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.auth.SeedAdmin(context.Background(), "admin@example.com", "adminpass1"))

	w := a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "admin@example.com", "password": "adminpass1"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[struct {
		Token   string `json:"token"`
		Landing string `json:"landing"`
	}](t, w)
	assert.Equal(t, "admin", login.Landing)

	userTok := a.login(t, "user@example.com")
	w = a.do(t, http.MethodGet, "/admin/dashboard", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.multipart(t, http.MethodPost, "/appliances", userTok, map[string]string{
		"name": "Radio", "purchase_date": today(), "warranty_period_months": "12", "purchase_price": "5",
	}, "", "")
	require.Equal(t, http.StatusCreated, w.Code)
	radio := decode[applianceJSON](t, w)

	w = a.do(t, http.MethodGet, "/admin/dashboard", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[services.Dashboard](t, w)
	assert.EqualValues(t, 2, dash.TotalUsers)
	assert.EqualValues(t, 1, dash.TotalAppliances)

	w = a.do(t, http.MethodGet, "/admin/appliances/"+jsonID(radio.ID), login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	userID := dash.Users[0].ID
	if dash.Users[0].Email == "admin@example.com" {
		userID = dash.Users[1].ID
	}
	w = a.do(t, http.MethodDelete, "/admin/users/"+jsonID(userID), login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/profile", userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
