package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"oneday/config"
	"oneday/database/repository/user/usertest"
	"oneday/handlers"
	"oneday/models"
	"oneday/services/catalog"
	"oneday/services/session"
	"oneday/services/user"
	"oneday/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	os.Exit(m.Run())
}

type api struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *api {
	repo := usertest.NewRepo()
	mgr := session.NewManager(repo, session.Deps{Catalog: catalog.New()})
	t.Cleanup(mgr.Close)
	tokens := utils.NewMemoryTokenCache()
	hb := &handlers.HandlerBundle{
		Users: &user.DefaultUserService{
			Repo:       repo,
			Sessions:   mgr,
			Tokens:     tokens,
			Verifier:   utils.NewVerifier(nil, time.Minute, nil),
			SessionTTL: time.Hour,
			Logger:     zap.NewNop(),
		},
		Catalog: catalog.New(),
		Tokens:  tokens,
	}
	r := gin.New()
	RegisterRoutes(r, hb, mgr, 1000)
	return &api{t: t, router: r}
}

func (a *api) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPublicCatalog(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/classes?type=one_on_one&sort=price_asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Classes []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"classes"`
	}
	decode(t, w, &list)
	require.NotEmpty(t, list.Classes)
	for _, c := range list.Classes {
		assert.Equal(t, "one_on_one", c.Type)
	}

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/classes/nope", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/membership/plans", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", nil).Code)
}

func TestSessionRoutesRequireToken(t *testing.T) {
	a := newAPI(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/session/screen", nil).Code)
}

func TestDemoBookingFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/auth/demo", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var auth user.AuthResponse
	decode(t, w, &auth)
	a.token = auth.Token

	w = a.do(http.MethodGet, "/api/session/screen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var screen session.ScreenView
	decode(t, w, &screen)
	assert.Equal(t, session.ScreenHome, screen.Screen)

	book := map[string]string{"listingId": "class1", "slotId": "s1", "couponId": "demo_welcome"}
	w = a.do(http.MethodPost, "/api/session/bookings", book)
	require.Equal(t, http.StatusConflict, w.Code)
	var errBody utils.ErrorResponse
	decode(t, w, &errBody)
	assert.Equal(t, "profileSetup", errBody.Redirect)

	profile := map[string]interface{}{
		"nickname":  "원데이",
		"birthYear": "1995",
		"company":   "스타트업",
		"job":       "개발",
		"region":    "seoul-gangnam",
		"interests": []string{"커피", "여행", "사진"},
	}
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/session/profile", profile).Code)

	w = a.do(http.MethodPost, "/api/session/bookings", book)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booked struct {
		ID        string `json:"id"`
		PaidPrice int    `json:"paidPrice"`
	}
	decode(t, w, &booked)

	w = a.do(http.MethodPost, "/api/session/bookings/"+booked.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/session/after-class/"+booked.ID+"/pick", map[string]int{"participantId": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/session/after-class/"+booked.ID+"/review", map[string]interface{}{"rating": 5, "content": "좋았어요"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = a.do(http.MethodPost, "/api/session/after-class/"+booked.ID+"/review", map[string]interface{}{"rating": 5, "content": "또"})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/session/after-class/"+booked.ID+"/pick", map[string]int{"participantId": 1}).Code)
	w = a.do(http.MethodPost, "/api/session/after-class/"+booked.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var confirmed struct {
		Outcome struct {
			Kind string `json:"kind"`
		} `json:"outcome"`
		Screen string `json:"screen"`
	}
	decode(t, w, &confirmed)
	assert.Equal(t, "match", confirmed.Outcome.Kind)
	assert.Equal(t, "chat", confirmed.Screen)

	w = a.do(http.MethodGet, "/api/session/chat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var chatView session.ChatView
	decode(t, w, &chatView)
	assert.True(t, chatView.Matched)
	assert.Len(t, chatView.Messages, 1)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/session/chat", map[string]string{"text": "  "}).Code)

	require.Equal(t, http.StatusNoContent, a.do(http.MethodPost, "/api/auth/signout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/session/screen", nil).Code)
}

func TestChatStream(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/api/auth/demo", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var auth user.AuthResponse
	decode(t, w, &auth)

	srv := httptest.NewServer(a.router)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session/chat/stream?token=" + auth.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	type event struct {
		Type    string         `json:"type"`
		Message models.Message `json:"message"`
		Error   string         `json:"error"`
	}

	require.NoError(t, conn.WriteJSON(map[string]string{"text": "hi"}))
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "message", ev.Type)
	assert.Equal(t, "hi", ev.Message.Text)
	assert.Equal(t, models.SenderMe, ev.Message.Sender)

	require.NoError(t, conn.WriteJSON(map[string]string{"text": " "}))
	ev = event{}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "error", ev.Type)
	assert.NotEmpty(t, ev.Error)
}
