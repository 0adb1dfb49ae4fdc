package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travelchat/internal/http/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Session(false), middleware.Logging())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, string(middleware.SessionID(c)))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestSession_IssuesCookie(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	id := w.Body.String()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid session id, got %q", id)
	}
	if w.Header().Get(middleware.SessionHeader) != id {
		t.Errorf("header = %q, want %q", w.Header().Get(middleware.SessionHeader), id)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].Value != id || !cookies[0].HttpOnly {
		t.Errorf("unexpected cookies %+v", cookies)
	}
}

func TestSession_ReusesCookie(t *testing.T) {
	r := newTestRouter()
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: id})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != id {
		t.Errorf("session = %q, want %q", w.Body.String(), id)
	}
}

func TestSession_HeaderWinsOverCookie(t *testing.T) {
	r := newTestRouter()
	headerID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.SessionHeader, headerID)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: uuid.NewString()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != headerID {
		t.Errorf("session = %q, want %q", w.Body.String(), headerID)
	}
}

func TestSession_RejectsInvalidID(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got == "not-a-uuid" {
		t.Fatal("invalid session id was accepted")
	}
}

func TestRecovery(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
