package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
	"github.com/srokkala/Book-Management-App/internal/http/handlers"
	"github.com/srokkala/Book-Management-App/internal/service"
)

// Make sure gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementation of the handlers.SessionService interface

type fakeSessions struct {
	registerFn func(ctx context.Context, name, email, password string) (user.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (user.User, string, error)
}

func (f *fakeSessions) Register(ctx context.Context, name, email, password string) (user.User, string, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, name, email, password)
	}

	return user.User{}, "", nil
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (user.User, string, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}

	return user.User{}, "", nil
}

// small helper which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeSessions)
		wantStatusCode int
		wantMsg        string
	}{
		{
			name: "success",
			body: `{"name":"A","email":"a@x.com","password":"pw123456"}`,
			svcSetUp: func(f *fakeSessions) {
				f.registerFn = func(ctx context.Context, name, email, password string) (user.User, string, error) {
					return user.User{ID: "u1", Name: name, Email: email}, "tok-1", nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "validation_error",
			body:           `{"email":"a@x.com","password":"pw123456"}`, // missing name
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "bad_email",
			body:           `{"name":"A","email":"not-an-email","password":"pw123456"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_email",
			body: `{"name":"A","email":"a@x.com","password":"pw123456"}`,
			svcSetUp: func(f *fakeSessions) {
				f.registerFn = func(ctx context.Context, name, email, password string) (user.User, string, error) {
					return user.User{}, "", user.ErrEmailTaken
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantMsg:        "User already exists",
		},
		{
			name: "service_error",
			body: `{"name":"A","email":"a@x.com","password":"pw123456"}`,
			svcSetUp: func(f *fakeSessions) {
				f.registerFn = func(ctx context.Context, name, email, password string) (user.User, string, error) {
					return user.User{}, "", errors.New("store down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSessions{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fake)
			}

			h := handlers.NewAuthHandler(fake)
			r := setupRouter(http.MethodPost, "/api/auth/register", h.Register)

			w := doJSON(r, http.MethodPost, "/api/auth/register", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal: %v, body=%s", err, w.Body.String())
				}
				if resp.Token == "" {
					t.Fatalf("expected a token, body=%s", w.Body.String())
				}
			}

			if tt.wantMsg != "" {
				var resp struct {
					Msg string `json:"msg"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal: %v, body=%s", err, w.Body.String())
				}
				if resp.Msg != tt.wantMsg {
					t.Fatalf("msg: got %q, want %q", resp.Msg, tt.wantMsg)
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeSessions)
		wantStatusCode int
		wantMsg        string
	}{
		{
			name: "success",
			body: `{"email":"a@x.com","password":"pw123456"}`,
			svcSetUp: func(f *fakeSessions) {
				f.loginFn = func(ctx context.Context, email, password string) (user.User, string, error) {
					return user.User{ID: "u1", Email: email}, "tok-2", nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "invalid_credentials",
			body: `{"email":"a@x.com","password":"wrong"}`,
			svcSetUp: func(f *fakeSessions) {
				f.loginFn = func(ctx context.Context, email, password string) (user.User, string, error) {
					return user.User{}, "", service.ErrInvalidCredentials
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantMsg:        "Invalid Credentials",
		},
		{
			name:           "missing_password",
			body:           `{"email":"a@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSessions{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fake)
			}

			h := handlers.NewAuthHandler(fake)
			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			w := doJSON(r, http.MethodPost, "/api/auth/login", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantMsg != "" {
				var resp struct {
					Msg string `json:"msg"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal: %v, body=%s", err, w.Body.String())
				}
				if resp.Msg != tt.wantMsg {
					t.Fatalf("msg: got %q, want %q", resp.Msg, tt.wantMsg)
				}
			}
		})
	}
}
