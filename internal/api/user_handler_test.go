package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/accounts-api/internal/api"
	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/accounthub/accounts-api/internal/mocks"
	"github.com/accounthub/accounts-api/internal/service"
	"github.com/accounthub/accounts-api/internal/service/auth"
)

// newTestRouter wires the handler onto the same routes the server uses,
// backed by the real service over an in-memory store.
func newTestRouter(t *testing.T) (*chi.Mux, *mocks.UserStore) {
	t.Helper()

	userStore := mocks.NewUserStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := service.NewAccountService(
		userStore,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		logger,
	)
	handler := api.NewUserHandler(accounts, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", handler.ListUsers)
		r.Post("/users", handler.CreateUser)
		r.Put("/users/login", handler.Login)
		r.Put("/users/logout", handler.Logout)
		r.Get("/users/{id}", handler.GetUserByID)
		r.Put("/users/{id}", handler.UpdateUser)
	})
	return r, userStore
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("registration returns 201 with token", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeBody[api.AuthUserResponse](t, rec)
		assert.Equal(t, "alice", resp.Username)
		assert.NotEmpty(t, resp.Token)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, domain.SessionLoggedIn, resp.Session)
	})

	t.Run("duplicate username returns 409", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw2"})
		assert.Equal(t, http.StatusConflict, rec.Code)

		resp := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "Username is not unique", resp["error"])
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("password and token never appear in the body", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "hunter2"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hunter2")
		assert.NotContains(t, rec.Body.String(), "hashed_password")
	})
}

func TestUserHandler_LoginLogout(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, router http.Handler) api.AuthUserResponse {
		t.Helper()
		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)
		return decodeBody[api.AuthUserResponse](t, rec)
	}

	logout := func(t *testing.T, router http.Handler, token string) *httptest.ResponseRecorder {
		t.Helper()
		return doJSON(t, router, http.MethodPut, "/api/users/logout",
			map[string]string{"token": token})
	}

	t.Run("full session round trip", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		created := register(t, router)

		// Fresh accounts are logged in; end the session first.
		rec := logout(t, router, created.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		loggedOut := decodeBody[api.UserResponse](t, rec)
		assert.Equal(t, domain.SessionLoggedOut, loggedOut.Session)

		rec = doJSON(t, router, http.MethodPut, "/api/users/login",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusOK, rec.Code)
		loggedIn := decodeBody[api.AuthUserResponse](t, rec)
		assert.Equal(t, domain.SessionLoggedIn, loggedIn.Session)
		assert.Equal(t, created.Token, loggedIn.Token)
	})

	t.Run("wrong password returns 403", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		created := register(t, router)
		require.Equal(t, http.StatusOK, logout(t, router, created.Token).Code)

		rec := doJSON(t, router, http.MethodPut, "/api/users/login",
			map[string]string{"username": "alice", "password": "wrong"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		resp := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "Password incorrect", resp["error"])
	})

	t.Run("unknown username returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/api/users/login",
			map[string]string{"username": "nobody", "password": "pw"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("login on active session returns 403", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		register(t, router)

		rec := doJSON(t, router, http.MethodPut, "/api/users/login",
			map[string]string{"username": "alice", "password": "pw"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		resp := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "Already logged in", resp["error"])
	})

	t.Run("repeated logout returns 403", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		created := register(t, router)

		require.Equal(t, http.StatusOK, logout(t, router, created.Token).Code)

		rec := logout(t, router, created.Token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown token returns 403", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := logout(t, router, uuid.NewString())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestUserHandler_GetAndList(t *testing.T) {
	t.Parallel()

	t.Run("list returns all users without credentials", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		for _, name := range []string{"alice", "bob"} {
			rec := doJSON(t, router, http.MethodPost, "/api/users",
				map[string]string{"username": name, "password": "pw"})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		users := decodeBody[[]api.UserResponse](t, rec)
		require.Len(t, users, 2)
		assert.NotContains(t, rec.Body.String(), "token")
	})

	t.Run("list on empty store returns empty array", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("get by id returns the user", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decodeBody[api.AuthUserResponse](t, rec)

		rec = doJSON(t, router, http.MethodGet, "/api/users/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		user := decodeBody[api.UserResponse](t, rec)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/users/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/users/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("update returns 204 and persists", func(t *testing.T) {
		t.Parallel()
		router, userStore := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decodeBody[api.AuthUserResponse](t, rec)

		bd := time.Date(1999, time.March, 14, 0, 0, 0, 0, time.UTC)
		rec = doJSON(t, router, http.MethodPut, "/api/users/"+created.ID.String(),
			map[string]any{"username": "alice2", "birthday": bd.Format(time.RFC3339)})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		stored, err := userStore.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice2", stored.Username)
		require.NotNil(t, stored.Birthday)
		assert.True(t, bd.Equal(*stored.Birthday))
	})

	t.Run("username collision returns 409", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "alice", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/users",
			map[string]string{"username": "bob", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)
		bob := decodeBody[api.AuthUserResponse](t, rec)

		rec = doJSON(t, router, http.MethodPut, "/api/users/"+bob.ID.String(),
			map[string]string{"username": "alice"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/api/users/"+uuid.NewString(),
			map[string]string{"username": "ghost"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
