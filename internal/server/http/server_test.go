package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ikratov/taskkeeper/internal/common"
	"github.com/ikratov/taskkeeper/internal/logging"
	"github.com/ikratov/taskkeeper/internal/server/auth"
	"github.com/ikratov/taskkeeper/internal/server/tasks"
	"github.com/ikratov/taskkeeper/internal/server/users"
)

// --- in-memory repositories ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*users.User
}

func (m *memUserRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return nil, common.ErrEmailAlreadyExists
	}
	u.CreatedAt = time.Now()
	m.users[u.Email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memTaskRepo struct {
	mu        sync.Mutex
	tasks     map[string]*tasks.Task
	listCalls int
}

func (m *memTaskRepo) ListByUser(ctx context.Context, userID string) ([]*tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]*tasks.Task, 0)
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Create(ctx context.Context, t *tasks.Task) (*tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) Update(ctx context.Context, userID, id string, title *string, completed *bool) (*tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if title != nil {
		t.Title = *title
	}
	if completed != nil {
		t.Completed = *completed
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func (m *memTaskRepo) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.tasks, id)
	return nil
}

// --- helpers ---

type testEnv struct {
	server   *Server
	tokens   *auth.TokenService
	taskRepo *memTaskRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	hasher := auth.NewPasswordHasher(4)

	userRepo := &memUserRepo{users: make(map[string]*users.User)}
	taskRepo := &memTaskRepo{tasks: make(map[string]*tasks.Task)}

	srv := NewServer(":0", logger,
		users.NewService(userRepo, hasher, tokens),
		tasks.NewService(taskRepo),
		tokens,
	)
	return &testEnv{server: srv, tokens: tokens, taskRepo: taskRepo}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) signup(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// --- auth endpoints ---

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSignup_ReturnsVerifiableToken(t *testing.T) {
	env := newTestEnv(t)

	token := env.signup(t, "a@x.com", "secret1")
	require.Len(t, strings.Split(token, "."), 3)

	userID, err := env.tokens.Verify(token)
	require.NoError(t, err)
	require.NotEmpty(t, userID)
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "dup@x.com", "pw")
	w := env.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "dup@x.com", "password": "pw"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_RoundTripsToSignupIdentity(t *testing.T) {
	env := newTestEnv(t)

	t1 := env.signup(t, "a@x.com", "secret1")
	u1, err := env.tokens.Verify(t1)
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	u2, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, u1, u2)
}

func TestLogin_WrongPasswordAndUnknownEmailSameResponse(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "known@x.com", "right")

	w1 := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "known@x.com", "password": "wrong"})
	w2 := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "unknown@x.com", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, w1.Code)
	require.Equal(t, http.StatusUnauthorized, w2.Code)
	require.Equal(t, w1.Body.String(), w2.Body.String())
}

// --- identity middleware ---

func TestTasks_NoTokenIsRejectedBeforeHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, env.taskRepo.listCalls, "handler must not run without a verified identity")
}

func TestTasks_MalformedAndTamperedTokensRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "a@x.com", "pw")

	tampered := token[:len(token)-2] + "xx"

	for _, tok := range []string{"garbage", tampered} {
		w := env.do(t, http.MethodGet, "/api/tasks", tok, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "token %q", tok)
	}
	require.Zero(t, env.taskRepo.listCalls)
}

func TestTasks_ExpiredTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "pw")

	expired := auth.NewTokenService([]byte("test-secret"), -time.Minute)
	tok, err := expired.Issue("whoever")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/tasks", tok, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- task CRUD behind the gate ---

func TestTasks_CRUDScopedToOwner(t *testing.T) {
	env := newTestEnv(t)

	aliceTok := env.signup(t, "alice@x.com", "pw")
	bobTok := env.signup(t, "bob@x.com", "pw")

	// create
	w := env.do(t, http.MethodPost, "/api/tasks", aliceTok, gin.H{"title": "buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "buy milk", created.Title)
	require.False(t, created.Completed)

	// list: owner sees it, the other user does not
	w = env.do(t, http.MethodGet, "/api/tasks", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var aliceList []tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &aliceList))
	require.Len(t, aliceList, 1)

	w = env.do(t, http.MethodGet, "/api/tasks", bobTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bobList []tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bobList))
	require.Empty(t, bobList)

	// cross-user update and delete look like a missing task
	w = env.do(t, http.MethodPut, "/api/tasks/"+created.ID, bobTok, gin.H{"completed": true})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/tasks/"+created.ID, bobTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// the owner can update and delete
	w = env.do(t, http.MethodPut, "/api/tasks/"+created.ID, aliceTok, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	var updated tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.True(t, updated.Completed)

	w = env.do(t, http.MethodDelete, "/api/tasks/"+created.ID, aliceTok, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/tasks/"+created.ID, aliceTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasks_CreateMissingTitle(t *testing.T) {
	env := newTestEnv(t)
	tok := env.signup(t, "a@x.com", "pw")

	w := env.do(t, http.MethodPost, "/api/tasks", tok, gin.H{"completed": true})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// failingTaskRepo fails ListByUser with a fixed cause, as a dropped
// database connection would.
type failingTaskRepo struct {
	memTaskRepo
	cause error
}

func (f *failingTaskRepo) ListByUser(ctx context.Context, userID string) ([]*tasks.Task, error) {
	return nil, f.cause
}

func TestTasks_InternalFailureIsLoggedWithCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&logBuf, nil)))

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	hasher := auth.NewPasswordHasher(4)
	userRepo := &memUserRepo{users: make(map[string]*users.User)}
	taskRepo := &failingTaskRepo{cause: errors.New("pg: connection refused")}

	srv := NewServer(":0", logger,
		users.NewService(userRepo, hasher, tokens),
		tasks.NewService(taskRepo),
		tokens,
	)

	tok, err := tokens.Issue("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	// the client sees an opaque 500
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error": "internal error"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "connection refused")

	// the log line carries the underlying cause
	require.Contains(t, logBuf.String(), "connection refused")
}
