// Package services contains the recipebox client state containers: the
// SessionManager, which owns who is logged in, and the PreferenceStore,
// which owns per-recipe favorites, ratings and the display mode.
//
// Both are constructed explicitly, rehydrate once from durable storage via
// Initialize, and write through to storage on every mutation. They are safe
// for concurrent use and never share storage keys.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/client/storage"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	// StatusError is idle with a pending LastError.
	StatusError Status = "error"
)

// SessionState is a point-in-time copy of the session.
type SessionState struct {
	User      *models.User
	Token     string
	Status    Status
	LastError string
}

// SessionManager is the single authority for the current session and the
// only writer of the authToken/authUser durable keys.
//
// Concurrent logins are allowed; the last one to complete wins and replaces
// the whole session. Commits to memory and storage happen under commitMu, so
// the durable token and user always belong to the same login.
type SessionManager struct {
	client client.Client
	store  storage.KV
	log    logging.Logger

	// commitMu orders durable writes; mu guards the fields below it.
	commitMu sync.Mutex

	mu       sync.RWMutex
	session  *models.Session
	lastErr  string
	inflight int
	ready    bool

	initOnce sync.Once
	initErr  error
}

func NewSessionManager(c client.Client, store storage.KV, log logging.Logger) *SessionManager {
	return &SessionManager{
		client: c,
		store:  store,
		log:    log.With("component", "session"),
	}
}

// Initialize restores the persisted session. Only the first call does any
// work; later calls return the first result. A partial or unreadable record
// is deleted and the session starts empty; that is not reported as an error.
func (m *SessionManager) Initialize(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.initErr = m.restore(ctx)

		m.mu.Lock()
		m.ready = true
		m.mu.Unlock()
	})
	return m.initErr
}

func (m *SessionManager) restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	rawUser, err := m.store.Get(ctx, common.AuthUserKey)
	if err != nil {
		return fmt.Errorf("read session user: %w", err)
	}
	if token == nil && rawUser == nil {
		return nil
	}

	s, err := decodeSession(token, rawUser)
	if err != nil {
		m.log.Warn(ctx, "discarding persisted session", "error", err)
		if err := m.store.Delete(ctx, common.AuthTokenKey, common.AuthUserKey); err != nil {
			return fmt.Errorf("clear session record: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "user", s.User.Username)
	return nil
}

func decodeSession(token, rawUser []byte) (*models.Session, error) {
	tok := strings.TrimSpace(string(token))
	if tok == "" || len(rawUser) == 0 {
		return nil, fmt.Errorf("%w: incomplete session record", common.ErrMalformedState)
	}

	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedState, err)
	}
	if !u.Valid() {
		return nil, fmt.Errorf("%w: user without username", common.ErrMalformedState)
	}
	return &models.Session{User: u, Token: tok}, nil
}

// Login authenticates against the client. On success the session is replaced
// atomically in memory and in storage. On failure LastError is set and any
// existing session is left as it was.
//
// password is passed to the client as is; wiping it is up to the caller.
func (m *SessionManager) Login(ctx context.Context, username string, password []byte) (models.User, error) {
	m.mu.Lock()
	m.lastErr = ""
	m.inflight++
	m.mu.Unlock()
	defer m.done()

	if username == "" || len(password) == 0 {
		err := fmt.Errorf("%w: username and password are required", common.ErrInvalidCredentials)
		m.fail(ctx, "login rejected", err)
		return models.User{}, err
	}

	s, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.fail(ctx, "login failed", err, "user", username)
		return models.User{}, err
	}

	if err := m.commit(ctx, s); err != nil {
		m.fail(ctx, "login not persisted", err, "user", username)
		return models.User{}, err
	}

	m.log.Info(ctx, "login successful", "user", s.User.Username)
	return s.User, nil
}

// commit persists s and then publishes it. Storage failure leaves the
// previous session in place. A login the backend accepted is persisted even
// if ctx is cancelled meanwhile.
func (m *SessionManager) commit(ctx context.Context, s *models.Session) error {
	rawUser, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if err := m.store.Put(context.WithoutCancel(ctx), map[string][]byte{
		common.AuthTokenKey: []byte(s.Token),
		common.AuthUserKey:  rawUser,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return nil
}

// Logout clears the in-memory session at once, then removes the durable record.
// The removal ignores cancellation of ctx so memory and storage stay in step.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	prev := m.session
	m.session = nil
	m.lastErr = ""
	m.mu.Unlock()

	if err := m.store.Delete(context.WithoutCancel(ctx), common.AuthTokenKey, common.AuthUserKey); err != nil {
		m.log.Error(ctx, "failed to clear session record", "error", err)
		return fmt.Errorf("clear session record: %w", err)
	}

	if prev != nil {
		m.log.Info(ctx, "logged out", "user", prev.User.Username)
	}
	return nil
}

// IsAuthenticated reports whether both a token and a user are present.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil && m.session.Token != "" && m.session.User.Valid()
}

// FetchProtectedData fails with common.ErrUnauthenticated when no session
// exists; otherwise it asks the client for the current user's data.
func (m *SessionManager) FetchProtectedData(ctx context.Context) (*models.ProtectedData, error) {
	m.mu.Lock()
	s := m.session
	if s == nil {
		m.mu.Unlock()
		return nil, common.ErrUnauthenticated
	}
	m.inflight++
	m.mu.Unlock()
	defer m.done()

	data, err := m.client.FetchProtected(ctx, s.Token, s.User)
	if err != nil {
		m.fail(ctx, "protected data fetch failed", err)
		return nil, err
	}
	return data, nil
}

func (m *SessionManager) done() {
	m.mu.Lock()
	m.inflight--
	m.mu.Unlock()
}

func (m *SessionManager) fail(ctx context.Context, msg string, err error, args ...any) {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()

	m.log.Warn(ctx, msg, append(args, "error", err)...)
}

func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := SessionState{Status: m.statusLocked(), LastError: m.lastErr}
	if m.session != nil {
		u := m.session.User
		st.User = &u
		st.Token = m.session.Token
	}
	return st
}

func (m *SessionManager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusLocked()
}

func (m *SessionManager) statusLocked() Status {
	switch {
	case !m.ready || m.inflight > 0:
		return StatusLoading
	case m.lastErr != "":
		return StatusError
	default:
		return StatusIdle
	}
}

func (m *SessionManager) User() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return models.User{}, false
	}
	return m.session.User, true
}

func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// LastError returns the message of the most recent failure, or "".
func (m *SessionManager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// ClearError drops LastError, e.g. when the user edits the login form.
func (m *SessionManager) ClearError() {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
}
