package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/simplete/storefront/internal/domain"
	"github.com/simplete/storefront/internal/localstore"
)

// ErrNoSession is returned by Restore when no persisted session exists.
var ErrNoSession = errors.New("no persisted session")

type authClient interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
}

type stateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// credentialSink receives the bearer token whenever the session
// changes, so the API client always sees the current credential.
type credentialSink interface {
	Set(token string)
}

// Store holds the authenticated identity and bearer credential.
// Identity, credential and roles always change together: consumers
// never observe a partially updated session.
type Store struct {
	mu      sync.RWMutex
	session *domain.Session

	auth   authClient
	state  stateStore
	bearer credentialSink
	log    *zap.Logger
}

// New creates a logged-out session store.
func New(auth authClient, state stateStore, bearer credentialSink, log *zap.Logger) *Store {
	return &Store{
		auth:   auth,
		state:  state,
		bearer: bearer,
		log:    log,
	}
}

// Restore loads a previously persisted session at process start.
// Returns ErrNoSession when none is stored.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.state.Get(ctx, localstore.KeyUser)
	if errors.Is(err, localstore.ErrKeyNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return fmt.Errorf("failed to decode persisted session: %w", err)
	}
	if sess.UserID == "" || sess.Token == "" {
		return ErrNoSession
	}

	s.install(sess)
	s.log.Info("session restored", zap.String("user_id", sess.UserID))
	return nil
}

// Login validates the form fields, exchanges credentials with the
// backend and persists the resulting session. Session state is not
// mutated on failure.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return domain.Session{}, err
	}

	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.persist(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	s.install(sess)
	s.log.Info("logged in", zap.String("user_id", sess.UserID))
	return sess, nil
}

// Register creates an account and establishes its session.
func (s *Store) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	if reg.FirstName == "" || reg.LastName == "" {
		return domain.Session{}, fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if err := validateCredentials(reg.Email, reg.Password); err != nil {
		return domain.Session{}, err
	}

	sess, err := s.auth.Register(ctx, reg)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.persist(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	s.install(sess)
	s.log.Info("registered", zap.String("user_id", sess.UserID))
	return sess, nil
}

// Logout clears in-memory and persisted session state unconditionally.
// It is idempotent; persistence errors are logged, not returned, since
// the in-memory state is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.bearer.Set("")

	for _, key := range []string{localstore.KeyUser, localstore.KeyToken} {
		if err := s.state.Delete(ctx, key); err != nil {
			s.log.Warn("failed to clear persisted session", zap.String("key", key), zap.Error(err))
		}
	}
	s.log.Info("logged out")
}

// HasRole reports whether the current session carries the role. Always
// false when logged out.
func (s *Store) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return false
	}
	return s.session.Roles.Has(role)
}

// Roles returns the current role-set, nil when logged out.
func (s *Store) Roles() domain.RoleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	roles := make(domain.RoleSet, len(s.session.Roles))
	copy(roles, s.session.Roles)
	return roles
}

// UserID returns the current identity, empty when logged out.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.UserID
}

// Token returns the current credential, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Current returns the session, false when logged out.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

func (s *Store) install(sess domain.Session) {
	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()
	s.bearer.Set(sess.Token)
}

func (s *Store) persist(ctx context.Context, sess domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.state.Set(ctx, localstore.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.state.Set(ctx, localstore.KeyToken, sess.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	return nil
}
