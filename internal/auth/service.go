package auth

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL is how long a verified session stays valid.
const sessionTTL = 30 * 24 * time.Hour

// LinkSender delivers a login link to the user. The delivery channel is
// deployment-specific; the server wires a log-based sender by default.
type LinkSender interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

// LogLinkSender writes login links to the process log.
type LogLinkSender struct{}

func (LogLinkSender) SendLoginLink(_ context.Context, email, link string) error {
	log.Printf("Login link for %s: %s", email, link)
	return nil
}

// Service implements magic-link sign-in and session management, and
// broadcasts session changes to watchers.
type Service struct {
	repo       *Repository
	sender     LinkSender
	secret     []byte
	appBaseURL string

	mu       sync.Mutex
	watchers map[int]chan SessionEvent
	nextID   int
}

// NewService creates a new Service.
func NewService(repo *Repository, sender LinkSender, secret []byte, appBaseURL string) *Service {
	return &Service{
		repo:       repo,
		sender:     sender,
		secret:     secret,
		appBaseURL: appBaseURL,
		watchers:   map[int]chan SessionEvent{},
	}
}

// SignIn mints a one-time login token for the email and hands the login
// link to the sender. The user record is created on first sign-in.
func (s *Service) SignIn(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		user, err = s.repo.CreateUser(ctx, email)
		if err != nil {
			return err
		}
	}

	jti := uuid.NewString()
	token, err := createLoginToken(s.secret, user.ID, jti)
	if err != nil {
		return fmt.Errorf("failed to create login token: %w", err)
	}
	if err := s.repo.SaveLoginToken(ctx, jti, user.ID, time.Now().Add(loginTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/login?token=%s", s.appBaseURL, url.QueryEscape(token))
	if err := s.sender.SendLoginLink(ctx, email, link); err != nil {
		return fmt.Errorf("failed to send login link: %w", err)
	}
	return nil
}

// Verify consumes a login token and opens a session. Returns nil if the
// token is invalid, expired, or already used.
func (s *Service) Verify(ctx context.Context, token string) (*Session, error) {
	userID, jti, err := parseLoginToken(s.secret, token)
	if err != nil {
		return nil, nil // Invalid token, not a store failure
	}

	ok, err := s.repo.ConsumeLoginToken(ctx, jti)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil // Already used or expired
	}

	session, err := s.repo.CreateSession(ctx, userID, sessionTTL)
	if err != nil {
		return nil, err
	}

	s.broadcast(SessionEvent{Session: session})
	return session, nil
}

// CurrentUser resolves the session to its user profile. Returns nil, nil
// when the session is unknown or expired.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*User, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return s.repo.GetUser(ctx, session.UserID)
}

// Profile fetches a user profile by id. Returns nil if the user is unknown.
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUser(ctx, userID)
}

// UpdateProfile applies a partial profile update for the session's user.
// An unknown or expired session fails fast with ErrNotAuthenticated before
// any profile write.
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, upd ProfileUpdate) (*User, error) {
	if sessionID == "" {
		return nil, ErrNotAuthenticated
	}
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}
	return s.repo.UpdateUser(ctx, session.UserID, upd)
}

// SignOut closes the session and notifies watchers.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.broadcast(SessionEvent{Session: nil})
	return nil
}

// Watch subscribes to session changes. The returned cancel function closes
// the channel and stops delivery; events sent after cancel are dropped.
func (s *Service) Watch() (<-chan SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan SessionEvent, 8)
	s.watchers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}
	return ch, cancel
}

// broadcast delivers the event to all watchers, dropping it for any watcher
// whose buffer is full rather than blocking a sign-in.
func (s *Service) broadcast(ev SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
