package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/fileshare/internal/model"
	"github.com/templui/fileshare/internal/repository"
)

const SessionCookieName = "session_token"

var ErrUnauthenticated = errors.New("not authenticated")

// sessionClaims is the payload of a session token. The session row named
// by SessionID, not the signature alone, decides whether the session is alive.
type sessionClaims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

type SessionService struct {
	sessionRepository repository.SessionRepository
	secret            []byte
	expiry            time.Duration
	secureCookie      bool
}

func NewSessionService(sessionRepository repository.SessionRepository, secret string, expiry time.Duration, secureCookie bool) *SessionService {
	return &SessionService{
		sessionRepository: sessionRepository,
		secret:            []byte(secret),
		expiry:            expiry,
		secureCookie:      secureCookie,
	}
}

// Start opens a session for user and returns the signed token to hand to the client
func (s *SessionService) Start(ctx context.Context, user *model.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)

	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	err := s.sessionRepository.Create(ctx, session)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}

	claims := sessionClaims{
		SessionID: session.ID,
		Username:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

// Current resolves a token to the identity it was issued for.
// Bad signatures, expired tokens and ended sessions all give ErrUnauthenticated.
func (s *SessionService) Current(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	session, err := s.sessionRepository.Active(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if claims.Subject != strconv.FormatInt(session.UserID, 10) {
		return nil, ErrUnauthenticated
	}

	return session.Identity(), nil
}

// End invalidates the session behind token. Unknown or malformed tokens are ignored.
func (s *SessionService) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	// Expired tokens still name a row worth removing
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	err = s.sessionRepository.Delete(ctx, claims.SessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PruneExpired deletes sessions whose expiry has passed
func (s *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	return s.sessionRepository.DeleteExpired(ctx)
}

func (s *SessionService) parse(token string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *SessionService) SetCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
