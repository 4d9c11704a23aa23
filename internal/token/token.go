package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bra1695/backend-kanban/internal/models"
)

// Kind discriminates the three token classes. Consumers pass the kind they
// expect to Verify, so a reset token replayed against the session endpoint
// (or vice versa) is rejected even though all kinds share one signing key.
type Kind string

const (
	KindSession      Kind = "session"
	KindConfirmation Kind = "confirmation"
	KindReset        Kind = "reset"
)

const (
	ConfirmationTTL = 24 * time.Hour
	ResetTTL        = 15 * time.Minute
)

var (
	// ErrInvalid covers malformed tokens, bad signatures and kind mismatches.
	ErrInvalid = errors.New("token is invalid")
	// ErrExpired is returned for structurally valid tokens past their TTL.
	ErrExpired = errors.New("token has expired")
)

// Claims is the payload shared by all token kinds. Session tokens carry the
// identity fields; confirmation and reset tokens only carry the subject.
type Claims struct {
	Kind     Kind            `json:"kind"`
	Username string          `json:"username,omitempty"`
	Email    string          `json:"email,omitempty"`
	Type     models.UserType `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the decoded subject.
func (c *Claims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return id, nil
}

// Service signs and verifies the three token kinds with a process-wide
// secret. It is stateless; revocation happens at the caller by comparing
// against user state (e.g. the stored confirmation token).
type Service struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewService creates a token Service.
func NewService(secret string, sessionTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// IssueSession mints a session token carrying the user's identity claims.
func (s *Service) IssueSession(user *models.User) (string, error) {
	return s.sign(&Claims{
		Kind:     KindSession,
		Username: user.Username,
		Email:    user.Email,
		Type:     user.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueConfirmation mints an account-confirmation token valid for 24 hours.
func (s *Service) IssueConfirmation(userID uint64) (string, error) {
	return s.issueSubjectOnly(KindConfirmation, userID, ConfirmationTTL)
}

// IssueReset mints a password-reset token valid for 15 minutes.
func (s *Service) IssueReset(userID uint64) (string, error) {
	return s.issueSubjectOnly(KindReset, userID, ResetTTL)
}

func (s *Service) issueSubjectOnly(kind Kind, userID uint64, ttl time.Duration) (string, error) {
	// The jti keeps back-to-back tokens distinct; iat alone has second
	// granularity, and supersession compares token strings.
	return s.sign(&Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (s *Service) sign(claims *Claims) (string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, structure and expiry, and that the token is of
// the expected kind. Expiry is reported as ErrExpired, every other failure
// as ErrInvalid, so callers can distinguish both from "user not found".
func (s *Service) Verify(tokenString string, kind Kind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.Kind != kind {
		return nil, ErrInvalid
	}

	return claims, nil
}
