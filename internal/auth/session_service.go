package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmptyToken   = errors.New("token string is empty")
	ErrInvalidToken = errors.New("invalid session token")
)

const sessionIssuer = "cvbuilder"

// SessionService 负责签发与校验编辑会话令牌（HS256）。
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionClaims 是会话令牌中的业务字段。
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Session 是新签发的会话。
type Session struct {
	ID        string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSessionService 校验密钥长度并构造服务实例。
func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if len(strings.TrimSpace(secret)) < 32 {
		return nil, errors.New("session secret must be at least 32 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue starts a new editing session.
func (s *SessionService) Issue() (Session, error) {
	return s.IssueFor(uuid.NewString())
}

// IssueFor signs a fresh token for an existing session id.
func (s *SessionService) IssueFor(sessionID string) (Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Session{}, errors.New("session id is required")
	}
	now := s.now()
	expires := now.Add(s.ttl)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   sessionID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{ID: sessionID, Token: signed, ExpiresAt: expires}, nil
}

// Validate 解析并验证会话令牌。
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL 暴露会话有效期。
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
