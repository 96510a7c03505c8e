package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
)

// SessionClaims is the decoded session state. There is no server-side
// session row; the token is the session.
type SessionClaims struct {
	UserID    uint
	Email     string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// TokenService issues signed session tokens and opaque single-use tokens
// for the invitation and reset flows.
type TokenService struct {
	secretKey  string
	sessionTTL time.Duration
}

func NewTokenService(secretKey string, sessionTTL time.Duration) *TokenService {
	if sessionTTL <= 0 {
		sessionTTL = constants.SessionTokenTTL
	}
	return &TokenService{
		secretKey:  secretKey,
		sessionTTL: sessionTTL,
	}
}

// GenerateSessionToken creates a signed HS256 token carrying identity and
// role claims plus a jti for revocation.
func (s *TokenService) GenerateSessionToken(userID uint, email, role string) (string, *SessionClaims, error) {
	now := time.Now()
	expiresAt := now.Add(s.sessionTTL)
	jti := uuid.NewString()

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"jti":     jti,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", nil, err
	}

	return tokenString, &SessionClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateSessionToken verifies signature and expiry and returns the
// decoded claims.
func (s *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("missing user_id claim")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)

	var expiresAt time.Time
	if expFloat, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(expFloat), 0)
	}

	return &SessionClaims{
		UserID:    uint(userIDFloat),
		Email:     email,
		Role:      role,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateOpaqueToken creates a URL-safe random token for invitation and
// reset links.
func (s *TokenService) GenerateOpaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateTempPassword creates the random temporary password handed to an
// invited user. It is stored only as a bcrypt hash.
func (s *TokenService) GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}
