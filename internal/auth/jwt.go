package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"librarium/internal/config"
)

// MinSecretLength is the minimum JWT signing secret length in bytes.
const MinSecretLength = 32

var (
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenNotFresh = errors.New("fresh token required")
)

// Claims is the validated content of a bearer token.
type Claims struct {
	UserID    uint
	JTI       string
	Fresh     bool
	ExpiresAt time.Time
}

type tokenClaims struct {
	Fresh bool `json:"fresh"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed bearer tokens.
// Subject is the user ID; tokens issued at login are fresh, refreshed
// tokens are not.
type TokenService struct {
	signingKey []byte
	expiry     time.Duration
	timeFunc   func() time.Time // Injectable for testing
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.Auth) (*TokenService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &TokenService{
		signingKey: []byte(cfg.JWTSecret),
		expiry:     expiry,
		timeFunc:   time.Now,
	}, nil
}

// Issue creates a signed token for the user. The returned claims carry the
// JTI and expiry so callers can revoke the token later.
func (s *TokenService) Issue(userID uint, fresh bool) (string, *Claims, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.timeFunc()
	expiresAt := now.Add(s.expiry)

	claims := tokenClaims{
		Fresh: fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, &Claims{
		UserID:    userID,
		JTI:       jti,
		Fresh:     fresh,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates a signed token and returns its claims. Expired tokens map
// to ErrTokenExpired; every other failure maps to ErrTokenInvalid.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &Claims{
		UserID:    uint(userID),
		JTI:       claims.ID,
		Fresh:     claims.Fresh,
		ExpiresAt: expiresAt,
	}, nil
}

func generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
