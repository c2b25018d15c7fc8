package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mingusapp/go-token-service/tiers"
	"github.com/pkg/errors"
)

// Token types carried in the "type" claim. Refresh tokens must never
// authenticate a request directly.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the decoded payload of a Mingus bearer token.
type Claims struct {
	Subject   string     `json:"sub"`
	Tier      tiers.Tier `json:"tier,omitempty"` // Access tokens only
	Type      string     `json:"type"`
	IssuedAt  time.Time  `json:"iat"`
	ExpiresAt time.Time  `json:"exp"`
	ID        string     `json:"jti"`
}

// claimsFromMap converts verified jwt claims into a Claims struct.
func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, errors.New("token missing sub claim")
	}

	tokenType, _ := mc["type"].(string)
	if tokenType == "" {
		return nil, errors.New("token missing type claim")
	}

	iat, _ := mc["iat"].(float64)
	exp, _ := mc["exp"].(float64)
	if exp == 0 {
		return nil, errors.New("token missing exp claim")
	}

	jti, _ := mc["jti"].(string)
	tier, _ := mc["tier"].(string)

	return &Claims{
		Subject:   sub,
		Tier:      tiers.Tier(tier),
		Type:      tokenType,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
		ID:        jti,
	}, nil
}
