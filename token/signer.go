package token

import (
	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/pkg/errors"
)

// Signer is an interface for signing and verifying JWT tokens
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwt.MapClaims) (string, error)

	// GetVerificationKey returns the key used to verify a parsed token
	GetVerificationKey(token *jwt.Token) (any, error)

	// GetSigningMethod returns the JWT signing method used
	GetSigningMethod() jwt.SigningMethod
}

// HMACSigner implements Signer using a symmetric HMAC-SHA key
type HMACSigner struct {
	secret []byte
	method jwt.SigningMethod
}

// NewHMACSigner creates a new HMAC signer for the given secret and algorithm
// name (HS256, HS384 or HS512). An empty secret or an unknown algorithm is a
// configuration error, surfaced at construction rather than per call.
func NewHMACSigner(secret, algorithm string) (*HMACSigner, error) {
	if secret == "" {
		return nil, apperrors.ErrMissingSigningKey
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, errors.Wrapf(apperrors.ErrUnsupportedAlgorithm, "%q", algorithm)
	}

	return &HMACSigner{
		secret: []byte(secret),
		method: method,
	}, nil
}

func (h *HMACSigner) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(h.method, claims)
	signedToken, err := token.SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}

func (h *HMACSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwt.SigningMethod {
	return h.method
}
