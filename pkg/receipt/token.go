// Package receipt issues key-bound settlement receipt tokens. Unlike
// the chain's digest signatures, these are real Ed25519 signatures: the
// settlement collaborator can hand the token to a third party who
// verifies it against the issuer's public key alone.
package receipt

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/afara-labs/fundingchain/pkg/mandate"
)

// TokenTTL bounds how long a receipt token verifies.
const TokenTTL = 24 * time.Hour

// Claims are the receipt fields carried inside the token.
type Claims struct {
	jwt.RegisteredClaims

	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Recipient     string  `json:"recipient"`
	Simulation    bool    `json:"simulation"`
}

// Issuer signs receipt tokens with an Ed25519 key.
type Issuer struct {
	priv  ed25519.PrivateKey
	pub   ed25519.PublicKey
	keyID string
}

// NewIssuer creates an Issuer with a freshly generated key.
func NewIssuer(keyID string) (*Issuer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("receipt: key generation failed: %w", err)
	}
	return &Issuer{priv: priv, pub: pub, keyID: keyID}, nil
}

// NewIssuerFromSeed derives the key deterministically from a 32-byte
// seed, for deployments that need a stable verification key.
func NewIssuerFromSeed(seed []byte, keyID string) (*Issuer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("receipt: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Issuer{
		priv:  priv,
		pub:   priv.Public().(ed25519.PublicKey),
		keyID: keyID,
	}, nil
}

// PublicKey returns the hex-encoded verification key.
func (i *Issuer) PublicKey() string {
	return hex.EncodeToString(i.pub)
}

// Issue signs a receipt token over the settlement result.
func (i *Issuer) Issue(result *mandate.PaymentResult) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.keyID,
			Subject:   result.Recipient,
			ID:        result.TransactionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Recipient:     result.Recipient,
		Simulation:    result.Simulation,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(i.priv)
	if err != nil {
		return "", fmt.Errorf("receipt: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a receipt token against a hex-encoded Ed25519 public
// key and returns its claims.
func Verify(tokenString, pubKeyHex string) (*Claims, error) {
	pub, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("receipt: invalid public key hex: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("receipt: public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ed25519.PublicKey(pub), nil
	})
	if err != nil {
		return nil, fmt.Errorf("receipt: verify token: %w", err)
	}
	return &claims, nil
}
