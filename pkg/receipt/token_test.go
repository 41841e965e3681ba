package receipt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afara-labs/fundingchain/pkg/mandate"
	"github.com/afara-labs/fundingchain/pkg/receipt"
)

func sampleResult() *mandate.PaymentResult {
	return &mandate.PaymentResult{
		TransactionID: "txn_0123456789abcdef",
		Status:        mandate.ResultCompleted,
		Amount:        100,
		Currency:      "USD",
		Recipient:     "She Code Africa",
		Timestamp:     "2026-08-31T12:00:00Z",
		Simulation:    true,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := receipt.NewIssuer("test-issuer")
	require.NoError(t, err)

	token, err := issuer.Issue(sampleResult())
	require.NoError(t, err)

	claims, err := receipt.Verify(token, issuer.PublicKey())
	require.NoError(t, err)

	assert.Equal(t, "txn_0123456789abcdef", claims.TransactionID)
	assert.Equal(t, 100.0, claims.Amount)
	assert.Equal(t, "USD", claims.Currency)
	assert.Equal(t, "She Code Africa", claims.Recipient)
	assert.True(t, claims.Simulation)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestVerify_WrongKey(t *testing.T) {
	issuer, err := receipt.NewIssuer("test-issuer")
	require.NoError(t, err)
	other, err := receipt.NewIssuer("other-issuer")
	require.NoError(t, err)

	token, err := issuer.Issue(sampleResult())
	require.NoError(t, err)

	_, err = receipt.Verify(token, other.PublicKey())
	require.Error(t, err)
}

func TestVerify_TamperedToken(t *testing.T) {
	issuer, err := receipt.NewIssuer("test-issuer")
	require.NoError(t, err)

	token, err := issuer.Issue(sampleResult())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = receipt.Verify(tampered, issuer.PublicKey())
	require.Error(t, err)
}

func TestVerify_BadKeyEncoding(t *testing.T) {
	_, err := receipt.Verify("whatever", "zz-not-hex")
	require.Error(t, err)

	_, err = receipt.Verify("whatever", "abcd")
	require.Error(t, err, "truncated key must be rejected")
}

func TestNewIssuerFromSeed_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)

	a, err := receipt.NewIssuerFromSeed(seed, "seeded")
	require.NoError(t, err)
	b, err := receipt.NewIssuerFromSeed(seed, "seeded")
	require.NoError(t, err)

	assert.Equal(t, a.PublicKey(), b.PublicKey())

	token, err := a.Issue(sampleResult())
	require.NoError(t, err)
	_, err = receipt.Verify(token, b.PublicKey())
	require.NoError(t, err)
}

func TestNewIssuerFromSeed_BadLength(t *testing.T) {
	_, err := receipt.NewIssuerFromSeed([]byte{1, 2, 3}, "short")
	require.Error(t, err)
}
