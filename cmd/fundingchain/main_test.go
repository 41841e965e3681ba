package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afara-labs/fundingchain/pkg/receipt"
)

func TestRun_NoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain"}, &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain", "bogus"}, &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown command")
}

func TestRun_Orgs(t *testing.T) {
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("DIRECTORY_PATH", "")

	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain", "orgs", "-region", "east-africa"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Pwani Teknowgalz")
	assert.NotContains(t, out.String(), "She Code Africa")
}

func TestRun_DemoEndToEnd(t *testing.T) {
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("DIRECTORY_PATH", "")
	t.Setenv("RECEIPT_KEY_SEED", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain", "demo", "-org", "She Code Africa", "-amount", "100"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	stdout := out.String()
	assert.Contains(t, stdout, "Intent fund_SHECODEAFR_")
	assert.Contains(t, stdout, "Cart cart_")
	assert.Contains(t, stdout, "transaction txn_")
	assert.Contains(t, stdout, "USD 100.00")

	// The printed receipt token must verify against the printed key.
	token := extractLine(t, stdout, "Receipt token: ")
	key := extractLine(t, stdout, "Verification key: ")
	claims, err := receipt.Verify(token, key)
	require.NoError(t, err)
	assert.Equal(t, "She Code Africa", claims.Recipient)
}

func TestRun_DemoDeclined(t *testing.T) {
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain", "demo", "-decline"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "declined")
	assert.NotContains(t, out.String(), "transaction txn_")
}

func TestRun_DemoRejectsBadAmount(t *testing.T) {
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out, errOut bytes.Buffer
	code := Run([]string{"fundingchain", "demo", "-amount", "-5"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "intent stage failed")
}

func extractLine(t *testing.T, output, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	t.Fatalf("no line with prefix %q in output:\n%s", prefix, output)
	return ""
}
