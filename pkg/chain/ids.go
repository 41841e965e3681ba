package chain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/afara-labs/fundingchain/pkg/canonical"
)

// normalizeOrg reduces an organization name to its registry form:
// alphanumeric characters only, uppercased, truncated to 10.
func normalizeOrg(org string) string {
	var b strings.Builder
	for _, r := range org {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	id := strings.ToUpper(b.String())
	if len(id) > 10 {
		id = id[:10]
	}
	return id
}

// saltedDigest hashes seed and ts together with a random UUID, so two
// identical requests in the same second still produce distinct ids.
func saltedDigest(seed string, ts time.Time) string {
	input := seed + ts.Format(time.RFC3339Nano) + uuid.NewString()
	return canonical.HashBytes([]byte(input))
}

// intentID builds fund_<ORG10>_<unixsec>_<hash8>.
func intentID(org string, ts time.Time) string {
	return fmt.Sprintf("fund_%s_%d_%s", normalizeOrg(org), ts.Unix(), saltedDigest(org, ts)[:8])
}

// cartID builds cart_<hash12>.
func cartID(org string, ts time.Time) string {
	return "cart_" + saltedDigest(org, ts)[:12]
}

// paymentMandateID builds payment_<hash12> from the cart id.
func paymentMandateID(cartID string, ts time.Time) string {
	return "payment_" + saltedDigest(cartID, ts)[:12]
}

// transactionID builds txn_<hash16> from the cart id.
func transactionID(cartID string, ts time.Time) string {
	return "txn_" + saltedDigest(cartID, ts)[:16]
}
