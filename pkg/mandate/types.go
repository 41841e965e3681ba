// Package mandate defines the signed authorization records that make up
// the funding chain: IntentMandate, CartMandate and PaymentMandate, plus
// the settlement PaymentResult.
//
// Each record is the wire contract between two stages. Records are handed
// off by value as JSON through the state store; every consumer re-parses
// and re-validates before use, so a record is never trusted just because
// it was found under the expected key.
package mandate

import "time"

// Stage identifies one step of the mandate chain.
type Stage string

const (
	StageIntent  Stage = "intent"
	StageCart    Stage = "cart"
	StagePayment Stage = "payment"
)

// State store keys, one per stage record. The payment stage writes two
// records: the mandate and the settlement result.
const (
	KeyIntentMandate  = "intent_mandate"
	KeyCartMandate    = "cart_mandate"
	KeyPaymentMandate = "payment_mandate"
	KeyPaymentResult  = "payment_result"
)

// Fixed lifetimes for each credential. An expired record is refused by
// the next stage; it is never repaired or extended.
const (
	IntentTTL = time.Hour
	CartTTL   = 15 * time.Minute
)

// AmountCap is the maximum accepted funding amount in USD.
const AmountCap = 1_000_000

// Currency is the only settlement currency this chain supports.
const Currency = "USD"

// IntentMandate is the first credential: the user's declared wish to fund
// one organization with a specific amount.
type IntentMandate struct {
	IntentID string  `json:"intent_id"`
	OrgName  string  `json:"org_name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	NaturalLanguageDescription string   `json:"natural_language_description"`
	Merchants                  []string `json:"merchants"`
	SKUs                       []string `json:"skus,omitempty"`

	// IntentExpiry is timestamp + IntentTTL. RFC 3339 UTC.
	IntentExpiry string `json:"intent_expiry"`

	RequiresRefundability        bool `json:"requires_refundability"`
	UserCartConfirmationRequired bool `json:"user_cart_confirmation_required"`

	Timestamp string `json:"timestamp"`
}

// PaymentCurrencyAmount is a W3C PaymentRequest currency/value pair.
type PaymentCurrencyAmount struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// PaymentItem labels one amount in a payment request.
type PaymentItem struct {
	Label  string                `json:"label"`
	Amount PaymentCurrencyAmount `json:"amount"`
}

// PaymentMethodData describes one supported payment method.
type PaymentMethodData struct {
	SupportedMethods string         `json:"supported_methods"`
	Data             map[string]any `json:"data,omitempty"`
}

// PaymentDetailsInit carries the line items and total of an offer.
type PaymentDetailsInit struct {
	ID           string        `json:"id"`
	DisplayItems []PaymentItem `json:"display_items"`
	Total        PaymentItem   `json:"total"`
}

// PaymentOptions mirrors the W3C PaymentRequest options we care about.
type PaymentOptions struct {
	RequestShipping bool `json:"request_shipping"`
}

// PaymentRequest is the W3C-style payment request embedded in a cart.
type PaymentRequest struct {
	MethodData []PaymentMethodData `json:"method_data"`
	Details    PaymentDetailsInit  `json:"details"`
	Options    PaymentOptions      `json:"options"`
}

// CartContents is the signed portion of a CartMandate. The merchant
// authorization signature covers exactly these fields, so anything added
// here changes every cart signature.
type CartContents struct {
	ID string `json:"id"`

	// CartExpiry is timestamp + CartTTL. RFC 3339 UTC.
	CartExpiry string `json:"cart_expiry"`

	MerchantName                 string         `json:"merchant_name"`
	UserCartConfirmationRequired bool           `json:"user_cart_confirmation_required"`
	PaymentRequest               PaymentRequest `json:"payment_request"`
}

// CartMandate is the second credential: a time-boxed, signed offer from
// the organization to accept the funding on specific terms.
type CartMandate struct {
	Contents CartContents `json:"contents"`

	// MerchantAuthorization is the SIG_-prefixed digest signature over
	// Contents. It is a simulated signature derived from the canonical
	// form of the contents, not a key-bound commitment.
	MerchantAuthorization string `json:"merchant_authorization"`

	Timestamp string `json:"timestamp"`
}

// PaymentResponse carries the simulated payment method token.
type PaymentResponse struct {
	RequestID  string            `json:"request_id"`
	MethodName string            `json:"method_name"`
	Details    map[string]string `json:"details,omitempty"`
}

// PaymentMandateContents is the signed portion of a PaymentMandate.
type PaymentMandateContents struct {
	PaymentMandateID    string          `json:"payment_mandate_id"`
	PaymentDetailsID    string          `json:"payment_details_id"`
	PaymentDetailsTotal PaymentItem     `json:"payment_details_total"`
	PaymentResponse     PaymentResponse `json:"payment_response"`
	MerchantAgent       string          `json:"merchant_agent"`

	UserConsent bool `json:"user_consent"`
	// ConsentTimestamp is set only when UserConsent is true.
	ConsentTimestamp string `json:"consent_timestamp,omitempty"`

	Timestamp string `json:"timestamp"`
}

// PaymentMandate is the terminal credential authorizing the transfer.
type PaymentMandate struct {
	Contents     PaymentMandateContents `json:"payment_mandate_contents"`
	AgentPresent bool                   `json:"agent_present"`
}

// ResultStatus is the outcome recorded on a PaymentResult.
type ResultStatus string

const (
	ResultCompleted ResultStatus = "completed"
)

// PaymentResult is the settlement receipt. It is not part of the
// credential chain; no later stage consumes it.
type PaymentResult struct {
	TransactionID string       `json:"transaction_id"`
	Status        ResultStatus `json:"status"`
	Amount        float64      `json:"amount"`
	Currency      string       `json:"currency"`
	Recipient     string       `json:"recipient"`
	Timestamp     string       `json:"timestamp"`

	// Simulation is always true: no real funds move in this system.
	Simulation bool `json:"simulation"`
}
