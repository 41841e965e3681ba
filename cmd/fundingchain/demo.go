package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/afara-labs/fundingchain/pkg/audit"
	"github.com/afara-labs/fundingchain/pkg/chain"
	"github.com/afara-labs/fundingchain/pkg/config"
	"github.com/afara-labs/fundingchain/pkg/receipt"
)

// runDemoCmd runs the full chain for one funding choice and prints each
// stage's summary, mirroring what the conversational collaborators
// would relay to the user.
func runDemoCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	org := fs.String("org", "She Code Africa", "initiative to fund")
	amount := fs.Float64("amount", 100.0, "funding amount in USD")
	decline := fs.Bool("decline", false, "withhold consent at the payment stage")
	session := fs.String("session", "", "session id (random when empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeStore()

	dir, err := openDirectory(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if ini, ok := dir.Find(*org); ok {
		fmt.Fprintf(stdout, "Initiative: %s (%s)\n  Verified by: %s\n", ini.Name, ini.HQ, ini.VerificationSource)
	} else {
		fmt.Fprintf(stdout, "Initiative: %s (not in the vetted directory)\n", *org)
	}

	sessionID := *session
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c := chain.New(store,
		chain.WithLogger(newLogger(cfg, stderr)),
		chain.WithAudit(audit.NewLoggerWithWriter(stderr)),
	)
	ctx := context.Background()

	intent, err := c.CreateIntent(ctx, sessionID, *org, *amount)
	if err != nil {
		fmt.Fprintf(stderr, "intent stage failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Intent %s created, expires %s\n", intent.IntentID, intent.IntentExpiry)

	cart, err := c.CreateCart(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(stderr, "cart stage failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Cart %s signed (%s), expires %s\n",
		cart.Contents.ID, cart.MerchantAuthorization, cart.Contents.CartExpiry)

	outcome, err := c.CreatePayment(ctx, sessionID, !*decline)
	if err != nil {
		fmt.Fprintf(stderr, "payment stage failed: %v\n", err)
		return 1
	}
	if outcome.Status == chain.OutcomeDeclined {
		fmt.Fprintln(stdout, "Payment declined by user; no funds moved.")
		return 0
	}

	fmt.Fprintf(stdout, "Funding of %s %.2f to %s transferred (simulated), transaction %s\n",
		outcome.Result.Currency, outcome.Result.Amount, outcome.Result.Recipient, outcome.Result.TransactionID)

	issuer, err := newIssuer(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	token, err := issuer.Issue(outcome.Result)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "Receipt token: %s\nVerification key: %s\n", token, issuer.PublicKey())
	return 0
}

func newIssuer(cfg *config.Config) (*receipt.Issuer, error) {
	if len(cfg.ReceiptKeySeed) > 0 {
		return receipt.NewIssuerFromSeed(cfg.ReceiptKeySeed, "fundingchain-settlement")
	}
	return receipt.NewIssuer("fundingchain-settlement")
}
