package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/afara-labs/fundingchain/pkg/receipt"
)

// runVerifyCmd checks a settlement receipt token against the issuer's
// public key.
func runVerifyCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	token := fs.String("token", "", "receipt token to verify")
	key := fs.String("key", "", "hex-encoded Ed25519 verification key")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *token == "" || *key == "" {
		fmt.Fprintln(stderr, "verify: both -token and -key are required")
		return 2
	}

	claims, err := receipt.Verify(*token, *key)
	if err != nil {
		fmt.Fprintf(stderr, "verification failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Receipt verified\n  Transaction: %s\n  Amount: %s %.2f\n  Recipient: %s\n  Simulation: %v\n",
		claims.TransactionID, claims.Currency, claims.Amount, claims.Recipient, claims.Simulation)
	return 0
}
