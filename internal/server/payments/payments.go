// Package payments wraps the external payment provider behind a small
// interface so services stay testable without network access.
package payments

import "context"

// IntentCreator mints a payment intent for the given amount and returns the
// client secret the browser needs to complete the charge.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}
