package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// IntentFetcher loads a PaymentIntent by id.
type IntentFetcher func(id string) (*stripe.PaymentIntent, error)

// StripeVerifier confirms card payments against Stripe PaymentIntents.
type StripeVerifier struct {
	fetch    IntentFetcher
	currency stripe.Currency
	logger   *zap.Logger
}

// NewStripeVerifier sets the global Stripe key and returns a verifier using it.
// An empty currency accepts intents in any currency.
func NewStripeVerifier(key, currency string, logger *zap.Logger) *StripeVerifier {
	stripe.Key = key
	return NewStripeVerifierWithFetcher(func(id string) (*stripe.PaymentIntent, error) {
		return paymentintent.Get(id, nil)
	}, currency, logger)
}

// NewStripeVerifierWithFetcher is used where the Stripe API must not be called.
func NewStripeVerifierWithFetcher(fetch IntentFetcher, currency string, logger *zap.Logger) *StripeVerifier {
	return &StripeVerifier{
		fetch:    fetch,
		currency: stripe.Currency(strings.ToLower(strings.TrimSpace(currency))),
		logger:   logger,
	}
}

// VerifyCardPayment reports whether reference is a succeeded PaymentIntent that
// received at least amount (in major units).
func (v *StripeVerifier) VerifyCardPayment(ctx context.Context, reference string, amount float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	pi, err := v.fetch(reference)
	if err != nil {
		if se, ok := err.(*stripe.Error); ok && se.HTTPStatusCode == 404 {
			v.logger.Info("Unknown payment intent", zap.String("reference", reference))
			return false, nil
		}
		return false, fmt.Errorf("fetch payment intent %s: %w", reference, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		v.logger.Info("Payment intent not succeeded",
			zap.String("reference", reference), zap.String("status", string(pi.Status)))
		return false, nil
	}
	if v.currency != "" && pi.Currency != v.currency {
		v.logger.Info("Payment intent currency mismatch",
			zap.String("reference", reference),
			zap.String("currency", string(pi.Currency)),
			zap.String("expected", string(v.currency)))
		return false, nil
	}
	want := int64(math.Round(amount * 100))
	if pi.AmountReceived < want {
		v.logger.Info("Payment intent amount too low",
			zap.String("reference", reference),
			zap.Int64("received", pi.AmountReceived),
			zap.Int64("expected", want))
		return false, nil
	}
	return true, nil
}
