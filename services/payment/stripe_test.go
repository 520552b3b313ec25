package payment_test

import (
	"context"
	"errors"
	"testing"

	"spacebook/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func fetcher(pi *stripe.PaymentIntent, err error) payment.IntentFetcher {
	return func(id string) (*stripe.PaymentIntent, error) { return pi, err }
}

func TestVerifyCardPayment(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	succeeded := &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 70000, Currency: stripe.CurrencyUSD}

	ok, err := payment.NewStripeVerifierWithFetcher(fetcher(succeeded, nil), "usd", log).VerifyCardPayment(ctx, "pi_1", 700)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = payment.NewStripeVerifierWithFetcher(fetcher(succeeded, nil), "usd", log).VerifyCardPayment(ctx, "pi_1", 700.01)
	require.NoError(t, err)
	assert.False(t, ok)

	pending := &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusProcessing, AmountReceived: 0}
	ok, err = payment.NewStripeVerifierWithFetcher(fetcher(pending, nil), "usd", log).VerifyCardPayment(ctx, "pi_2", 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCardPaymentErrors(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	notFound := &stripe.Error{HTTPStatusCode: 404}
	ok, err := payment.NewStripeVerifierWithFetcher(fetcher(nil, notFound), "usd", log).VerifyCardPayment(ctx, "pi_x", 10)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = payment.NewStripeVerifierWithFetcher(fetcher(nil, errors.New("network down")), "usd", log).VerifyCardPayment(ctx, "pi_x", 10)
	assert.Error(t, err)
}

func TestVerifyCardPaymentCurrency(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()
	eur := &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 70000, Currency: stripe.CurrencyEUR}

	ok, err := payment.NewStripeVerifierWithFetcher(fetcher(eur, nil), "USD", log).VerifyCardPayment(ctx, "pi_3", 700)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = payment.NewStripeVerifierWithFetcher(fetcher(eur, nil), "", log).VerifyCardPayment(ctx, "pi_3", 700)
	require.NoError(t, err)
	assert.True(t, ok)
}
