package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

const productName = "Job Posting"

// StripeGateway is the Stripe Checkout implementation of Gateway.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	price         int64
	currency      string
	successURL    string
	cancelURL     string
}

var _ Gateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg config.StripeConfig, app config.AppConfig) *StripeGateway {
	return &StripeGateway{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		price:         cfg.PriceAmount,
		currency:      strings.ToLower(cfg.Currency),
		successURL:    app.PublicURL("/post-job/success?session_id={CHECKOUT_SESSION_ID}"),
		cancelURL:     app.PublicURL("/post-job"),
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(g.price),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String(req.JobTitle),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata(MetadataJobID, req.JobID)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, err
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if evt.Type != stripe.EventTypeCheckoutSessionCompleted || evt.Data == nil {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	out.SessionID = sess.ID
	out.Metadata = sess.Metadata
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out, nil
}
