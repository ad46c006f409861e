package payment

import "context"

const (
	// EventCheckoutSessionCompleted is the only event type that moves money
	// into a job posting.
	EventCheckoutSessionCompleted = "checkout.session.completed"

	// MetadataJobID is the checkout session metadata key that links a
	// payment back to its job.
	MetadataJobID = "job_id"
)

type CheckoutRequest struct {
	JobID    string
	JobTitle string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Event is a verified gateway event reduced to the fields reconciliation
// reads.
type Event struct {
	ID              string
	Type            string
	SessionID       string
	PaymentIntentID string
	Metadata        map[string]string
}

// Gateway is the payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// VerifyEvent authenticates payload against its signature header and
	// decodes it. It fails for any payload that was not signed with the
	// configured secret.
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
