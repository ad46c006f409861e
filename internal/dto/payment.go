package dto

// WebhookAckDTO is the body returned to the payment gateway once an event
// has been handled.
type WebhookAckDTO struct {
	Received bool `json:"received"`
}
