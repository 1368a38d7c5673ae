package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendiente PaymentStatus = "pendiente"
	PaymentStatusAprobado  PaymentStatus = "aprobado"
	PaymentStatusRechazado PaymentStatus = "rechazado"
)

// ServicePayment is a client's payment for a finished service request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI service_request_id-index: service_request_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider body (JSON) for audit.
//   - MPPayload is the parsed representation, useful for querying/debugging.
type ServicePayment struct {
	ID               string        `json:"id"`
	ServiceRequestID string        `json:"service_request_id"`
	ClientID         string        `json:"client_id"`
	Amount           float64       `json:"amount"`
	Date             time.Time     `json:"date"`
	Status           PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// PaymentStatusFromProvider maps Mercado Pago statuses onto ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusAprobado
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusRechazado
	default:
		return PaymentStatusPendiente
	}
}
