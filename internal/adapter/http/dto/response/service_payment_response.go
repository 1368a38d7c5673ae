package response

import (
	"mecanica_hub/internal/domain/entities"
	"time"
)

type ServicePaymentResponse struct {
	PaymentID        string    `json:"payment_id"`
	ServiceRequestID string    `json:"service_request_id"`
	ClientID         string    `json:"client_id"`
	Amount           float64   `json:"amount"`
	PaymentDate      time.Time `json:"payment_date"`
	Status           string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromServicePayment(p entities.ServicePayment) ServicePaymentResponse {
	return ServicePaymentResponse{
		PaymentID:        p.ID,
		ServiceRequestID: p.ServiceRequestID,
		ClientID:         p.ClientID,
		Amount:           p.Amount,
		PaymentDate:      p.Date,
		Status:           string(p.Status),
		MPPayloadRaw:     string(p.MPPayloadRaw),
		MPPayload:        p.MPPayload,
	}
}

func FromServicePayments(list []entities.ServicePayment) []ServicePaymentResponse {
	out := make([]ServicePaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromServicePayment(p))
	}
	return out
}
