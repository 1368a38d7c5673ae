package request

import "encoding/json"

// ServicePaymentCreateRequest is the payload to pay a finished request.
//
// `mp_payload` is forwarded to Mercado Pago after enrichment; amount,
// description and external_reference are always set by the server.
type ServicePaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
