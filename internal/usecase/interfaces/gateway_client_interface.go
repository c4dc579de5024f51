package interfaces

import "context"

// IGatewayClient abstracts the outbound HTTP call to the payment gateway.
//
// The wire protocol is a flat string map both ways: the request is sent
// form-encoded, the response carries at minimum a "status" discriminator and,
// on success-like outcomes, a "txid" gateway transaction id.
type IGatewayClient interface {
	Send(ctx context.Context, request map[string]string) (map[string]string, error)
}
