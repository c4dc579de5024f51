package interfaces

import "payment_adapter/internal/domain/entities"

// IRequestFactory builds the outbound gateway request for one transaction.
// Field-by-field payload assembly from cart/order data lives behind this
// interface; the executor only cares that the request carries the bound
// sequence number.

type IRequestFactory interface {
	BuildRequest(p entities.Payment, tx entities.Transaction, sequenceNumber int) (map[string]string, error)
}
