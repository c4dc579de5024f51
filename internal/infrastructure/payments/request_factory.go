package payments

import (
	"fmt"
	"strconv"

	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase/interfaces"
)

// Gateway request names per transaction type.
const (
	requestPreauthorization = "preauthorization"
	requestCapture          = "capture"
	requestRefund           = "refund"
)

// DefaultRequestFactory assembles the outbound gateway request from the
// payment aggregate. Richer payload enrichment (cart/order data) belongs to
// the commerce platform integration, not here.
type DefaultRequestFactory struct {
	merchantID string
}

var _ interfaces.IRequestFactory = (*DefaultRequestFactory)(nil)

func NewDefaultRequestFactory(merchantID string) *DefaultRequestFactory {
	return &DefaultRequestFactory{merchantID: merchantID}
}

func (f *DefaultRequestFactory) BuildRequest(p entities.Payment, tx entities.Transaction, sequenceNumber int) (map[string]string, error) {
	var requestName string
	switch tx.Type {
	case entities.TransactionTypeAuthorization:
		requestName = requestPreauthorization
	case entities.TransactionTypeCharge:
		requestName = requestCapture
	case entities.TransactionTypeRefund:
		requestName = requestRefund
	default:
		return nil, fmt.Errorf("no gateway request for transaction type %s", tx.Type)
	}

	request := map[string]string{
		"request":        requestName,
		"mid":            f.merchantID,
		"reference":      p.ID,
		"amount":         strconv.FormatInt(tx.Amount, 10),
		"currency":       tx.Currency,
		"sequencenumber": strconv.Itoa(sequenceNumber),
	}
	if p.GatewayReference != "" {
		request["txid"] = p.GatewayReference
	}
	return request, nil
}
