package response

import (
	"time"

	"payment_adapter/internal/domain/entities"
)

type TransactionResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	State          string    `json:"state"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	SequenceNumber int       `json:"sequence_number"`
	Timestamp      time.Time `json:"timestamp"`
}

type PaymentResponse struct {
	PaymentID        string                `json:"payment_id"`
	Version          int64                 `json:"version"`
	Interface        string                `json:"interface"`
	Method           string                `json:"method"`
	GatewayReference string                `json:"gateway_reference,omitempty"`
	RedirectURL      string                `json:"redirect_url,omitempty"`
	Amount           int64                 `json:"amount"`
	Currency         string                `json:"currency"`
	Transactions     []TransactionResponse `json:"transactions"`
	InteractionCount int                   `json:"interaction_count"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	txs := make([]TransactionResponse, 0, len(p.Transactions))
	for _, tx := range p.Transactions {
		txs = append(txs, TransactionResponse{
			ID:             tx.ID,
			Type:           string(tx.Type),
			State:          string(tx.State),
			Amount:         tx.Amount,
			Currency:       tx.Currency,
			SequenceNumber: tx.SequenceNumber,
			Timestamp:      tx.Timestamp,
		})
	}
	return PaymentResponse{
		PaymentID:        p.ID,
		Version:          p.Version,
		Interface:        p.Interface,
		Method:           p.Method,
		GatewayReference: p.GatewayReference,
		RedirectURL:      p.RedirectURL,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Transactions:     txs,
		InteractionCount: len(p.Interactions),
	}
}
