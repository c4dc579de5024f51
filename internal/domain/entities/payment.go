package entities

import (
	"time"
)

// TransactionType identifies the financial operation requested from the gateway.

type TransactionType string

const (
	TransactionTypeAuthorization TransactionType = "AUTHORIZATION"
	TransactionTypeCharge        TransactionType = "CHARGE"
	TransactionTypeRefund        TransactionType = "REFUND"
)

// TransactionState tracks a transaction through its lifecycle. Transitions are
// monotonic toward a terminal state: PENDING may advance to SUCCESS or FAILURE,
// terminal states never move again.

type TransactionState string

const (
	TransactionStatePending TransactionState = "PENDING"
	TransactionStateSuccess TransactionState = "SUCCESS"
	TransactionStateFailure TransactionState = "FAILURE"
)

// InteractionKind classifies one audit entry in the payment's interaction log.

type InteractionKind string

const (
	InteractionKindRequest      InteractionKind = "REQUEST"
	InteractionKindResponse     InteractionKind = "RESPONSE"
	InteractionKindRedirect     InteractionKind = "REDIRECT"
	InteractionKindNotification InteractionKind = "NOTIFICATION"
)

// Transaction is one financial operation against the gateway.
//
// SequenceNumber is payment-scoped: it is assigned when the transaction is first
// executed and correlates outbound requests with inbound gateway notifications.
// It stays -1 until the executor binds it.
type Transaction struct {
	ID             string           `json:"id"`
	Type           TransactionType  `json:"type"`
	State          TransactionState `json:"state"`
	Amount         int64            `json:"amount"`
	Currency       string           `json:"currency"`
	SequenceNumber int              `json:"sequence_number"`
	Timestamp      time.Time        `json:"timestamp"`
}

// CanAdvanceTo reports whether moving to the given state is a legal forward
// transition. Terminal states are frozen; re-asserting the current state is not
// an advancement.
func (t Transaction) CanAdvanceTo(state TransactionState) bool {
	return t.State == TransactionStatePending && state != TransactionStatePending
}

// InterfaceInteraction is one immutable audit record: an outbound request, an
// inbound response/redirect or an asynchronous notification. Its presence for a
// transaction id doubles as the idempotency marker proving the corresponding
// gateway call already happened.
type InterfaceInteraction struct {
	ID             string            `json:"id"`
	Kind           InteractionKind   `json:"kind"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	SequenceNumber int               `json:"sequence_number"`
	Timestamp      time.Time         `json:"timestamp"`
	Payload        map[string]string `json:"payload,omitempty"`
}

// Payment is the aggregate root owned by the commerce platform.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (gateway_reference-index): gateway_reference
//
// Every write is a compare-and-swap on Version; history (Transactions and
// Interactions) is append-only and never rewritten in place.
type Payment struct {
	ID               string                 `json:"id"`
	Version          int64                  `json:"version"`
	Interface        string                 `json:"interface"`
	Method           string                 `json:"method"`
	GatewayReference string                 `json:"gateway_reference,omitempty"`
	RedirectURL      string                 `json:"redirect_url,omitempty"`
	Amount           int64                  `json:"amount"`
	Currency         string                 `json:"currency"`
	Transactions     []Transaction          `json:"transactions,omitempty"`
	Interactions     []InterfaceInteraction `json:"interactions,omitempty"`
}

// PendingTransaction returns the first transaction still in PENDING state, or
// false when every transaction is terminal. Dispatch processes at most this one
// transaction per call.
func (p Payment) PendingTransaction() (Transaction, bool) {
	for _, tx := range p.Transactions {
		if tx.State == TransactionStatePending {
			return tx, true
		}
	}
	return Transaction{}, false
}

// TransactionByID looks up a transaction by its id.
func (p Payment) TransactionByID(id string) (Transaction, bool) {
	for _, tx := range p.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// TransactionBySequence looks up the transaction bound to the given
// payment-scoped sequence number.
func (p Payment) TransactionBySequence(seq int) (Transaction, bool) {
	for _, tx := range p.Transactions {
		if tx.SequenceNumber == seq {
			return tx, true
		}
	}
	return Transaction{}, false
}

// NextSequenceNumber is the sequence number the next executed transaction must
// use: the count of REQUEST interactions recorded so far across the whole
// payment. The gateway expects this counter to grow over the payment's
// lifetime, not per transaction.
func (p Payment) NextSequenceNumber() int {
	n := 0
	for _, ia := range p.Interactions {
		if ia.Kind == InteractionKindRequest {
			n++
		}
	}
	return n
}

// WasExecuted reports whether a gateway call for the given transaction has
// already been issued or recorded: any REQUEST, RESPONSE or REDIRECT
// interaction correlated to the transaction id counts. NOTIFICATION entries do
// not, they originate from the gateway.
func (p Payment) WasExecuted(transactionID string) bool {
	for _, ia := range p.Interactions {
		if ia.TransactionID != transactionID {
			continue
		}
		switch ia.Kind {
		case InteractionKindRequest, InteractionKindResponse, InteractionKindRedirect:
			return true
		}
	}
	return false
}

// HasNotificationWithSequence reports whether a notification with the given
// delivery sequence number was already merged. This is the discriminator that
// keeps replayed deliveries from double-applying.
func (p Payment) HasNotificationWithSequence(seq int) bool {
	for _, ia := range p.Interactions {
		if ia.Kind == InteractionKindNotification && ia.SequenceNumber == seq {
			return true
		}
	}
	return false
}

// AddInteraction appends an audit record to the interaction log.
func (p *Payment) AddInteraction(ia InterfaceInteraction) {
	p.Interactions = append(p.Interactions, ia)
}

// AddTransaction appends a transaction to the history.
func (p *Payment) AddTransaction(tx Transaction) {
	p.Transactions = append(p.Transactions, tx)
}

// SetTransactionState advances the identified transaction to the given state.
// Illegal transitions (anything out of a terminal state) are ignored, keeping
// state changes monotonic regardless of delivery order.
func (p *Payment) SetTransactionState(transactionID string, state TransactionState) bool {
	for i := range p.Transactions {
		if p.Transactions[i].ID != transactionID {
			continue
		}
		if !p.Transactions[i].CanAdvanceTo(state) {
			return false
		}
		p.Transactions[i].State = state
		return true
	}
	return false
}

// BindSequenceNumber stores the payment-scoped sequence number on the
// identified transaction.
func (p *Payment) BindSequenceNumber(transactionID string, seq int) {
	for i := range p.Transactions {
		if p.Transactions[i].ID == transactionID {
			p.Transactions[i].SequenceNumber = seq
			return
		}
	}
}
