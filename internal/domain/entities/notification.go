package entities

// Notification statuses reported by the gateway for a transaction.
const (
	NotificationStatusCompleted = "completed"
	NotificationStatusPending   = "pending"
	NotificationStatusFailed    = "failed"
)

// Notification is an asynchronous gateway message reporting the real-world
// status of a transaction. It is never persisted standalone: dispatch merges it
// into the target Payment as a NOTIFICATION interaction plus, possibly, a
// transaction state change or a synthesized transaction.
type Notification struct {
	// TransactionID is the gateway's reference id, used to resolve the Payment.
	TransactionID string
	// Sequence is the payment-scoped sequence number the gateway echoes back.
	Sequence int
	Action   string
	Status   string
	Amount   int64
	Currency string
	// Raw keeps the full parsed payload for the audit interaction.
	Raw map[string]string
}
