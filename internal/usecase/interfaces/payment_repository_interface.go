package interfaces

import (
	"context"
	"errors"

	"payment_adapter/internal/domain/entities"
)

// ErrVersionConflict is returned by UpdateWithVersion when the stored aggregate
// version no longer matches the expected one. Callers re-read and retry; the
// repository never resolves the race itself.
var ErrVersionConflict = errors.New("payment version conflict")

// IPaymentRepository abstracts the commerce-platform store that owns the
// Payment aggregate. This adapter holds no database of its own: idempotency
// state is derived entirely from the aggregate's transaction/interaction
// history read through this interface.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByGatewayReference(ctx context.Context, reference string) (entities.Payment, error)
	// UpdateWithVersion persists the payment if the stored version equals
	// expectedVersion, bumping the version by one. A mismatch yields
	// ErrVersionConflict and leaves the stored aggregate untouched.
	UpdateWithVersion(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error)
}
