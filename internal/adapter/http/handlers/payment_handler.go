package handlers

import (
	"errors"
	"log"
	"net/http"

	response "payment_adapter/internal/adapter/http/dto/response"
	"payment_adapter/internal/usecase"
	"payment_adapter/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the synchronous merchant-initiated trigger: it asks
// the processing usecase to dispatch the payment's pending transaction and
// translates the outcome to a transport status.

type PaymentHandler struct {
	usecase usecase.IPaymentProcessingUseCase
}

func NewPaymentHandler(uc usecase.IPaymentProcessingUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// DispatchPayment triggers one dispatch cycle for the payment in the path.
func (h *PaymentHandler) DispatchPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] dispatch start payment_id=%s", paymentID)

	result, err := h.usecase.ProcessPayment(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] dispatch failed payment_id=%s attempts=%d err=%v", paymentID, result.Attempts, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if result.Conflict {
		// Every attempt lost the optimistic race; the operation may already
		// have completed through the notification path, so this is not an
		// error. Callers poll or re-request.
		log.Printf("[payment][handler] dispatch accepted after conflicts payment_id=%s attempts=%d", paymentID, result.Attempts)
		c.JSON(http.StatusAccepted, gin.H{"status": "processing", "payment_id": paymentID})
		return
	}

	log.Printf("[payment][handler] dispatch success payment_id=%s attempts=%d", paymentID, result.Attempts)
	c.JSON(http.StatusOK, response.FromPayment(result.Payment))
}

// GetPayment returns the current aggregate state.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] get start payment_id=%s", paymentID)

	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid payment id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWrongGatewayInterface):
		return pkg.NewDomainErrorSimple("WRONG_GATEWAY_INTERFACE", "Payment belongs to a different gateway interface", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentStore):
		return pkg.NewDomainError("PAYMENT_STORE_UNAVAILABLE", "Payment store failed, retry later", err, http.StatusBadGateway)
	default:
		// Unmapped methods and unrecognized gateway statuses are wiring faults,
		// not caller input.
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
