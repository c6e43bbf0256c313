package controllers

import (
	"log/slog"
	"net/http"

	"goonj/internal/delivery/http/helpers"
	"goonj/internal/domain"
)

// CreatePaymentIntentRequest is the request body for POST /payments/intents.
type CreatePaymentIntentRequest struct {
	EventIDs []string `json:"event_ids"`
	Amount   int64    `json:"amount"`
}

// Validate implements Validator.
func (c CreatePaymentIntentRequest) Validate() []string {
	var errs []string
	if len(c.EventIDs) == 0 {
		errs = append(errs, "event_ids is required")
	}
	if c.Amount < 0 {
		errs = append(errs, "amount must not be negative")
	}
	return errs
}

// CreatePaymentIntentSuccessResponse is the success envelope for POST /payments/intents (201).
type CreatePaymentIntentSuccessResponse struct {
	Data  *domain.PaymentIntent `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{Logger: logger, Service: svc}
}

// CreateIntent godoc
// @Summary Create a card payment intent
// @Description Prices the selection from the catalog and opens a payment intent for it. The client confirms the intent and submits its id as transaction_id.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body CreatePaymentIntentRequest true "Selected event ids and the total the client expects"
// @Success 201 {object} controllers.CreatePaymentIntentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_error"
// @Router /payments/intents [post]
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	intent, err := c.Service.CreateIntent(r.Context(), domain.PaymentIntentRequest{EventIDs: req.EventIDs, Amount: req.Amount})
	if err != nil {
		c.Logger.WarnContext(r.Context(), "payment intent not created", "err", err)
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, intent)
}
