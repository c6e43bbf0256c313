package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"goonj/internal/delivery/http/helpers"
	"goonj/internal/domain"
	"goonj/internal/validation"
)

// IdempotencyKeyHeader carries the client's submission key. It wins over the body field.
const IdempotencyKeyHeader = "Idempotency-Key"

// QuoteRequest is the request body for POST /registrations/quote.
type QuoteRequest struct {
	EventIDs []string `json:"event_ids"`
}

// QuoteSuccessResponse is the success envelope for POST /registrations/quote (200).
type QuoteSuccessResponse struct {
	Data  *domain.Quote     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FormOptions lists the choices offered by the registration form. Course is free text, so
// Courses are suggestions; Years and PaymentMethods are the only accepted values.
type FormOptions struct {
	Courses        []string               `json:"courses"`
	Years          []string               `json:"years"`
	PaymentMethods []domain.PaymentMethod `json:"payment_methods"`
}

// FormOptionsSuccessResponse is the success envelope for GET /registrations/options (200).
type FormOptionsSuccessResponse struct {
	Data  FormOptions       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SubmitRegistrationRequest is the request body for POST /registrations. Field rules are
// enforced by the registration service so that every failing field is reported at once.
type SubmitRegistrationRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	College        string   `json:"college"`
	Course         string   `json:"course"`
	Year           string   `json:"year"`
	EventIDs       []string `json:"event_ids"`
	PaymentMethod  string   `json:"payment_method"`
	TransactionID  string   `json:"transaction_id"`
	IdempotencyKey string   `json:"idempotency_key"`
}

func (s SubmitRegistrationRequest) toInput(headerKey string) domain.SubmissionInput {
	key := strings.TrimSpace(headerKey)
	if key == "" {
		key = s.IdempotencyKey
	}
	return domain.SubmissionInput{
		Form: domain.RegistrationForm{
			Name:    s.Name,
			Email:   s.Email,
			Phone:   s.Phone,
			College: s.College,
			Course:  s.Course,
			Year:    s.Year,
		},
		EventIDs: s.EventIDs,
		Payment: domain.PaymentInfo{
			Method:        domain.PaymentMethod(strings.ToLower(strings.TrimSpace(s.PaymentMethod))),
			TransactionID: s.TransactionID,
		},
		IdempotencyKey: key,
	}
}

// SubmitRegistrationSuccessResponse is the success envelope for POST /registrations (201, or 200 on replay).
type SubmitRegistrationSuccessResponse struct {
	Data  *domain.SubmissionResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{Logger: logger, Service: svc}
}

// Options godoc
// @Summary Registration form choices
// @Description Course suggestions, accepted years and payment methods for the registration form.
// @Tags registrations
// @Produce json
// @Success 200 {object} controllers.FormOptionsSuccessResponse
// @Router /registrations/options [get]
func (c *RegistrationController) Options(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, FormOptions{
		Courses:        validation.Courses,
		Years:          validation.Years,
		PaymentMethods: []domain.PaymentMethod{domain.PaymentMethodUPI, domain.PaymentMethodCard},
	})
}

// Quote godoc
// @Summary Price a selection
// @Description Returns the selected events (deduplicated, ordered by event id) and their total in whole rupees.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body QuoteRequest true "Selected event ids"
// @Success 200 {object} controllers.QuoteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed (unknown event id)"
// @Router /registrations/quote [post]
func (c *RegistrationController) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	quote, err := c.Service.Quote(r.Context(), req.EventIDs)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, quote)
}

// Submit godoc
// @Summary Submit a registration
// @Description Validates the form against the selection, verifies card payments, and stores the registration as a single record. A repeated Idempotency-Key returns the stored registration with status 200.
// @Tags registrations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-generated submission key"
// @Param body body SubmitRegistrationRequest true "Registration form"
// @Success 201 {object} controllers.SubmitRegistrationSuccessResponse "data contains the stored registration"
// @Success 200 {object} controllers.SubmitRegistrationSuccessResponse "replay of an earlier submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_error"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed, error.fields lists each field"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Submit(r.Context(), req.toInput(r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	helpers.WriteJSONSuccess(w, status, result)
}
