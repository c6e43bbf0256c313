package controllers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"goonj/internal/delivery/http/helpers"
	"goonj/internal/domain"
)

// ListRegistrationsSuccessResponse is the success envelope for GET /admin/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Data  *domain.RegistrationListing `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{Logger: logger, Service: svc}
}

func filterFromQuery(r *http.Request) domain.RegistrationFilter {
	q := r.URL.Query()
	return domain.RegistrationFilter{
		Query:         q.Get("q"),
		Course:        q.Get("course"),
		Year:          q.Get("year"),
		PaymentStatus: q.Get("payment_status"),
	}
}

// ListRegistrations godoc
// @Summary List registrations
// @Description Filters the cached registration set. The first call, and any call with refresh=true, reads the full set from the store. When a refresh fails the last fetched data is returned with stale=true.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive substring of name, email, phone or transaction id"
// @Param course query string false "Exact course, or all"
// @Param year query string false "Exact year, or all"
// @Param payment_status query string false "pending, completed, or all"
// @Param refresh query bool false "Re-read from the store"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/registrations [get]
func (c *AdminController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	refresh := false
	if s := r.URL.Query().Get("refresh"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "refresh must be a boolean")
			return
		}
		refresh = v
	}
	listing, err := c.Service.List(r.Context(), filterFromQuery(r), refresh)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, listing)
}

// DeleteRegistration godoc
// @Summary Delete a registration
// @Description Permanently removes one registration and drops it from the cached view.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/registrations/{id} [delete]
func (c *AdminController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		if status, _ := helpers.StatusFor(err); status == http.StatusNotFound {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportRegistrations godoc
// @Summary Export registrations as CSV
// @Description Downloads the filtered registrations as CSV. Every field is quoted and the filename carries the export time.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param course query string false "Exact course, or all"
// @Param year query string false "Exact year, or all"
// @Param payment_status query string false "pending, completed, or all"
// @Success 200 {file} file "registrations-YYYYMMDD-HHMMSS.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations/export [get]
func (c *AdminController) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	filename, err := c.Service.Export(r.Context(), filterFromQuery(r), &buf)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
