package controllers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"goonj/internal/delivery/http/helpers"
	"goonj/internal/domain"
)

// CatalogCategory is one category with its events, in catalog order.
type CatalogCategory struct {
	Category domain.Category        `json:"category"`
	Events   []domain.EventOffering `json:"events"`
}

// CatalogSuccessResponse is the success envelope for GET /catalog (200).
type CatalogSuccessResponse struct {
	Data  []CatalogCategory `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CategoryEventsSuccessResponse is the success envelope for GET /catalog/{category} (200).
type CategoryEventsSuccessResponse struct {
	Data  []domain.EventOffering `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type CatalogController struct {
	Logger  *slog.Logger
	Catalog domain.Catalog
}

func NewCatalogController(logger *slog.Logger, catalog domain.Catalog) *CatalogController {
	return &CatalogController{Logger: logger, Catalog: catalog}
}

// ListCatalog godoc
// @Summary List the event catalog
// @Description Returns every category with its events in display order. Prices are whole rupees.
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.CatalogSuccessResponse
// @Router /catalog [get]
func (c *CatalogController) ListCatalog(w http.ResponseWriter, r *http.Request) {
	categories := c.Catalog.ListCategories()
	out := make([]CatalogCategory, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CatalogCategory{Category: cat, Events: c.Catalog.ListEvents(cat)})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// ListCategoryEvents godoc
// @Summary List the events of one category
// @Tags catalog
// @Produce json
// @Param category path string true "Category (technical, cultural, gaming)"
// @Success 200 {object} controllers.CategoryEventsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /catalog/{category} [get]
func (c *CatalogController) ListCategoryEvents(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(r.PathValue("category"))))
	if !slices.Contains(c.Catalog.ListCategories(), category) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "category not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Catalog.ListEvents(category))
}
