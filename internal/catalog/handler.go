package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"searchbox/internal/domain"
)

// Handler serves the catalog endpoints.
type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Products: h.catalog.Len()})
}

// HandleProducts answers GET /Products with the products matching $filter.
func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	needle, err := ParseFilter(r.URL.Query().Get("$filter"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, domain.ProductPage{Value: h.catalog.Search(needle)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("catalog: failed to write response", "err", err)
	}
}
