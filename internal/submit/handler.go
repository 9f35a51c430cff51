package submit

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

// Handler exposes the submission action over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new submission handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RequestOffer handles POST /offers/request. The body is a flat mapping of
// form field names to string values, either JSON or form-encoded. All
// validated outcomes return 200 with the discriminated Result; the UI decides
// what to render from the Result shape, not the status code.
func (h *Handler) RequestOffer(w http.ResponseWriter, r *http.Request) {
	values, err := decodeFormValues(r)
	if err != nil {
		h.logger.Error("failed to decode submission body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.service.Submit(r.Context(), values)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode submission result", "error", err)
	}
}

// FormSchema handles GET /forms/cash-offer/schema. It serves the validation
// rule table so the browser form pre-validates with the same rules the server
// enforces.
func (h *Handler) FormSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"form":  "cash-offer",
		"rules": lead.Rules(),
	})
}

func decodeFormValues(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var values map[string]string
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, err
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values, nil
}
