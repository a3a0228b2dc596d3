package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

// QueryHandler accepts contact queries and lists them for the admin.
type QueryHandler struct {
	queries QueryService
	limits  UploadLimits
	logger  *logger.Logger
}

func NewQueryHandler(queries QueryService, limits UploadLimits, log *logger.Logger) *QueryHandler {
	limits.MaxFiles = 1
	return &QueryHandler{
		queries: queries,
		limits:  limits,
		logger:  log.Named("QueryHandler"),
	}
}

type queryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toQueryResponse(q *domain.Query) queryResponse {
	return queryResponse{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Message:   q.Message,
		Image:     q.Image,
		CreatedAt: q.CreatedAt,
	}
}

// HandleSubmit accepts a JSON body, or a multipart form with an optional
// "image" file.
func (h *QueryHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var (
		in    usecase.QueryInput
		image *usecase.ImageFile
	)

	if isMultipart(r) {
		if err := parseMultipart(w, r, h.limits); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		in = usecase.QueryInput{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Message: r.FormValue("message"),
		}
		files, closeFiles, err := openImages(r, "image")
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		defer closeFiles()
		if len(files) > 1 {
			writeError(w, r, h.logger, invalidInput("only one image may be attached"))
			return
		}
		if len(files) == 1 {
			image = &files[0]
		}
	} else if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	q, err := h.queries.Submit(r.Context(), in, image)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQueryResponse(q))
}

func (h *QueryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	queries, err := h.queries.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]queryResponse, len(queries))
	for i, q := range queries {
		out[i] = toQueryResponse(q)
	}
	writeJSON(w, http.StatusOK, map[string]any{"queries": out, "count": len(out)})
}

func (h *QueryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
