package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/listing"
	"github.com/Rushibhatt10/HBEstate/internal/property/pricing"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

// Visitor headers identify who is looking at a property page.
const (
	HeaderVisitorID    = "X-Visitor-Id"
	HeaderVisitorEmail = "X-Visitor-Email"
	HeaderVisitorName  = "X-Visitor-Name"
)

// PropertyHandler serves the public listing and the admin property editor.
type PropertyHandler struct {
	properties PropertyService
	photos     PhotoService
	activity   ActivityService
	limits     UploadLimits
	logger     *logger.Logger
}

func NewPropertyHandler(properties PropertyService, photos PhotoService, activity ActivityService, limits UploadLimits, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		photos:     photos,
		activity:   activity,
		limits:     limits,
		logger:     log.Named("PropertyHandler"),
	}
}

type listingResponse struct {
	Properties []map[string]any `json:"properties"`
	Facets     listing.Facets   `json:"facets"`
	Total      int              `json:"total"`
	Count      int              `json:"count"`
}

// HandleList serves the filtered, sorted listing page with its facets.
func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	state, err := filterState(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.properties.Browse(r.Context(), state)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := listingResponse{
		Properties: make([]map[string]any, len(view.Properties)),
		Facets:     view.Facets,
		Total:      view.Total,
		Count:      len(view.Properties),
	}
	for i, np := range view.Properties {
		resp.Properties[i] = propertyJSON(np.Property)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet serves a property page and records the view.
func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.activity.LogView(r.Context(), usecase.ViewInput{
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		UserID:        r.Header.Get(HeaderVisitorID),
		UserEmail:     r.Header.Get(HeaderVisitorEmail),
		UserName:      r.Header.Get(HeaderVisitorName),
	})
	writeJSON(w, http.StatusOK, propertyJSON(p))
}

// HandleAdminGet serves a property to the editor without logging a view.
func (h *PropertyHandler) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(p))
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	p, err := h.properties.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, propertyJSON(p))
}

func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	p, err := h.properties.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(p))
}

func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.properties.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttachImages appends the multipart "images" files to a gallery.
func (h *PropertyHandler) HandleAttachImages(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.limits); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	files, closeFiles, err := openImages(r, "images")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	defer closeFiles()

	p, err := h.properties.AttachImages(r.Context(), chi.URLParam(r, "id"), files)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(p))
}

func (h *PropertyHandler) HandleRemoveImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, h.logger, invalidInput("image index must be a number"))
		return
	}
	p, err := h.properties.RemoveImage(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(p))
}

// HandleUpload stores images that are not yet tied to a property, for
// forms that collect image URLs before saving.
func (h *PropertyHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.limits); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	files, closeFiles, err := openImages(r, "images")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	defer closeFiles()

	urls, err := h.photos.Upload(r.Context(), files)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"urls": urls})
}

func (h *PropertyHandler) readInput(w http.ResponseWriter, r *http.Request) (usecase.PropertyInput, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return usecase.PropertyInput{}, err
	}
	return parsePropertyInput(raw)
}

// filterState reads the listing query parameters. Price bounds accept the
// same notation as stored prices, such as "50 lakh" or "1.2 Cr".
func filterState(r *http.Request) (listing.FilterState, error) {
	q := r.URL.Query()
	state := listing.FilterState{
		Query:    q.Get("q"),
		Type:     q.Get("type"),
		Bedrooms: q.Get("bhk"),
		Sort:     listing.ParseSortMode(q.Get("sort")),
	}

	for _, bound := range []struct {
		name string
		dst  **float64
	}{
		{"min_price", &state.MinPrice},
		{"max_price", &state.MaxPrice},
	} {
		raw := strings.TrimSpace(q.Get(bound.name))
		if raw == "" {
			continue
		}
		v, ok := pricing.ParseText(raw)
		if !ok {
			return state, invalidInput(fmt.Sprintf("%s %q is not a price", bound.name, raw))
		}
		*bound.dst = &v
	}
	return state, nil
}
