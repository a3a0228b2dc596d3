package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

// AdminHandler serves login and the dashboard endpoints.
type AdminHandler struct {
	auth     AuthService
	activity ActivityService
	stats    StatsService
	logger   *logger.Logger
}

func NewAdminHandler(auth AuthService, activity ActivityService, stats StatsService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		auth:     auth,
		activity: activity,
		stats:    stats,
		logger:   log.Named("AdminHandler"),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	token, expiresAt, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

type viewResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId,omitempty"`
	UserEmail     string    `json:"userEmail,omitempty"`
	UserName      string    `json:"userName"`
	PropertyID    string    `json:"propertyId"`
	PropertyTitle string    `json:"propertyTitle"`
	ViewedAt      time.Time `json:"viewedAt"`
}

// HandleActivity lists recent property views, newest first.
func (h *AdminHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			writeError(w, r, h.logger, invalidInput("limit must be a non-negative number"))
			return
		}
		limit = n
	}

	views, err := h.activity.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]viewResponse, len(views))
	for i, v := range views {
		out[i] = viewResponse{
			ID:            v.ID,
			UserID:        v.UserID,
			UserEmail:     v.UserEmail,
			UserName:      v.UserName,
			PropertyID:    v.PropertyID,
			PropertyTitle: v.PropertyTitle,
			ViewedAt:      v.ViewedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"views": out, "count": len(out)})
}

type statsResponse struct {
	Properties int64 `json:"properties"`
	Queries    int64 `json:"queries"`
	Views      int64 `json:"views"`
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Properties: s.Properties, Queries: s.Queries, Views: s.Views})
}
