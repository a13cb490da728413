package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/application"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/contracts"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

type Handler struct{ service *application.Service }

func NewHandler(service *application.Service) *Handler { return &Handler{service: service} }

func (h *Handler) getCache(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	item, err := h.service.GetCached(r.Context(), actor, chi.URLParam(r, "key"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	resp := contracts.GetCacheResponse{Key: item.Key, Found: item.Found, TTLSeconds: item.TTLSeconds}
	if item.Found {
		resp.Value = append([]byte(nil), item.Value...)
	}
	writeSuccess(w, http.StatusOK, "", resp)
}

func (h *Handler) putCache(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.PutCacheRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	item, err := h.service.PutCached(r.Context(), actor, chi.URLParam(r, "key"), req.Value, req.OperationType)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", contracts.PutCacheResponse{
		Key:        item.Key,
		StoredAt:   time.Now().UTC().Format(time.RFC3339),
		TTLSeconds: item.TTLSeconds,
	})
}

func (h *Handler) deleteCache(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if err := h.service.DeleteCached(r.Context(), actor, chi.URLParam(r, "key")); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]string{"key": chi.URLParam(r, "key")})
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if err := h.service.ClearCache(r.Context(), actor); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "cache cleared", nil)
}

func (h *Handler) cacheKeys(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	keys, err := h.service.CacheKeys(r.Context(), actor)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.CacheKeysResponse{Keys: keys})
}

func (h *Handler) getCacheMetrics(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	m, err := h.service.CacheMetrics(r.Context(), actor)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.MetricsResponse{
		Hits:      m.Hits,
		Misses:    m.Misses,
		Evictions: m.Evictions,
		HitRate:   m.HitRate(),
	})
}

func (h *Handler) trackCommand(w http.ResponseWriter, r *http.Request) {
	var req contracts.TrackCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	event := domain.CommandEvent{
		CommandName: strings.TrimSpace(req.CommandName),
		UserID:      strings.TrimSpace(req.UserID),
		GuildID:     strings.TrimSpace(req.GuildID),
		Success:     req.Success,
		ErrorKind:   strings.TrimSpace(req.ErrorKind),
	}
	if req.Timestamp != "" {
		ts, parseErr := time.Parse(time.RFC3339, req.Timestamp)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "invalid timestamp", requestIDFromContext(r.Context()))
			return
		}
		event.Timestamp = ts
	}
	if err := h.service.RecordCommand(r.Context(), event); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusAccepted, "recorded", nil)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	stats, err := h.service.UsageStats(r.Context(), actor)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.StatsResponse{
		TotalCommands:    stats.TotalCommands,
		CommandBreakdown: stats.CommandBreakdown,
		UniqueUsers:      stats.UniqueUsers,
		SuccessRate:      stats.SuccessRate,
		RecentErrors:     stats.RecentErrors,
	})
}

func (h *Handler) getDailyCount(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	count, err := h.service.DailyUsage(r.Context(), actor, date)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	if date == "" {
		date = domain.DayBucket(time.Now())
	}
	writeSuccess(w, http.StatusOK, "", contracts.DailyCountResponse{Date: date, Count: count})
}

func (h *Handler) resetStats(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if err := h.service.ResetUsage(r.Context(), actor); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "analytics reset", nil)
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.service.GetHealth(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeSuccess(w, status, "", health)
}
