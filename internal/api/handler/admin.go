package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/statpadgame/statpad-data/internal/api/respond"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/override"
)

// PutOverride creates or replaces the puzzle override for a date.
// @Summary Set puzzle override
// @Description Stores an admin-authored puzzle that supersedes generation for the date. The puzzle is validated structurally and every row is checked for feasibility.
// @Tags admin
// @Accept json
// @Produce json
// @Param date path string true "Puzzle date (YYYY-MM-DD)"
// @Param puzzle body game.Puzzle true "Override puzzle"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /admin/override/{date} [put]
func (h *Handler) PutOverride(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(game.DateFormat, date); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}

	var puzzle game.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&puzzle); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON puzzle")
		return
	}

	// Reject overrides with unplayable rows up front.
	stat, ok := game.StatCategories[puzzle.StatCategory]
	if ok {
		for i, row := range puzzle.Rows {
			if len(h.table.Query(row.Constraints(stat.ID))) == 0 {
				respond.WritePickError(w, http.StatusBadRequest, "INFEASIBLE_ROW",
					"row has no valid answers for "+stat.Description, i)
				return
			}
		}
	}

	if err := h.overrides.Set(date, &puzzle); err != nil {
		if errors.Is(err, override.ErrConflict) {
			respond.WriteErrorDetail(w, http.StatusConflict, "OVERRIDE_CONFLICT", "Override rejected", err.Error())
			return
		}
		h.logger.Error("override write failed", "date", date, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "WRITE_FAILED", "Could not persist override")
		return
	}

	// Drop any cached generated puzzle and leaders for that date.
	h.cache.Invalidate("puzzle:" + date)
	for i := 0; i < game.NumRows; i++ {
		h.cache.Invalidate(fmt.Sprintf("leaders:%s:%d", date, i))
	}

	h.logger.Info("override set", "date", date, "stat", puzzle.StatCategory)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "saved",
		"date":   date,
	})
}

// GetOverride returns the stored override for a date.
// @Summary Get puzzle override
// @Tags admin
// @Produce json
// @Param date path string true "Puzzle date (YYYY-MM-DD)"
// @Success 200 {object} game.Puzzle
// @Failure 404 {object} respond.ErrorResponse
// @Router /admin/override/{date} [get]
func (h *Handler) GetOverride(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	p, ok, err := h.overrides.Get(date)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusConflict, "OVERRIDE_CONFLICT", "Override store is malformed", err.Error())
		return
	}
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No override for "+date)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}

// DeleteOverride removes the override for a date.
// @Summary Delete puzzle override
// @Tags admin
// @Produce json
// @Param date path string true "Puzzle date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/override/{date} [delete]
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := h.overrides.Delete(date); err != nil {
		h.logger.Error("override delete failed", "date", date, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete override")
		return
	}
	h.cache.Invalidate("puzzle:" + date)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
		"date":   date,
	})
}

// ListOverrides returns every stored override.
// @Summary List puzzle overrides
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/overrides [get]
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	all, err := h.overrides.List()
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusConflict, "OVERRIDE_CONFLICT", "Override store is malformed", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"overrides": all,
	})
}
