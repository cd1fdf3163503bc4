package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/statpadgame/statpad-data/internal/api/respond"
	"github.com/statpadgame/statpad-data/internal/game"
)

// scoreRequest is the submission payload.
type scoreRequest struct {
	Date  string      `json:"date,omitempty"`
	Name  string      `json:"name,omitempty"`
	Picks []game.Pick `json:"picks"`
}

// PostScore validates and scores a full submission.
// @Summary Score a submission
// @Description Validates all five picks and returns total, per-row values, percentile, tier, and share line. Any invalid pick aborts scoring with the failing row and reason.
// @Tags score
// @Accept json
// @Produce json
// @Param submission body scoreRequest true "Picks, one per row"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /score [post]
func (h *Handler) PostScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}

	date := time.Now().In(h.cfg.ResetLocation())
	if req.Date != "" {
		var err error
		date, err = time.Parse(game.DateFormat, req.Date)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
	}
	if len(req.Picks) != game.NumRows {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PICKS", "exactly 5 picks are required")
		return
	}

	puzzle, err := h.generator.Generate(date)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GENERATION_FAILED", "Could not generate puzzle")
		return
	}

	result, err := game.Score(h.table, puzzle, game.Submission{Picks: req.Picks})
	if err != nil {
		if ipe, ok := game.AsInvalidPick(err); ok {
			respond.WritePickError(w, http.StatusUnprocessableEntity, string(ipe.Reason), ipe.Detail, ipe.Row)
			return
		}
		h.logger.Error("scoring failed", "date", puzzle.Date, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SCORING_FAILED", "Could not score submission")
		return
	}

	entry := h.board.Record(req.Name, result)

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"result":     result,
		"result_id":  entry.ID,
		"share_text": game.ShareText(puzzle, result, h.cfg.AppURL),
	})
}

// GetBoard returns the daily results board.
// @Summary Get daily results board
// @Tags score
// @Produce json
// @Param date query string false "Puzzle date (YYYY-MM-DD, default today)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /board [get]
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	date, err := h.puzzleDate(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	dateStr := date.Format(game.DateFormat)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"date":    dateStr,
		"entries": h.board.Top(dateStr, 25),
	})
}

// GetResult returns one recorded submission result, the share target.
// @Summary Get recorded result
// @Tags score
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} results.Entry
// @Failure 404 {object} respond.ErrorResponse
// @Router /results/{id} [get]
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := h.board.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No result with that id")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, entry)
}
