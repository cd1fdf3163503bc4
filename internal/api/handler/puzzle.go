package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/statpadgame/statpad-data/internal/api/respond"
	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/game"
)

// GetPuzzle returns the puzzle for a date (today by default).
// @Summary Get daily puzzle
// @Description Returns the stat category and five criteria rows for a date. Deterministic per date unless an admin override exists.
// @Tags puzzle
// @Produce json
// @Param date query string false "Puzzle date (YYYY-MM-DD, default today)"
// @Success 200 {object} game.Puzzle
// @Failure 400 {object} respond.ErrorResponse
// @Router /puzzle [get]
func (h *Handler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	date, err := h.puzzleDate(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	ttl := h.puzzleTTL(date)
	cacheKey := "puzzle:" + date.Format(game.DateFormat)

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	puzzle, err := h.generator.Generate(date)
	if err != nil {
		h.logger.Error("puzzle generation failed", "date", date, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "GENERATION_FAILED", "Could not generate puzzle")
		return
	}

	data, err := json.Marshal(puzzle)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode puzzle")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetLeaders returns the top-5 valid player-seasons for one puzzle row.
// @Summary Get row leaderboard
// @Tags puzzle
// @Produce json
// @Param date query string false "Puzzle date (YYYY-MM-DD, default today)"
// @Param row query int true "Row index (0-4)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /leaders [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	date, err := h.puzzleDate(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	row, err := strconv.Atoi(r.URL.Query().Get("row"))
	if err != nil || row < 0 || row >= game.NumRows {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ROW",
			fmt.Sprintf("row must be an integer in [0,%d]", game.NumRows-1))
		return
	}

	ttl := h.puzzleTTL(date)
	cacheKey := fmt.Sprintf("leaders:%s:%d", date.Format(game.DateFormat), row)

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	puzzle, err := h.generator.Generate(date)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GENERATION_FAILED", "Could not generate puzzle")
		return
	}
	stat := game.StatCategories[puzzle.StatCategory]
	leaders := game.RowLeaders(h.table, stat, puzzle.Rows[row], 5)

	data, err := json.Marshal(map[string]interface{}{
		"date":    puzzle.Date,
		"row":     row,
		"stat":    stat.ID,
		"leaders": leaders,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode leaders")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// SearchPlayers returns autocomplete candidates for one puzzle row.
// @Summary Search players under row criteria
// @Tags puzzle
// @Produce json
// @Param date query string false "Puzzle date (YYYY-MM-DD, default today)"
// @Param row query int true "Row index (0-4)"
// @Param q query string true "Name query (min 2 chars)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	date, err := h.puzzleDate(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	row, err := strconv.Atoi(r.URL.Query().Get("row"))
	if err != nil || row < 0 || row >= game.NumRows {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ROW",
			fmt.Sprintf("row must be an integer in [0,%d]", game.NumRows-1))
		return
	}
	query := r.URL.Query().Get("q")
	if len(query) < 2 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_QUERY", "q must be at least 2 characters")
		return
	}

	puzzle, err := h.generator.Generate(date)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GENERATION_FAILED", "Could not generate puzzle")
		return
	}

	constraints := puzzle.Rows[row].Constraints(puzzle.StatCategory)
	matches := h.table.SearchPlayers(query, constraints, 10)

	type candidate struct {
		Player    string  `json:"player"`
		Season    int     `json:"season"`
		Team      string  `json:"team"`
		Position  string  `json:"position"`
		StatValue float64 `json:"stat_value"`
	}
	out := make([]candidate, 0, len(matches))
	for _, m := range matches {
		v, _ := m.Stat(puzzle.StatCategory)
		out = append(out, candidate{
			Player: m.Player, Season: m.Season, Team: m.Team,
			Position: m.Position, StatValue: v,
		})
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"date":    puzzle.Date,
		"row":     row,
		"query":   query,
		"players": out,
	})
}
