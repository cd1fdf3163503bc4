package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/statpadgame/statpad-data/internal/api/respond"
	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/game"
)

// GetStatDefinitions returns the stat catalog.
// @Summary Get stat definitions
// @Description Returns every stat category with display metadata and eligible positions.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats/definitions [get]
func (h *Handler) GetStatDefinitions(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, "stat_defs", func() (interface{}, error) {
		defs := make([]game.StatCategory, 0, len(game.StatCategories))
		for _, id := range game.StatIDs() {
			defs = append(defs, game.StatCategories[id])
		}
		return map[string]interface{}{"definitions": defs}, nil
	})
}

// GetTeams returns the team registry.
// @Summary Get team registry
// @Description Returns all 32 franchises with division, plus division and conference lists.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, "teams", func() (interface{}, error) {
		teams := make([]game.Team, 0, len(game.Teams))
		for _, t := range game.Teams {
			teams = append(teams, t)
		}
		sort.Slice(teams, func(i, j int) bool { return teams[i].Abbr < teams[j].Abbr })
		return map[string]interface{}{
			"teams":       teams,
			"divisions":   game.Divisions,
			"conferences": game.Conferences,
		}, nil
	})
}

// serveStatic caches and serves a static catalog payload with ETag handling.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request, cacheKey string, build func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLStatic, true)
		return
	}

	v, err := build()
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "BUILD_FAILED", "Could not build response")
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLStatic)
	respond.WriteJSON(w, data, etag, cache.TTLStatic, false)
}
