package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Session is the JSON probe behind the top-nav script: it reports whether
// the forwarded session cookie is valid and who it belongs to. Always 200;
// an invalid session is data, not an error.
func Session(c *api.Client, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := c.Me(r.Context(), r.Header.Get("Cookie"))
		if err != nil {
			log.Warn().Err(err).Msg("session probe failed")
			utils.Error(w, http.StatusBadGateway, "backend unreachable")
			return
		}
		if u == nil {
			utils.JSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": u})
	}
}
