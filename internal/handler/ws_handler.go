package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
	"github.com/iqbalrpambudi/disc-examination/internal/service"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the running elapsed time of an assessment session.
// The stream is display-only: ticks never mutate session state, and a
// client may drop and reconnect freely.
type WSHandler struct {
	assessments *service.AssessmentService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(assessments *service.AssessmentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		assessments: assessments,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// timerFrame is one tick on the elapsed-time stream.
type timerFrame struct {
	ElapsedSeconds int64               `json:"elapsed_seconds"`
	Status         model.SessionStatus `json:"status"`
}

// TimerStream godoc
// WS /ws/v1/assessments/:token/timer
// Pushes the elapsed seconds once per second while the session runs.
// The stream closes itself once the session completes or disappears.
func (h *WSHandler) TimerStream(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session token"})
		return
	}

	if _, err := h.assessments.GetSession(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("token", token.String()).Logger()
	wsLog.Info().Msg("Timer stream connected")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			wsLog.Debug().Msg("Timer stream context done")
			return
		case <-ticker.C:
			session, err := h.assessments.GetSession(c.Request.Context(), token)
			if err != nil {
				wsLog.Debug().Msg("Session gone, closing timer stream")
				return
			}

			elapsed, started := session.ElapsedSeconds(time.Now())
			if !started {
				continue
			}

			frame := timerFrame{ElapsedSeconds: elapsed, Status: session.Status}
			if err := conn.WriteJSON(frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Timer stream closed")
				}
				return
			}

			if session.Status == model.SessionStatusCompleted {
				wsLog.Info().Msg("Session completed, ending timer stream")
				return
			}
		}
	}
}
