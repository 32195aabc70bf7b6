package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/response"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The console API only listens locally.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h Handler) GetSession(c *gin.Context) {
	response.Success(c, sessionData(h.Session.Snapshot()))
}

func (h Handler) SubmitTopic(c *gin.Context) {
	var req dto.SubmitTopicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("SubmitTopic received request", zap.String("topic", req.Topic))

	// The remote job may be accepted after the caller hangs up; the
	// submission has to finish so the session can poll it.
	if err := h.Session.Submit(context.WithoutCancel(c.Request.Context()), req.Topic); err != nil {
		response.ErrorWithData(c, err, sessionData(h.Session.Snapshot()))
		return
	}
	response.Success(c, sessionData(h.Session.Snapshot()))
}

func (h Handler) ResetSession(c *gin.Context) {
	h.Session.Reset()
	response.Success(c, sessionData(h.Session.Snapshot()))
}

// SessionWS streams {snapshot, view} to the client every time the session
// changes. Messages from the client are ignored.
func (h Handler) SessionWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Warn("SessionWS upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	snapshots, unsubscribe := h.Session.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case s, ok := <-snapshots:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			if err := conn.WriteJSON(sessionData(s)); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
