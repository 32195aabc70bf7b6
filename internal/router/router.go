package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/handler"
)

func SetupRouter(r *gin.Engine, hdl handler.Handler) {
	api := r.Group("/api")
	{
		api.GET("/session", hdl.GetSession)
		api.POST("/session/submit", hdl.SubmitTopic)
		api.POST("/session/reset", hdl.ResetSession)
		api.GET("/session/ws", hdl.SessionWS)
		api.GET("/history", hdl.GetHistory)
		api.DELETE("/history/:id", hdl.DeleteHistory)
		api.GET("/episodes/*filepath", hdl.DownloadEpisode)
		api.HEAD("/episodes/*filepath", hdl.DownloadEpisode)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}
