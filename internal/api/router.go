package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Leads         *LeadHandler
	Export        *ExportHandler
	Health        Pinger
	WS            http.HandlerFunc // optional
	AllowedOrigin string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID(), CORS(deps.AllowedOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		if err := deps.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.WS != nil {
		r.GET("/ws", gin.WrapF(deps.WS))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/send-otp", deps.Leads.SendOTP)
		apiGroup.POST("/verify-otp", deps.Leads.VerifyOTP)
		apiGroup.GET("/leads", deps.Leads.GetLeads)
		apiGroup.GET("/sessions/:phone", deps.Leads.GetSession)
		apiGroup.GET("/export-leads", deps.Export.ExportLeads)
	}

	return r
}
