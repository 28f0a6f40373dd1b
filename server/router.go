package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/placeatlas/ops-portal/internal/alert"
	"github.com/placeatlas/ops-portal/server/handles"
	"github.com/placeatlas/ops-portal/server/middlewares"
)

func Init(e *gin.Engine, d *alert.Dispatcher) {
	Cors(e)
	handles.SetDispatcher(d)

	api := e.Group("/api")
	api.POST("/auth/login", handles.Login)

	auth := api.Group("", middlewares.Auth)
	auth.GET("/me", handles.Me)
	auth.POST("/auth/logout", handles.Logout)
	auth.POST("/auth/logout_all", handles.LogoutAll)
	auth.GET("/me/sessions", handles.ListMySessions)
	auth.POST("/me/sessions/revoke", handles.RevokeMySession)

	admin := auth.Group("/admin")
	admin.GET("/users/:id/sessions", handles.ListUserSessions)
	admin.POST("/users/:id/sessions/revoke_all", handles.RevokeUserSessions)
	admin.POST("/sessions/revoke", handles.RevokeSession)
	admin.POST("/alerts/report", handles.ReportSecurityEvent)
	admin.POST("/alerts/test", handles.TestAlert)
}

func Cors(e *gin.Engine) {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "range")
	e.Use(cors.New(config))
}
