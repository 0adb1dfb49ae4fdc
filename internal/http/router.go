// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelchat/internal/http/handlers"
	"travelchat/internal/http/middleware"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
)

type RouterDeps struct {
	Chat *chat.Service
	Map  *mapview.Service
	// ConfigErr, when set, puts every route except /health behind the
	// unavailable page. KeyEnv names the missing credential.
	ConfigErr    error
	KeyEnv       string
	SecureCookie bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Session(deps.SecureCookie), middleware.Logging())
	r.SetHTMLTemplate(handlers.Templates())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if deps.ConfigErr != nil {
		unavailable := handlers.NewUnavailableHandler(deps.KeyEnv)
		r.NoRoute(unavailable.Serve)
		r.NoMethod(unavailable.Serve)
		return r
	}

	page := handlers.NewPageHandler(deps.Chat, deps.Map)
	r.GET("/", page.Index)
	r.POST("/chat", page.Send)
	r.POST("/language", page.SwitchLanguage)
	r.POST("/locations/clear", page.ClearLocations)

	api := handlers.NewChatHandler(deps.Chat, deps.Map)
	g := r.Group("/api")
	g.GET("/session", api.Session)
	g.POST("/chat", api.Send)
	g.POST("/locations/clear", api.ClearLocations)
	g.GET("/map", api.Map)

	return r
}
