// README: Served for every route when no completion credential is configured.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelchat/internal/locale"
)

type UnavailableHandler struct {
	keyEnv string
}

func NewUnavailableHandler(keyEnv string) *UnavailableHandler {
	return &UnavailableHandler{keyEnv: keyEnv}
}

type unavailableData struct {
	Lang    string
	Texts   locale.Texts
	Message string
}

func (h *UnavailableHandler) Serve(c *gin.Context) {
	lang := resolveLanguage(c, "")
	texts := locale.Lookup(lang)
	msg := fmt.Sprintf(texts.APIError, h.keyEnv)

	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		writeError(c, http.StatusServiceUnavailable, msg)
		return
	}
	c.HTML(http.StatusServiceUnavailable, "unavailable.html", unavailableData{
		Lang:    string(lang),
		Texts:   texts,
		Message: msg,
	})
}
