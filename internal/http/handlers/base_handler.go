// README: Base handler utilities (JSON helpers, language resolution, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelchat/internal/locale"
	"travelchat/internal/modules/chat"
)

const languageCookie = "travelchat_lang"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// chatErrorStatus maps chat errors onto HTTP status codes.
func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrTurnInProgress):
		return http.StatusConflict
	case errors.Is(err, chat.ErrCompletionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// resolveLanguage picks the language from an explicit value (query, form),
// then the language cookie, then the default. An explicit valid choice is
// remembered in the cookie.
func resolveLanguage(c *gin.Context, explicit string) locale.Language {
	if explicit == "" {
		explicit = c.Query("lang")
	}
	if explicit == "" {
		explicit = c.PostForm("lang")
	}
	if lang, ok := locale.Parse(explicit); ok {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(languageCookie, string(lang), 0, "/", "", false, true)
		return lang
	}
	v, _ := c.Cookie(languageCookie)
	return locale.ParseOrDefault(v)
}
