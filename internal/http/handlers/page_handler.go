// README: Browser chat page (form posts, language selector, map).
package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelchat/internal/http/middleware"
	"travelchat/internal/locale"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
)

const noticeBusy = "busy"

type PageHandler struct {
	chat *chat.Service
	maps *mapview.Service
}

func NewPageHandler(chatSvc *chat.Service, mapSvc *mapview.Service) *PageHandler {
	return &PageHandler{chat: chatSvc, maps: mapSvc}
}

type languageOption struct {
	Tag      string
	Name     string
	Selected bool
}

type messageView struct {
	Icon string
	Role string
	HTML template.HTML
}

type pageData struct {
	Lang      string
	Texts     locale.Texts
	Languages []languageOption
	Messages  []messageView
	Locations []string
	Map       mapview.View
	Notice    string
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	lang := resolveLanguage(c, "")
	conv, err := h.chat.Open(c.Request.Context(), middleware.SessionID(c), lang)
	busy := errors.Is(err, chat.ErrTurnInProgress) && conv != nil
	if err != nil && !busy {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	notice := ""
	if busy || c.Query("notice") == noticeBusy {
		notice = locale.Lookup(conv.Language).TurnInProgressNotice
	}
	h.render(c, http.StatusOK, conv, notice)
}

// Send handles POST /chat.
func (h *PageHandler) Send(c *gin.Context) {
	lang := resolveLanguage(c, "")
	turn, err := h.chat.Submit(c.Request.Context(), middleware.SessionID(c), lang, c.PostForm("message"))
	switch {
	case err == nil, errors.Is(err, chat.ErrEmptyMessage):
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, chat.ErrTurnInProgress):
		c.Redirect(http.StatusSeeOther, "/?notice="+noticeBusy)
	case errors.Is(err, chat.ErrCompletionFailed) && turn.Conversation != nil:
		notice := fmt.Sprintf(locale.Lookup(lang).CompletionError, chat.CompletionCause(err))
		h.render(c, http.StatusBadGateway, turn.Conversation, notice)
	default:
		c.String(http.StatusInternalServerError, "internal error")
	}
}

// SwitchLanguage handles POST /language. Switching resets the conversation.
func (h *PageHandler) SwitchLanguage(c *gin.Context) {
	lang := resolveLanguage(c, "")
	_, err := h.chat.Open(c.Request.Context(), middleware.SessionID(c), lang)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, chat.ErrTurnInProgress):
		c.Redirect(http.StatusSeeOther, "/?notice="+noticeBusy)
	default:
		c.String(http.StatusInternalServerError, "internal error")
	}
}

// ClearLocations handles POST /locations/clear.
func (h *PageHandler) ClearLocations(c *gin.Context) {
	lang := resolveLanguage(c, "")
	_, err := h.chat.ClearLocations(c.Request.Context(), middleware.SessionID(c), lang)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, chat.ErrTurnInProgress):
		c.Redirect(http.StatusSeeOther, "/?notice="+noticeBusy)
	default:
		c.String(http.StatusInternalServerError, "internal error")
	}
}

func (h *PageHandler) render(c *gin.Context, status int, conv *chat.Conversation, notice string) {
	texts := locale.Lookup(conv.Language)

	langs := locale.All()
	options := make([]languageOption, 0, len(langs))
	for _, l := range langs {
		options = append(options, languageOption{
			Tag:      string(l),
			Name:     locale.Lookup(l).Name,
			Selected: l == conv.Language,
		})
	}

	visible := conv.Visible()
	messages := make([]messageView, 0, len(visible))
	for _, m := range visible {
		icon := "👤"
		if m.Role == chat.RoleAssistant {
			icon = "🤖"
		}
		messages = append(messages, messageView{Icon: icon, Role: string(m.Role), HTML: renderMarkdown(m.Content)})
	}

	c.HTML(status, "index.html", pageData{
		Lang:      string(conv.Language),
		Texts:     texts,
		Languages: options,
		Messages:  messages,
		Locations: conv.Locations,
		Map:       h.maps.Render(c.Request.Context(), conv.Locations),
		Notice:    notice,
	})
}
