// README: JSON chat API (session, turn, map, clear).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelchat/internal/http/middleware"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
)

type ChatHandler struct {
	chat *chat.Service
	maps *mapview.Service
}

func NewChatHandler(chatSvc *chat.Service, mapSvc *mapview.Service) *ChatHandler {
	return &ChatHandler{chat: chatSvc, maps: mapSvc}
}

type chatReq struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

type langReq struct {
	Lang string `json:"lang"`
}

type sessionResp struct {
	Language  string         `json:"language"`
	Messages  []chat.Message `json:"messages"`
	Locations []string       `json:"locations"`
}

func toSessionResp(conv *chat.Conversation) sessionResp {
	return sessionResp{
		Language:  string(conv.Language),
		Messages:  conv.Visible(),
		Locations: conv.Locations,
	}
}

// Session handles GET /api/session.
func (h *ChatHandler) Session(c *gin.Context) {
	lang := resolveLanguage(c, "")
	conv, err := h.chat.Open(c.Request.Context(), middleware.SessionID(c), lang)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toSessionResp(conv))
}

// Send handles POST /api/chat.
func (h *ChatHandler) Send(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	lang := resolveLanguage(c, req.Lang)

	turn, err := h.chat.Submit(c.Request.Context(), middleware.SessionID(c), lang, req.Message)
	if err != nil {
		status := chatErrorStatus(err)
		if errors.Is(err, chat.ErrCompletionFailed) && turn.Conversation != nil {
			writeJSON(c, status, map[string]any{
				"error":   err.Error(),
				"session": toSessionResp(turn.Conversation),
			})
			return
		}
		h.writeChatError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"reply":         turn.Reply,
		"new_locations": nonNil(turn.NewLocations),
		"session":       toSessionResp(turn.Conversation),
	})
}

// ClearLocations handles POST /api/locations/clear.
func (h *ChatHandler) ClearLocations(c *gin.Context) {
	var req langReq
	_ = c.ShouldBindJSON(&req)
	lang := resolveLanguage(c, req.Lang)

	conv, err := h.chat.ClearLocations(c.Request.Context(), middleware.SessionID(c), lang)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toSessionResp(conv))
}

// Map handles GET /api/map.
func (h *ChatHandler) Map(c *gin.Context) {
	lang := resolveLanguage(c, "")
	conv, err := h.chat.Open(c.Request.Context(), middleware.SessionID(c), lang)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.maps.Render(c.Request.Context(), conv.Locations))
}

func (h *ChatHandler) writeChatError(c *gin.Context, err error) {
	status := chatErrorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(c, status, msg)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
