// File: internal/handlers/chat_handler.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/services/chat"
)

// ChatHandler exposes the conversation surface over HTTP.
type ChatHandler struct {
	chatService chat.Service
	markdown    goldmark.Markdown
}

func NewChatHandler(chatService chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		markdown:    goldmark.New(),
	}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage runs one full conversation turn and returns the assistant's
// reply. On a completion failure the user's message stays persisted and
// the error is surfaced without writing a synthetic assistant turn.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.chatService.RequestAssistantTurn(r.Context(), userID, req.Content)
	if err != nil {
		var chatErr *chat.ChatError
		if errors.As(err, &chatErr) {
			switch chatErr.Type {
			case chat.ErrTypeValidation:
				writeError(w, http.StatusBadRequest, chatErr.Message)
			case chat.ErrTypeCompletion:
				writeError(w, http.StatusBadGateway, "the assistant is currently unavailable")
			default:
				writeError(w, http.StatusInternalServerError, "failed to process message")
			}
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// GetHistory returns the conversation log ascending by timestamp. An
// optional positive "limit" keeps the oldest N entries. With format=html
// the transcript is rendered as a Markdown document.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	turns, err := h.chatService.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if r.URL.Query().Get("format") == "html" {
		h.renderTranscript(w, turns)
		return
	}

	writeJSON(w, http.StatusOK, turns)
}

// GetSummary reports conversation statistics.
func (h *ChatHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.chatService.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ClearHistory deletes the user's entire conversation log.
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.chatService.ClearHistory(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// renderTranscript writes the log as an HTML document. Assistant replies
// are Markdown and rendered as such; user turns are escaped verbatim.
func (h *ChatHandler) renderTranscript(w http.ResponseWriter, turns []chat.Turn) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Conversation</title></head><body>\n")

	for _, turn := range turns {
		fmt.Fprintf(&buf, "<section class=\"turn turn-%s\">\n<h4>%s</h4>\n", turn.Role, turn.Role)
		if turn.Role == domain.RoleAssistant {
			if err := h.markdown.Convert([]byte(turn.Content), &buf); err != nil {
				buf.WriteString("<p>" + html.EscapeString(turn.Content) + "</p>\n")
			}
		} else {
			buf.WriteString("<p>" + html.EscapeString(turn.Content) + "</p>\n")
		}
		buf.WriteString("</section>\n")
	}

	buf.WriteString("</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parseUserID extracts the {id} path variable.
func parseUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
