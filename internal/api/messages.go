package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"
)

// Inbox handles GET /api/v1/messages/inbox
func (h *Handlers) Inbox() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		messages, err := h.deps.Services.Message.ListInbox(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Inbox fetched successfully", dtos.NewMessageList(messages))
	}
}

// Sent handles GET /api/v1/messages/sent
func (h *Handlers) Sent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		messages, err := h.deps.Services.Message.ListSent(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Sent messages fetched successfully", dtos.NewMessageList(messages))
	}
}

// SendMessage handles POST /api/v1/messages
func (h *Handlers) SendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.SendMessageRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		msg, err := h.deps.Services.Message.Send(r.Context(), userID, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Message sent", dtos.NewMessageResponse(msg), http.StatusCreated)
	}
}

// ReplyMessage handles POST /api/v1/messages/{message_id}/reply
func (h *Handlers) ReplyMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}
		messageID, ok := pathID(w, r, initTime, "message_id")
		if !ok {
			return
		}

		var req dtos.ReplyMessageRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		msg, err := h.deps.Services.Message.Reply(r.Context(), userID, messageID, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Reply sent", dtos.NewMessageResponse(msg), http.StatusCreated)
	}
}

// DeleteMessage handles DELETE /api/v1/messages/{message_id}.
// It only hides the message from the caller's own lists.
func (h *Handlers) DeleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}
		messageID, ok := pathID(w, r, initTime, "message_id")
		if !ok {
			return
		}

		if err := h.deps.Services.Message.SoftDeleteFor(r.Context(), userID, messageID); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Message deleted", nil)
	}
}
