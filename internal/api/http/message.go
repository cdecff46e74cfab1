package http

import (
	"net/http"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

type sendMessageRequest struct {
	RecipientID string  `json:"recipient_id"`
	ListingID   *string `json:"listing_id"`
	Content     string  `json:"content"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, err := h.messageSvc.SendMessage(r.Context(), UserID(r), req.RecipientID, req.ListingID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.messageSvc.Conversations(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageSvc.Thread(r.Context(), UserID(r), mux.Vars(r)["user_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}
