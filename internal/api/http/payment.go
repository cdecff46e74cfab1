package http

import (
	"io"
	"net/http"

	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type checkoutRequest struct {
	BookingID  string `json:"booking_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.paymentSvc.CreateCheckout(r.Context(), UserID(r), req.BookingID, req.SuccessURL, req.CancelURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentSvc.CheckStatus(r.Context(), mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Webhook always answers 200 for processed events so the gateway stops
// retrying; verification failures are the exception.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable payload"})
		return
	}
	signature := r.Header.Get("X-Webhook-Signature")

	if err := h.paymentSvc.HandleWebhook(r.Context(), payload, signature); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
