package http

import (
	"net/http"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookingSvc.CreateBooking(r.Context(), UserID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), UserID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.MyBookings(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Requests(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.BookingRequests(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

type statusUpdateRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookingSvc.UpdateStatus(r.Context(), UserID(r), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.ConfirmReceipt(r.Context(), UserID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type disputeRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Dispute(w http.ResponseWriter, r *http.Request) {
	var req disputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.bookingSvc.Dispute(r.Context(), UserID(r), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.bookingSvc.BookedDates(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if dates == nil {
		dates = []domain.DateRange{}
	}
	writeJSON(w, http.StatusOK, dates)
}
