package http

import (
	"net/http"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type createReviewRequest struct {
	ListingID string `json:"listing_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	review, err := h.reviewSvc.CreateReview(r.Context(), UserID(r), req.ListingID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ForListing(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.ListingReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
