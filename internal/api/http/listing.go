package http

import (
	"net/http"
	"strconv"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

type ListingHandler struct {
	listingSvc service.ListingService
}

func NewListingHandler(listingSvc service.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if !decodeBody(w, r, &listing) {
		return
	}
	created, err := h.listingSvc.CreateListing(r.Context(), UserID(r), &listing)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listingSvc.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.ListingUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	listing, err := h.listingSvc.UpdateListing(r.Context(), UserID(r), mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.listingSvc.DeleteListing(r.Context(), UserID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted"})
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListingFilter{
		Category: q.Get("category"),
		Query:    q.Get("query"),
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	listings, err := h.listingSvc.SearchListings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	listings, err := h.listingSvc.FeaturedListings(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingSvc.MyListings(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}
