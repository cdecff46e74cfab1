package http

import (
	"net/http"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/security"
	"rentall-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs.
type Services struct {
	Auth          service.AuthService
	Listings      service.ListingService
	Bookings      service.BookingService
	Payments      service.PaymentService
	Reviews       service.ReviewService
	Messages      service.MessageService
	Notifications service.NotificationService
	Tokens        security.TokenManager
}

// NewRouter wires the full REST surface under /api. Public routes are
// register/login, listing browsing, reviews reading, categories and the
// payment webhook; everything else requires a bearer token.
func NewRouter(s Services) *mux.Router {
	root := mux.NewRouter()
	api := root.PathPrefix("/api").Subrouter()

	auth := NewAuthHandler(s.Auth)
	listings := NewListingHandler(s.Listings)
	bookings := NewBookingHandler(s.Bookings)
	payments := NewPaymentHandler(s.Payments)
	reviews := NewReviewHandler(s.Reviews)
	messages := NewMessageHandler(s.Messages)
	notes := NewNotificationHandler(s.Notifications)

	// Public routes.
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/listings", listings.List).Methods(http.MethodGet)
	api.HandleFunc("/listings/featured", listings.Featured).Methods(http.MethodGet)
	api.HandleFunc("/reviews/listing/{id}", reviews.ForListing).Methods(http.MethodGet)
	api.HandleFunc("/bookings/listing/{id}/dates", bookings.BookedDates).Methods(http.MethodGet)
	api.HandleFunc("/categories", listCategories).Methods(http.MethodGet)
	api.HandleFunc("/webhook/payments", payments.Webhook).Methods(http.MethodPost)

	// Authenticated routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(s.Tokens))

	authed.HandleFunc("/auth/me", auth.Me).Methods(http.MethodGet)
	authed.HandleFunc("/auth/profile", auth.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/listings", listings.Create).Methods(http.MethodPost)
	authed.HandleFunc("/listings/my", listings.Mine).Methods(http.MethodGet)
	authed.HandleFunc("/listings/{id}", listings.Update).Methods(http.MethodPut)
	authed.HandleFunc("/listings/{id}", listings.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/my", bookings.Mine).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/requests", bookings.Requests).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/status", bookings.UpdateStatus).Methods(http.MethodPut)
	authed.HandleFunc("/bookings/{id}/confirm-receipt", bookings.ConfirmReceipt).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/dispute", bookings.Dispute).Methods(http.MethodPost)

	authed.HandleFunc("/payments/checkout", payments.CreateCheckout).Methods(http.MethodPost)
	authed.HandleFunc("/payments/status/{session_id}", payments.Status).Methods(http.MethodGet)

	authed.HandleFunc("/reviews", reviews.Create).Methods(http.MethodPost)

	authed.HandleFunc("/messages", messages.Send).Methods(http.MethodPost)
	authed.HandleFunc("/messages/conversations", messages.Conversations).Methods(http.MethodGet)
	authed.HandleFunc("/messages/{user_id}", messages.Thread).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", notes.MarkRead).Methods(http.MethodPost)

	// The listing detail route is public but must come after /listings/my
	// and /listings/featured so mux does not capture those as ids.
	api.HandleFunc("/listings/{id}", listings.Get).Methods(http.MethodGet)

	return root
}

func listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Categories)
}
