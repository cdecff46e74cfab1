package postgres

import (
	"database/sql"

	"rentall-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ListingRepository
	repository.BookingRepository
	repository.PaymentRepository
	repository.ReviewRepository
	repository.MessageRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ListingRepository:      NewListingRepository(db),
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		MessageRepository:      NewMessageRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
