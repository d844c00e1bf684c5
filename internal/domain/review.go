package domain

import "time"

// Review is a customer rating left after a completed reservation.
type Review struct {
	ReviewID      string          `json:"id" dynamodbav:"review_id"`
	StoreID       string          `json:"storeId" dynamodbav:"store_id"`
	ReservationID string          `json:"reservationId" dynamodbav:"reservation_id"`
	CustomerName  string          `json:"customerName" dynamodbav:"customer_name"`
	Rating        int             `json:"rating" dynamodbav:"rating"` // 1..5
	Content       string          `json:"content" dynamodbav:"content"`
	Response      *ReviewResponse `json:"response,omitempty" dynamodbav:"response"`
	CreatedAt     time.Time       `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" dynamodbav:"updated_at"`
}

// ReviewResponse is the store owner's single reply to a review.
type ReviewResponse struct {
	Content   string    `json:"content" dynamodbav:"content"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
