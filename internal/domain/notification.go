package domain

import "time"

// Notification types surfaced in the store app.
const (
	NotifyReservationNew       = "reservation_new"
	NotifyReservationApproved  = "reservation_approved"
	NotifyReservationCancelled = "reservation_cancelled"
	NotifyReviewNew            = "review_new"
	NotifySystem               = "system"
)

type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	StoreID        string    `json:"storeId" dynamodbav:"store_id"`
	Type           string    `json:"type" dynamodbav:"type"`
	Title          string    `json:"title" dynamodbav:"title"`
	Message        string    `json:"message" dynamodbav:"message"`
	ReferenceID    *string   `json:"referenceId,omitempty" dynamodbav:"reference_id"`
	Read           bool      `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
