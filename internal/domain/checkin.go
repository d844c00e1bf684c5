package domain

import "time"

// Check-in statuses.
const (
	CheckinInStorage  = "in_storage"
	CheckinCheckedOut = "checked_out"
)

// Checkin records luggage physically handed over against a reservation.
type Checkin struct {
	CheckinID     string     `json:"id" dynamodbav:"checkin_id"`
	StoreID       string     `json:"storeId" dynamodbav:"store_id"`
	ReservationID string     `json:"reservationId" dynamodbav:"reservation_id"`
	StorageID     string     `json:"storageId" dynamodbav:"storage_id"`
	StorageNumber string     `json:"storageNumber" dynamodbav:"storage_number"`
	CustomerName  string     `json:"customerName" dynamodbav:"customer_name"`
	BagCount      int        `json:"bagCount" dynamodbav:"bag_count"`
	PhotoURLs     []string   `json:"photoUrls" dynamodbav:"photo_urls"`
	Status        string     `json:"status" dynamodbav:"status"`
	CheckedInAt   time.Time  `json:"checkedInAt" dynamodbav:"checked_in_at"`
	CheckedOutAt  *time.Time `json:"checkedOutAt,omitempty" dynamodbav:"checked_out_at"`
}
