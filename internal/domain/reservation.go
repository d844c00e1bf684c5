package domain

import "time"

// Reservation statuses and the transitions the store app drives:
// pending -> confirmed (approve) | rejected (reject)
// confirmed -> in_progress (check-in) -> completed (checkout)
// pending/confirmed/in_progress -> cancelled
const (
	ReservationPending    = "pending"
	ReservationConfirmed  = "confirmed"
	ReservationInProgress = "in_progress"
	ReservationCompleted  = "completed"
	ReservationCancelled  = "cancelled"
	ReservationRejected   = "rejected"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Reservation is a customer's request to store luggage at a store.
type Reservation struct {
	ReservationID    string     `json:"id" dynamodbav:"reservation_id"`
	StoreID          string     `json:"storeId" dynamodbav:"store_id"`
	CustomerID       string     `json:"customerId" dynamodbav:"customer_id"`
	CustomerName     string     `json:"customerName" dynamodbav:"customer_name"`
	CustomerPhone    string     `json:"customerPhone" dynamodbav:"customer_phone"`
	CustomerEmail    string     `json:"customerEmail" dynamodbav:"customer_email"`
	StorageID        string     `json:"storageId" dynamodbav:"storage_id"`
	StorageNumber    string     `json:"storageNumber" dynamodbav:"storage_number"`
	Status           string     `json:"status" dynamodbav:"status"`
	StartTime        time.Time  `json:"startTime" dynamodbav:"start_time"`
	EndTime          time.Time  `json:"endTime" dynamodbav:"end_time"`
	ActualStartTime  *time.Time `json:"actualStartTime,omitempty" dynamodbav:"actual_start_time"`
	ActualEndTime    *time.Time `json:"actualEndTime,omitempty" dynamodbav:"actual_end_time"`
	Duration         int        `json:"duration" dynamodbav:"duration"` // hours
	BagCount         int        `json:"bagCount" dynamodbav:"bag_count"`
	TotalAmount      int        `json:"totalAmount" dynamodbav:"total_amount"` // KRW
	Message          string     `json:"message,omitempty" dynamodbav:"message"`
	SpecialRequests  string     `json:"specialRequests,omitempty" dynamodbav:"special_requests"`
	LuggageImageURLs []string   `json:"luggageImageUrls" dynamodbav:"luggage_image_urls"`
	PaymentStatus    string     `json:"paymentStatus" dynamodbav:"payment_status"`
	PaymentMethod    string     `json:"paymentMethod,omitempty" dynamodbav:"payment_method"`
	QRCode           string     `json:"qrCode,omitempty" dynamodbav:"qr_code"`
	CreatedAt        time.Time  `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
}

// Active reports whether the reservation currently ties up a storage unit.
func (r *Reservation) Active() bool {
	switch r.Status {
	case ReservationConfirmed, ReservationInProgress:
		return true
	}
	return false
}
