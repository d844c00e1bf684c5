package domain

import "time"

// Store statuses shown to customers in the storefront app.
const (
	StoreStatusOpen      = "open"
	StoreStatusClosed    = "closed"
	StoreStatusPreparing = "preparing"
)

// Store is a merchant account operating luggage storage at a physical location.
type Store struct {
	StoreID        string     `json:"id" dynamodbav:"store_id"`
	Email          string     `json:"email" dynamodbav:"email"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	Name           string     `json:"name" dynamodbav:"name"`
	OwnerName      string     `json:"ownerName" dynamodbav:"owner_name"`
	Phone          string     `json:"phone" dynamodbav:"phone"`
	BusinessNumber string     `json:"businessNumber" dynamodbav:"business_number"`
	Address        string     `json:"address" dynamodbav:"address"`
	Status         string     `json:"status" dynamodbav:"status"`
	Settings       Settings   `json:"settings" dynamodbav:"settings"`
	Enable         int        `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
}

// Settings holds per-store operating preferences.
type Settings struct {
	OpenTime           string `json:"openTime" dynamodbav:"open_time"`   // "09:00"
	CloseTime          string `json:"closeTime" dynamodbav:"close_time"` // "22:00"
	AutoApprove        bool   `json:"autoApprove" dynamodbav:"auto_approve"`
	NotifyOnReservation bool  `json:"notifyOnReservation" dynamodbav:"notify_on_reservation"`
}
