package domain

import "time"

// Storage unit statuses.
const (
	StorageAvailable   = "available"
	StorageOccupied    = "occupied"
	StorageMaintenance = "maintenance"
	StorageDisabled    = "disabled"
)

// Storage unit types.
const (
	StorageTypeSmall  = "small"
	StorageTypeMedium = "medium"
	StorageTypeLarge  = "large"
	StorageTypeLocker = "locker"
)

// StorageUnit is a single rentable locker or shelf slot in a store.
type StorageUnit struct {
	StorageID string    `json:"id" dynamodbav:"storage_id"`
	StoreID   string    `json:"storeId" dynamodbav:"store_id"`
	Number    string    `json:"number" dynamodbav:"number"`
	Type      string    `json:"type" dynamodbav:"type"`
	Status    string    `json:"status" dynamodbav:"status"`
	Size      Size      `json:"size" dynamodbav:"size"`
	Pricing   int       `json:"pricing" dynamodbav:"pricing"` // KRW per hour
	Location  Location  `json:"location" dynamodbav:"location"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`

	// CurrentReservation is joined in by the service for occupied units.
	CurrentReservation *Reservation `json:"currentReservation,omitempty" dynamodbav:"-"`
}

// Size in centimeters.
type Size struct {
	Width  int `json:"width" dynamodbav:"width"`
	Height int `json:"height" dynamodbav:"height"`
	Depth  int `json:"depth" dynamodbav:"depth"`
}

// Location of a unit inside the store.
type Location struct {
	Floor   int    `json:"floor" dynamodbav:"floor"`
	Section string `json:"section" dynamodbav:"section"`
	Row     int    `json:"row" dynamodbav:"row"`
	Column  int    `json:"column" dynamodbav:"column"`
}
