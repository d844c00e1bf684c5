package domain

import "time"

type Session struct {
	SessionID        string    `json:"id" dynamodbav:"session_id"`
	StoreID          string    `json:"storeId" dynamodbav:"store_id"`
	Enable           bool      `json:"enable" dynamodbav:"enable"`
	RefreshToken     string    `json:"-" dynamodbav:"refresh_token"`
	RefreshExpiresAt int64     `json:"refreshExpiresAt" dynamodbav:"refresh_expires_at"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updated_at"`
	Store            *Store    `json:"store,omitempty" dynamodbav:"-"`
}
