// Package id generates entity identifiers. Every record in the system
// (stores, storages, reservations, checkins, reviews, notifications) gets
// one of these as its partition key.
package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. ULIDs sort by creation time, which keeps
// listing queries in insertion order without an extra timestamp attribute.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
