// Package authz holds the ownership predicates deciding whether a requester
// may act on a given record. Reads are open to any authenticated caller;
// writes are permitted only to the owning account. Predicates fail closed:
// a missing requester or owner reference denies.
package authz

import (
	"net/http"

	"github.com/statushub/profiles-be/internal/models"
)

// Allowed reports whether a request using the given HTTP method may act on a
// record owned by ownerID. Safe (non-mutating) methods are always permitted.
func Allowed(method, requesterID, ownerID string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	if requesterID == "" || ownerID == "" {
		return false
	}
	return requesterID == ownerID
}

// CanAccessProfile reports whether a request using the given method may act
// on the target account. Reads are open; mutation is owner-only.
func CanAccessProfile(method, requesterID string, target models.User) bool {
	return Allowed(method, requesterID, target.ID)
}

// CanAccessFeedItem reports whether a request using the given method may act
// on the target feed item. Reads are open; mutation is owner-only.
func CanAccessFeedItem(method, requesterID string, target models.FeedItem) bool {
	return Allowed(method, requesterID, target.UserID)
}
