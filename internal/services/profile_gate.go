package services

import (
	types "github.com/yungbote/profile-backend/internal/domain/profile"
)

// Access is how a stored document is shown to a caller.
type Access int

const (
	// PassThrough returns the stored bytes unchanged.
	PassThrough Access = iota
	// Hydrate expands the stored document through the enrichment service.
	Hydrate
)

func (a Access) String() string {
	if a == Hydrate {
		return "hydrate"
	}
	return "pass_through"
}

// Classify grants the hydrated view only to the owner of username.
func Classify(username string, caller types.Identity) Access {
	if caller.Is(username) {
		return Hydrate
	}
	return PassThrough
}
