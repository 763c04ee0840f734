package model

import "github.com/google/uuid"

// Actor is the party making a request: either anonymous or an authenticated
// user with a role. A zero Actor is anonymous.
type Actor struct {
	Authenticated bool      `json:"authenticated"`
	UserID        uuid.UUID `json:"user_id,omitempty"`
	Username      string    `json:"username,omitempty"`
	Role          Role      `json:"role,omitempty"`
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// AuthenticatedActor returns an actor bound to a user.
func AuthenticatedActor(userID uuid.UUID, username string, role Role) Actor {
	return Actor{
		Authenticated: true,
		UserID:        userID,
		Username:      username,
		Role:          role,
	}
}

// HasRole reports whether the actor is authenticated with one of the given roles.
func (a Actor) HasRole(roles ...Role) bool {
	if !a.Authenticated {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
