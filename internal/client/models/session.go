package models

import "time"

// Session pairs an identity with its bearer token. Token is opaque.
type Session struct {
	User  User
	Token string
}

// ProtectedData is the payload returned by the protected-data fetch.
type ProtectedData struct {
	Message   string        `json:"message"`
	User      User          `json:"user"`
	Timestamp time.Time     `json:"timestamp"`
	Data      ProfileCounts `json:"data"`
}

// ProfileCounts holds the per-user figures shown on the profile view.
type ProfileCounts struct {
	Favorites    int       `json:"favorites"`
	SavedRecipes int       `json:"savedRecipes"`
	LastVisit    time.Time `json:"lastVisit"`
}
