package common

// Durable store keys. Session keys and preference keys are disjoint.
const (
	AuthTokenKey   = "authToken"
	AuthUserKey    = "authUser"
	PreferencesKey = "recipePreferences"
)

// Rating bounds; MinRating means "unrated".
const (
	MinRating = 0
	MaxRating = 5
)
