package station

import "time"

// Config drives station authentication. Keys maps station IDs to bcrypt
// hashes of their shared keys; an empty map disables authentication.
type Config struct {
	Secret   string
	TokenTTL time.Duration
	Keys     map[string]string
}

// TokenRequest is what a buoy presents to obtain an ingest token.
type TokenRequest struct {
	StationID string `json:"stationId"`
	Key       string `json:"key"`
}

// TokenResponse returns the signed token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims are extracted from a validated token.
type Claims struct {
	StationID string
	TokenID   string
	ExpiresAt time.Time
}
