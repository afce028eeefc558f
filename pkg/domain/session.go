package domain

import "time"

// Admin is the signed-in back-office operator.
type Admin struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenPair is the access/refresh credential pair issued at login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the response body of the admin login endpoint.
type LoginResult struct {
	TokenPair
	Admin *Admin `json:"admin,omitempty"`
}
