package model

import "github.com/golang-jwt/jwt"

// UserClaims is the payload carried inside a session token. DeviceID is
// optional; when present the auth middleware requires the caller to present a
// matching X-Device-ID header or deviceId cookie.
type UserClaims struct {
	UserID   string `json:"userId"`
	DeviceID string `json:"deviceId,omitempty"`
	jwt.StandardClaims
}
