package auth

import "github.com/golang-jwt/jwt/v5"

// PendingUser is a registration payload carried inside an activation token.
// The password is already hashed; the plaintext never enters a claim. The
// record is never persisted; the token is the only place it exists between
// the registration request and the OTP confirmation.
type PendingUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// ActivationClaims gate the two-step registration. The server keeps no OTP
// state: the token carries both the pending user and the code, so any
// instance can verify it with the activation secret alone.
type ActivationClaims struct {
	User PendingUser `json:"user"`
	OTP  string      `json:"otp"`
	jwt.RegisteredClaims
}

// SessionClaims stand in for a server-side session. The subject is resolved
// against the user store on every guarded request.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ResetClaims authorize a single password reset. Token expiry is
// cross-checked against the user's reset_password_expire field so a reset
// can be invalidated server-side before the token itself expires.
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
