// Package security provides password hashing helpers backed by argon2id.
package security

import "github.com/matthewhartstonge/argon2"

var config = argon2.DefaultConfig()

// HashPassword hashes a plaintext password and returns the encoded form,
// which embeds the salt and the argon2 parameters.
func HashPassword(password string) (string, error) {
	encoded, err := config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded argon2 hash.
func VerifyPassword(password, hash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(hash))
}
