// Package provider implements the azureinfra Terraform provider
package provider

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AdminPasswordLength is the length of generated administrator passwords
const AdminPasswordLength = 32

// Character classes for generated passwords. The special set excludes
// characters that break connection strings and shell quoting (quotes,
// backslash, semicolon, at-sign, comma).
const (
	passwordLower   = "abcdefghijklmnopqrstuvwxyz"
	passwordUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSpecial = "!#$%&*()-_=+[]{}<>:?"
)

// GeneratePassword produces a random administrator password containing at
// least one character from each class. The password is generated once at
// resource creation and pinned in state afterwards.
func GeneratePassword(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("password length %d is too short to cover all character classes", length)
	}

	all := passwordLower + passwordUpper + passwordDigits + passwordSpecial

	chars := make([]byte, 0, length)
	for _, class := range []string{passwordLower, passwordUpper, passwordDigits, passwordSpecial} {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates shuffle so the guaranteed class characters are not
	// always at the front
	for i := len(chars) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("failed to shuffle password: %w", err)
		}
		chars[i], chars[j.Int64()] = chars[j.Int64()], chars[i]
	}

	return string(chars), nil
}

func randomChar(class string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(class))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random character: %w", err)
	}
	return class[n.Int64()], nil
}
