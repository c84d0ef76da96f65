package domain

import (
	"fmt"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{3,32}$`)
	gameIDRegex   = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]{0,63}$`)
)

// ValidateUsername checks a player username (3-32 word characters).
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("invalid username format")
	}
	return nil
}

// ValidateGameID checks a tenant game identifier.
func ValidateGameID(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if !gameIDRegex.MatchString(gameID) {
		return fmt.Errorf("invalid game id format")
	}
	return nil
}

// ValidatePassword checks minimum credential length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// ValidatePositiveAmount checks that a credit amount is positive.
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	return nil
}

// ValidateSaveKey checks a save-data or config key.
func ValidateSaveKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	if len(key) > 128 {
		return fmt.Errorf("key too long")
	}
	return nil
}

// ValidateItemName checks an inventory item name.
func ValidateItemName(name string) error {
	if name == "" {
		return fmt.Errorf("item name is required")
	}
	if len(name) > 128 {
		return fmt.Errorf("item name too long")
	}
	return nil
}
