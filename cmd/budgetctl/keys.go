package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

const minSecretBytes = 16

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func keysCommand(c *cli.Context) error {
	n := c.Int("bytes")
	if n < minSecretBytes {
		return fmt.Errorf("bytes must be at least %d", minSecretBytes)
	}

	jwtSecret, err := generateSecureKey(n)
	if err != nil {
		return fmt.Errorf("generate JWT secret: %w", err)
	}
	refreshSecret, err := generateSecureKey(n)
	if err != nil {
		return fmt.Errorf("generate JWT refresh secret: %w", err)
	}
	if jwtSecret == refreshSecret {
		return errors.New("generated identical secrets")
	}

	w := c.App.Writer
	fmt.Fprintln(w, "# Add these to your .env file. Use different keys per environment.")
	fmt.Fprintf(w, "JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Fprintf(w, "JWT_REFRESH_SECRET_KEY=%s\n", refreshSecret)
	return nil
}
