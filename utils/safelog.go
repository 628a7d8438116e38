// Package utils: safe logging helpers that mask personal and financial
// data when running in production mode.
package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// IsProduction controls masking. In production, emails, amounts and full
// IDs never reach the logs.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production"

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	uuidRegex  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks emails and UUIDs in a free-form message.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = uuidRegex.ReplaceAllStringFunc(result, shortenID)
	return result
}

// MaskAmount hides a monetary amount in production.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// MaskID keeps only the first 8 characters of an identifier.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	return shortenID(id)
}

// MaskEmail hides an email address in production.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

func shortenID(id string) string {
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// SafeLog logs a formatted message with sensitive data masked.
func SafeLog(format string, args ...any) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

// LogAuthAction logs an authentication event without exposing the email
// in production.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogTransactionAction logs a transaction mutation without exposing the
// amount in production.
func LogTransactionAction(action, userID string, amount float64) {
	log.Printf("[Transaction] %s - User: %s Amount: %s", action, MaskID(userID), MaskAmount(amount))
}

// LogLimitAction logs a limit change.
func LogLimitAction(action, userID string, amount float64) {
	log.Printf("[Limit] %s - User: %s Amount: %s", action, MaskID(userID), MaskAmount(amount))
}
