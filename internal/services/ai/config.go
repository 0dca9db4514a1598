// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"net/http"
)

// SystemPrompt is the fixed persona sent as the first message of every
// completion request.
const SystemPrompt = "You are a warm, patient care companion for an elderly " +
	"person. Answer in short, clear sentences, avoid medical jargon, and " +
	"never give a diagnosis. Suggest contacting a caregiver or doctor for " +
	"anything that sounds urgent."

// FallbackReply is returned when the service answers successfully but with
// no usable completion text.
const FallbackReply = "I'm sorry, I couldn't come up with an answer just now. Could you try asking again?"

type Config struct {
	// Credential and endpoint of the completion service. An empty APIKey is
	// allowed at construction; Complete reports it before any network call.
	APIKey  string
	BaseURL string

	// Model Parameters
	Model       string
	MaxTokens   int
	Temperature float32

	// HTTPClient overrides the transport, mainly for tests. No timeout is
	// configured here: callers get the transport default, per contract.
	HTTPClient *http.Client
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("chat model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gpt-4o-mini",
		MaxTokens:   500,
		Temperature: 0.7,
	}
}
