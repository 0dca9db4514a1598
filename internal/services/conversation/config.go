// File: internal/services/conversation/config.go
package conversation

import "fmt"

type Config struct {
	// HistoryWindow caps how many prior messages are sent as context with
	// each completion request.
	HistoryWindow int
}

func (c *Config) Validate() error {
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be positive")
	}
	if c.HistoryWindow > 100 {
		return fmt.Errorf("history_window cannot exceed 100")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		HistoryWindow: 20,
	}
}
