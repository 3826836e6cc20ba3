package rabbitmq_common

import "fmt"

// Config holds the settings shared by consumers and producers.
type Config struct {
	URL string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq: broker URL is required")
	}
	return nil
}
