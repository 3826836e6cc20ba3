package fluentlog

import (
	"fmt"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type Config struct {
	Host      string // "127.0.0.1", or the collector hostname in Docker
	Port      int    // usually 24224
	TagPrefix string // common prefix for all log tags of this service
}

// NewClient creates a Fluent Bit client. Creation does not verify the
// connection; send errors surface on the first post.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
