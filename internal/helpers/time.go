package helpers

import (
	"time"

	"github.com/pkg/errors"
)

// ParseDuration reads a timeout such as "30s". Empty means zero, which callers
// treat as "use the default"; negative values are rejected.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", s)
	}
	if d < 0 {
		return 0, errors.Errorf("duration cannot be negative, got %s", s)
	}
	return d, nil
}
