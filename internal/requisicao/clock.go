package requisicao

import (
	"fmt"
	"time"
)

// ClockIn returns a clock reporting the current time in the named zone.
// An empty name keeps the process local zone.
func ClockIn(name string) (func() time.Time, error) {
	if name == "" {
		return time.Now, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}
