package ports

import "github.com/sf044/vitalsync/internal/domain"

// ReadingSink receives ordered batches of parameter readings (the vitals
// trend stream). Implementations must be safe for use from the routing
// goroutine only.
type ReadingSink interface {
	WriteBatch(readings []domain.ParameterReading) error
	Name() string
}
