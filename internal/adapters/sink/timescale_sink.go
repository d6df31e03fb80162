// Package sink records parameter trend history in TimescaleDB so vital-sign
// values survive the process and can be charted over longer horizons than
// the in-memory channels keep.
package sink

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

// TimescaleSink writes parameter readings as one multi-row insert per batch.
// The unique key (parameter, ts) makes retried batches idempotent.
type TimescaleSink struct {
	db        *sql.DB
	tableName string
}

func NewTimescaleSink(db *sql.DB, table string) *TimescaleSink {
	return &TimescaleSink{db: db, tableName: table}
}

func (t *TimescaleSink) Name() string { return "timescaledb" }

func (t *TimescaleSink) WriteBatch(readings []domain.ParameterReading) error {
	if len(readings) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(t.tableName)
	b.WriteString(" (parameter, ts, value, unit) VALUES ")

	args := make([]any, 0, len(readings)*4)
	for i, r := range readings {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d)",
			len(args)+1, len(args)+2, len(args)+3, len(args)+4))
		args = append(args,
			r.Kind.String(),
			r.TimestampMs,
			r.Value,
			r.Kind.Unit(),
		)
	}

	b.WriteString(" ON CONFLICT (parameter, ts) DO NOTHING")

	_, err := t.db.Exec(b.String(), args...)
	return err
}

var _ ports.ReadingSink = (*TimescaleSink)(nil)
