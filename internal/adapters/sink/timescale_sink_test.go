package sink

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sf044/vitalsync/internal/domain"
)

func TestTimescaleSinkWriteBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewTimescaleSink(db, "vitals")

	readings := []domain.ParameterReading{
		{Kind: domain.HR, TimestampMs: 1000, Value: 72},
		{Kind: domain.SpO2, TimestampMs: 1000, Value: 98},
	}

	expectedQuery := regexp.QuoteMeta("INSERT INTO vitals (parameter, ts, value, unit) VALUES ($1,$2,$3,$4),($5,$6,$7,$8) ON CONFLICT (parameter, ts) DO NOTHING")
	mock.ExpectExec(expectedQuery).
		WithArgs("HR", int64(1000), 72.0, "bpm", "SpO2", int64(1000), 98.0, "%").
		WillReturnResult(sqlmock.NewResult(1, 2))

	if err := s.WriteBatch(readings); err != nil {
		t.Fatalf("write batch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTimescaleSinkWriteBatchEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewTimescaleSink(db, "vitals")
	if err := s.WriteBatch(nil); err != nil {
		t.Fatalf("expected nil error for empty batch, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTimescaleSinkName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	s := NewTimescaleSink(db, "vitals")
	if s.Name() != "timescaledb" {
		t.Fatalf("expected sink name timescaledb, got %s", s.Name())
	}
}
