package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := model.NewRegistry()
	return NewModel(reg, func() domain.ConnectionStatus { return domain.Connected }, 25)
}

func TestRenderTraceDimensions(t *testing.T) {
	cols := []float64{0, 0.25, 0.5, 0.75, 1}
	rows := renderTrace(cols, -1, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if got := len([]rune(row)); got != len(cols) {
			t.Fatalf("row %d has %d cells, want %d", i, got, len(cols))
		}
	}
	// A full-scale column fills the top row; an empty one leaves it blank.
	top := []rune(rows[0])
	if top[4] != '█' {
		t.Fatalf("full column should fill the top row, got %q", top[4])
	}
	if top[0] != ' ' {
		t.Fatalf("empty column should leave the top row blank, got %q", top[0])
	}
}

func TestRenderTraceCursorGap(t *testing.T) {
	cols := []float64{1, 1, 1}
	rows := renderTrace(cols, 1, 2)
	for i, row := range rows {
		if []rune(row)[1] != ' ' {
			t.Fatalf("row %d cursor column not blank: %q", i, row)
		}
	}
}

func TestPauseKeyFreezesTraces(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	if !m.paused {
		t.Fatalf("expected paused after p")
	}
	before := m.scrolls[domain.ECGII].Cursor()
	next, cmd := m.Update(tickMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("paused tick should not reschedule")
	}
	if m.scrolls[domain.ECGII].Cursor() != before {
		t.Fatalf("cursor moved while paused")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	if m.paused {
		t.Fatalf("expected resumed after second p")
	}
	if cmd == nil {
		t.Fatalf("resume should restart the tick loop")
	}
}

func TestTickAdvancesActiveTraces(t *testing.T) {
	m := newTestModel(t)

	before := m.scrolls[domain.ECGII].Cursor()
	next, cmd := m.Update(tickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("tick should reschedule itself")
	}
	if got := m.scrolls[domain.ECGII].Cursor(); got != before+1 {
		t.Fatalf("cursor = %d, want %d", got, before+1)
	}
}

func TestAdvanceSmoothsIntoNewSamples(t *testing.T) {
	m := newTestModel(t)
	ch := m.reg.Waveform(domain.ECGII)
	top := ch.Range().Max
	if err := ch.AppendBatch(domain.WaveformBatch{
		Kind: domain.ECGII, TimestampMs: 1, Samples: []float64{top},
	}); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	for i := 0; i < 3; i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(Model)
	}

	cols := m.scrolls[domain.ECGII].Columns()
	// The first drawn point curves toward the new level instead of
	// jumping there; by the third tick the trace has settled on it.
	if cols[0] <= 0 || cols[0] >= 1 {
		t.Fatalf("first column should ease toward the sample, got %v", cols[0])
	}
	if math.Abs(cols[2]-1) > 1e-9 {
		t.Fatalf("trace did not settle on the sample level: %v", cols[2])
	}
}

func TestSweepKeysAdjustCadence(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if m.sweep != 50 {
		t.Fatalf("sweep = %v, want 50", m.sweep)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(Model)
	if m.sweep != 6.25 {
		t.Fatalf("sweep = %v, want 6.25", m.sweep)
	}
	// Below the bottom of the table the key is a no-op.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(Model)
	if m.sweep != 6.25 {
		t.Fatalf("sweep = %v after underflow, want 6.25", m.sweep)
	}
}

func TestViewShowsActiveChannels(t *testing.T) {
	m := newTestModel(t)
	hr := m.reg.Parameter(domain.HR)
	if err := hr.Update(domain.ParameterReading{Kind: domain.HR, TimestampMs: 1, Value: 72}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	view := m.View()

	for _, want := range []string{"VitalSync", "ECG II", "SpO2", "72"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
