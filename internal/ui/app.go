// Package ui is the terminal front end: a bubbletea program that sweeps the
// active waveform channels across the screen and shows the numeric
// parameters with their alarm state.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sf044/vitalsync/internal/adapters/demo"
	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/model"
	"github.com/sf044/vitalsync/internal/render"
)

// sweepSpeeds are the selectable sweep speeds in px/s, slowest first.
var sweepSpeeds = []float64{6.25, 12.5, 25, 50}

const (
	traceHeight   = 3
	defaultWidth  = 80
	minTraceWidth = 20
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model renders a registry. It owns per-channel scroll state and advances
// every trace one column per tick; channels without buffered data yet fall
// back to a canned demo cycle.
type Model struct {
	reg    *model.Registry
	status func() domain.ConnectionStatus

	sweep    float64
	interval time.Duration
	width    int
	height   int
	paused   bool

	scrolls map[domain.WaveformKind]*render.ScrollState
	demos   map[domain.WaveformKind]*render.DemoTable
	hist    map[domain.WaveformKind][2]float64
}

// NewModel builds the UI over a registry. status reports the provider
// connection state for the header badge; sweep is the initial sweep speed.
func NewModel(reg *model.Registry, status func() domain.ConnectionStatus, sweep float64) Model {
	if sweep <= 0 {
		sweep = domain.DefaultSweepSpeed
	}
	m := Model{
		reg:      reg,
		status:   status,
		sweep:    sweep,
		interval: render.IntervalFor(sweep),
		width:    defaultWidth,
		scrolls:  make(map[domain.WaveformKind]*render.ScrollState),
		demos:    make(map[domain.WaveformKind]*render.DemoTable),
		hist:     make(map[domain.WaveformKind][2]float64),
	}
	for _, k := range domain.WaveformKinds {
		m.scrolls[k] = render.NewScrollState(m.traceWidth())
		m.demos[k] = render.NewDemoTable(demoCycle(k))
	}
	return m
}

// demoCycle synthesizes one waveform cycle with nominal vitals for the
// preview trace shown before live data arrives.
func demoCycle(kind domain.WaveformKind) []float64 {
	if !demo.HasGenerator(kind) {
		return nil
	}
	gen := demo.NewWaveGen(1)
	const points = 50
	p := demo.CycleParams{
		HeartRate:       72,
		RespirationRate: 15,
		SpO2:            98,
		SystolicBP:      120,
		DiastolicBP:     80,
		EtCO2:           38,
		Amplitude:       1,
	}
	cycleLen := 60.0 / p.HeartRate
	if kind == domain.Resp || kind == domain.Capno {
		cycleLen = 60.0 / p.RespirationRate
	}
	p.SampleInterval = cycleLen / points
	raw := gen.Generate(kind, 0, points, p)
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = render.NormalizeTo(kind, v)
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := m.traceWidth()
		for _, s := range m.scrolls {
			s.Resize(w)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			for _, s := range m.scrolls {
				if m.paused {
					s.Pause()
				} else {
					s.Resume()
				}
			}
			if !m.paused {
				return m, tick(m.interval)
			}
			return m, nil
		case "+", "=":
			return m.setSweep(1)
		case "-", "_":
			return m.setSweep(-1)
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, nil
		}
		m.advance()
		return m, tick(m.interval)
	}
	return m, nil
}

// setSweep steps through the sweep speed table and adjusts the redraw
// cadence to match.
func (m Model) setSweep(dir int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, s := range sweepSpeeds {
		if s == m.sweep {
			idx = i
			break
		}
	}
	idx += dir
	if idx < 0 || idx >= len(sweepSpeeds) {
		return m, nil
	}
	m.sweep = sweepSpeeds[idx]
	prev := m.interval
	m.interval = render.IntervalFor(m.sweep)
	for _, c := range m.reg.ActiveWaveforms() {
		_ = c.SetSweepSpeed(m.sweep) // table speeds are always positive
	}
	if !m.paused && m.interval != prev {
		return m, tick(m.interval)
	}
	return m, nil
}

// advance pushes one column into every active trace: the newest buffered
// sample when the channel has data, the demo cycle otherwise. The drawn
// point is quadratically smoothed against the previous two, so the path
// curves into new samples instead of stepping.
func (m *Model) advance() {
	for _, c := range m.reg.ActiveWaveforms() {
		kind := c.Kind()
		s := m.scrolls[kind]

		var raw float64
		if samples := c.Snapshot(); len(samples) > 0 {
			raw = render.NormalizeTo(kind, samples[len(samples)-1])
		} else if d := m.demos[kind]; d != nil {
			raw = d.Next()
		}

		h := m.hist[kind]
		s.Advance(render.SmoothPoint(h[0], h[1], raw))
		m.hist[kind] = [2]float64{h[1], raw}
	}
}

func (m Model) traceWidth() int {
	w := m.width - 8
	if w < minTraceWidth {
		w = minTraceWidth
	}
	return w
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	for _, c := range m.reg.ActiveWaveforms() {
		b.WriteString(m.waveformView(c))
		b.WriteString("\n")
	}

	b.WriteString(m.parameterView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · +/- sweep · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) headerView() string {
	st := domain.Disconnected
	if m.status != nil {
		st = m.status()
	}
	parts := []string{
		titleStyle.Render("VitalSync"),
		statusStyle(st).Render(st.String()),
		labelStyle.Render(fmt.Sprintf("%g px/s", m.sweep)),
	}
	if m.paused {
		parts = append(parts, warnStyle.Render("PAUSED"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) waveformView(c *model.WaveformChannel) string {
	s := m.scrolls[c.Kind()]
	style := traceStyle(c.Color())

	var b strings.Builder
	b.WriteString(style.Bold(true).Render(c.Kind().String()))
	b.WriteString("\n")
	for _, row := range renderTrace(s.Columns(), s.Cursor(), traceHeight) {
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) parameterView() string {
	cells := make([]string, 0, len(domain.ParameterKinds))
	for _, c := range m.reg.ActiveParameters() {
		v, ok := c.Value()
		text := "--"
		if ok {
			text = formatValue(c.Kind(), v)
		}
		cell := labelStyle.Render(c.Kind().String()) + " " +
			tierStyle(c.Tier()).Render(text) + " " +
			dimStyle.Render(c.Kind().Unit())
		cells = append(cells, cell)
	}

	// Wrap the cells into rows that fit the terminal.
	var b strings.Builder
	line := ""
	for _, cell := range cells {
		if line != "" && lipgloss.Width(line)+lipgloss.Width(cell)+3 > m.width {
			b.WriteString(line)
			b.WriteString("\n")
			line = ""
		}
		if line != "" {
			line += "   "
		}
		line += cell
	}
	if line != "" {
		b.WriteString(line)
	}
	return b.String()
}

// formatValue prints a reading at the precision a monitor would use.
func formatValue(kind domain.ParameterKind, v float64) string {
	switch kind {
	case domain.Temp1, domain.Temp2:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
