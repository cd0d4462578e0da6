package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/metrics"
)

type viewMode int

const (
	modeWaveform viewMode = iota
	modeDecay
)

// Viewer is an interactive browser over a simulation result.
type Viewer struct {
	responses  map[acoustics.Band][]acoustics.ImpulseResponse
	rt60       map[acoustics.Band]float64
	sampleRate float64
	analyzer   *metrics.DecayAnalyzer

	bands    []acoustics.Band
	bandIdx  int
	receiver int
	mode     viewMode

	width, height int
}

// NewViewer builds a viewer over band responses produced by a simulation.
func NewViewer(responses map[acoustics.Band][]acoustics.ImpulseResponse,
	rt60 map[acoustics.Band]float64, sampleRate float64) Viewer {
	return Viewer{
		responses:  responses,
		rt60:       rt60,
		sampleRate: sampleRate,
		analyzer:   metrics.NewDecayAnalyzer(sampleRate),
		bands:      acoustics.Bands(),
		width:      80,
		height:     24,
	}
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			return v, tea.Quit
		case "b", "right", "l":
			v.bandIdx = (v.bandIdx + 1) % len(v.bands)
		case "left", "h":
			v.bandIdx = (v.bandIdx + len(v.bands) - 1) % len(v.bands)
		case "r", "tab":
			if n := v.numReceivers(); n > 0 {
				v.receiver = (v.receiver + 1) % n
			}
		case "d":
			if v.mode == modeWaveform {
				v.mode = modeDecay
			} else {
				v.mode = modeWaveform
			}
		}
	}
	return v, nil
}

func (v Viewer) numReceivers() int {
	return len(v.responses[v.bands[v.bandIdx]])
}

func (v Viewer) View() string {
	band := v.bands[v.bandIdx]
	irs := v.responses[band]
	if len(irs) == 0 {
		return Subtle.Render("no responses to display") + "\n"
	}
	if v.receiver >= len(irs) {
		v.receiver = 0
	}
	ir := irs[v.receiver]

	plotWidth := v.width - 12
	if plotWidth < 30 {
		plotWidth = 30
	}
	plotHeight := v.height - 12
	if plotHeight < 8 {
		plotHeight = 8
	}

	var b strings.Builder
	b.WriteString("\n  " + Title.Render("ROOM IMPULSE RESPONSE") + "\n")
	b.WriteString("  " + Subtle.Render(fmt.Sprintf("band %s  receiver %d/%d", band, v.receiver+1, len(irs))) + "\n")
	b.WriteString("  " + Separator(plotWidth) + "\n\n")

	var plot string
	if v.mode == modeDecay {
		curve, err := v.analyzer.Curve(ir)
		if err != nil {
			plot = Subtle.Render(fmt.Sprintf("decay unavailable: %v", err))
		} else {
			plot = PlotDecay(curve, v.sampleRate, plotWidth, plotHeight, string(band))
		}
	} else {
		plot = PlotWaveform(ir, v.sampleRate, plotWidth, plotHeight, string(band))
	}
	b.WriteString(plot + "\n\n")

	if rt, ok := v.rt60[band]; ok {
		b.WriteString("  " + MetricLabel.Render("sabine rt60 ") + MetricValue.Render(fmt.Sprintf("%.3fs", rt)) + "\n")
	}
	b.WriteString("  " + MetricLabel.Render("envelope    ") + Sparkline(absEnvelope(ir), plotWidth-14) + "\n")

	b.WriteString("\n  " + KeyHint.Render("b/h/l band  r receiver  d waveform/decay  q quit") + "\n")
	return b.String()
}

func absEnvelope(ir []float64) []float64 {
	out := make([]float64, len(ir))
	for i, v := range ir {
		if v < 0 {
			out[i] = -v
		} else {
			out[i] = v
		}
	}
	return out
}

// RunViewer starts the interactive viewer in the alternate screen.
func RunViewer(responses map[acoustics.Band][]acoustics.ImpulseResponse,
	rt60 map[acoustics.Band]float64, sampleRate float64) error {
	_, err := tea.NewProgram(NewViewer(responses, rt60, sampleRate), tea.WithAltScreen()).Run()
	return err
}
