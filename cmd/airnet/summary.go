package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skyroutes/airnet/pkg/attack"
	"github.com/skyroutes/airnet/pkg/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3a6ea5")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// renderSummary prints the terminal wrap-up after a successful run.
func (p *pipeline) renderSummary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("airnet run " + p.runID))
	b.WriteString("\n")

	network := []string{
		row("airports", fmt.Sprintf("%d", p.summary.Airports)),
		row("routes", fmt.Sprintf("%d", p.summary.Routes)),
		row("giant component", fmt.Sprintf("%d (%.1f%%)", p.summary.GiantSize, 100*p.summary.GiantFraction)),
		row("avg degree", fmt.Sprintf("%.2f", p.summary.AvgDegree)),
		row("avg clustering", fmt.Sprintf("%.4f", p.summary.AvgClustering)),
		row("avg path length", formatMaybeNaN(p.summary.AvgPathLength)),
		row("efficiency", fmt.Sprintf("%.4f", p.summary.Efficiency)),
		row("assortativity", formatMaybeNaN(p.summary.Assortativity)),
		row("max core", fmt.Sprintf("%d", p.summary.MaxCoreNumber)),
	}
	b.WriteString(boxStyle.Render(strings.Join(network, "\n")))
	b.WriteString("\n")

	if len(p.strategies) > 0 {
		lines := make([]string, 0, len(p.strategies))
		for _, s := range p.strategies {
			lines = append(lines, row(string(s.Strategy), describeStrategy(s)))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	if len(p.impacts) > 0 {
		top := p.impacts
		if len(top) > 5 {
			top = top[:5]
		}
		lines := make([]string, 0, len(top))
		for _, impact := range top {
			lines = append(lines, row(impact.Country,
				fmt.Sprintf("-%.1f%% giant (%d airports)", 100*impact.Drop, impact.AirportsRemoved)))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d artifacts in %s, took %s",
		len(p.artifacts), p.cfg.Output.Dir, time.Since(p.started).Round(time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func formatMaybeNaN(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}

// describeStrategy summarizes the terminal checkpoint of a strategy.
func describeStrategy(s report.StrategyResult) string {
	switch {
	case len(s.Aggregated) > 0:
		last := s.Aggregated[len(s.Aggregated)-1]
		return fmt.Sprintf("%d trials, final giant %.3f±%.3f at %.0f%% removed",
			len(s.Trials), last.GiantFractionMu, last.GiantFractionSd, 100*last.RemovedFraction)
	case len(s.Checkpoints) > 0:
		last := s.Checkpoints[len(s.Checkpoints)-1]
		mode := ""
		if s.Strategy != attack.StrategyRandom && len(s.Checkpoints) > 1 {
			mode = checkpointTrend(s.Checkpoints)
		}
		return fmt.Sprintf("final giant %.3f at %.0f%% removed%s",
			last.GiantFraction, 100*last.RemovedFraction, mode)
	default:
		return "no checkpoints"
	}
}

// checkpointTrend names the removal fraction where the giant component first
// fell below half the network.
func checkpointTrend(cps []attack.Checkpoint) string {
	for _, cp := range cps {
		if cp.GiantFraction < 0.5 {
			return fmt.Sprintf(", S<0.5 at %.0f%% removed", 100*cp.RemovedFraction)
		}
	}
	return ""
}
