package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/extraction"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// entityStyle for extracted entity names
	entityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// warnStyle for degraded-run indicators
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// summaryBoxStyle frames the consolidated summary
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderRun writes a completed extraction run to w.
func renderRun(w io.Writer, run *core.ExtractionRun) {
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("URL:"), run.URL)
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Date:"), run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s %d", dimStyle.Render("Chunks:"), run.ChunkCount)
	if run.FailedChunks > 0 {
		fmt.Fprintf(w, " %s", warnStyle.Render(fmt.Sprintf("(%d failed)", run.FailedChunks)))
	}
	fmt.Fprintln(w)

	if run.Result.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", summaryBoxStyle.Render(run.Result.Summary))
	}

	renderEntityList(w, "Companies", run.Result.Companies)
	renderEntityList(w, "Persons", run.Result.Persons)
	renderEntityList(w, "Events", run.Result.Events)
}

func renderEntityList(w io.Writer, title string, entities []string) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(entities))))
	if len(entities) == 0 {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render("none"))
		return
	}
	for _, e := range entities {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("-"), entityStyle.Render(e))
	}
}

// renderHistoryLine writes a single compact line for a stored run.
func renderHistoryLine(w io.Writer, run *core.ExtractionRun) {
	counts := fmt.Sprintf("%d companies, %d persons, %d events",
		len(run.Result.Companies), len(run.Result.Persons), len(run.Result.Events))
	fmt.Fprintf(w, "%s  %s  %s\n",
		dimStyle.Render(run.CreatedAt.Local().Format("2006-01-02 15:04")),
		run.URL,
		dimStyle.Render(counts))
}

// progressMonitor reports pipeline stages to stderr while a run executes.
type progressMonitor struct {
	w io.Writer
}

var _ extraction.Monitor = (*progressMonitor)(nil)

func (m *progressMonitor) Start(url string) {
	fmt.Fprintf(m.w, "%s %s\n", dimStyle.Render("Loading"), url)
}

func (m *progressMonitor) AfterLoad(runeCount int) {
	fmt.Fprintf(m.w, "%s %d runes\n", dimStyle.Render("Loaded"), runeCount)
}

func (m *progressMonitor) AfterChunking(chunks []core.Chunk) {
	fmt.Fprintf(m.w, "%s %d chunks\n", dimStyle.Render("Split into"), len(chunks))
}

func (m *progressMonitor) ChunkDone(completed, total int) {
	fmt.Fprintf(m.w, "\r%s", dimStyle.Render(fmt.Sprintf("Extracting %d/%d", completed, total)))
	if completed == total {
		fmt.Fprintln(m.w)
	}
}

func (m *progressMonitor) AfterExtraction(partials []core.PartialResult) {
	failed := 0
	for _, p := range partials {
		if p.Failed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(m.w, "%s\n", warnStyle.Render(fmt.Sprintf("%d chunks failed extraction", failed)))
	}
}

func (m *progressMonitor) AfterConsolidation(_ *core.ConsolidatedResult) {
	fmt.Fprintf(m.w, "%s\n", dimStyle.Render("Consolidated"))
}

func (m *progressMonitor) Finish(_ *core.ExtractionRun) {}
