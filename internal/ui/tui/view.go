package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderServices(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("blueprintctl: %s", m.Cluster)))
	b.WriteString(" ")

	switch {
	case m.Err != nil:
		b.WriteString(failedStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	case m.Done:
		b.WriteString(readyStyle.Render(m.Action.finished()))
	default:
		b.WriteString(warningStyle.Render(ProgressLabel(m.Action, m.SpinnerFrame)))
	}
	b.WriteString("\n\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %3d%%  %d/%d services\n\n", bar, int(progress*100), m.settled(), len(m.States))
}

func renderServices(b *strings.Builder, m Model) {
	if len(m.States) == 0 {
		b.WriteString(dimStyle.Render("  waiting for service states..."))
		b.WriteString("\n")
		return
	}

	target := m.Action.TargetState()
	for _, name := range slices.Sorted(maps.Keys(m.States)) {
		state := m.States[name]
		icon, style := pending, dimStyle
		switch {
		case state == target:
			icon, style = checkMark, readyStyle
		case m.Err != nil:
			icon, style = crossMark, failedStyle
		case !m.Done:
			icon, style = currentSpinner(m.SpinnerFrame), warningStyle
		}
		fmt.Fprintf(b, "  %s %-24s %s\n", style.Render(icon), name, dimStyle.Render(state))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  q: quit", elapsed)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// ProgressLabel returns the rolling STARTING./STOPPING... label for a frame.
func ProgressLabel(action Action, frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return action.progressing() + strings.Repeat(".", frame%3+1)
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}
	if len(m.States) == 0 {
		return 0
	}
	return float64(m.settled()) / float64(len(m.States))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
