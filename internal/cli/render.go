package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	doneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	missedStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	rewardStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(ColorAccent)
)

const (
	glyphDone      = "●"
	glyphMissed    = "○"
	glyphUnknown   = "·"
	glyphMilestone = "★"
)

func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderProgressBar fills width cells in proportion to percent (0-100).
func RenderProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct := percent / 100
	switch {
	case pct < 0:
		pct = 0
	case pct > 1:
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := doneStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %3.0f%%", bar, percent)
}

// RenderStatus draws the dashboard: one block per habit.
func RenderStatus(summaries []domain.HabitSummary) string {
	var b strings.Builder

	b.WriteString(RenderTitle("KANSO"))
	b.WriteString("\n\n")

	if len(summaries) == 0 {
		b.WriteString(mutedStyle.Render("  No habits yet. Run `kanso setup` to choose up to four."))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + headerStyle.Render(s.Name) + mutedStyle.Render("  "+s.Reason) + "\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			mutedStyle.Render("Remaining:"),
			valueStyle.Render(fmt.Sprintf("%d of %d days", s.RemainingDays, s.TargetDays)),
		))
		b.WriteString("  " + RenderProgressBar(s.ProgressPercent, 24) + "\n")
		b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
			mutedStyle.Render("Streak:"),
			valueStyle.Render(fmt.Sprintf("%d/%d", s.Streak, s.RewardMilestone)),
			mutedStyle.Render("Reward:"),
			rewardStyle.Render(s.Reward),
		))

		if s.MilestoneReached {
			b.WriteString("  " + rewardStyle.Render(glyphMilestone+" Milestone reached! Enjoy: "+s.Reward) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("  %s %s\n", mutedStyle.Render("Milestone on:"), valueStyle.Render(s.MilestoneDate)))
		}

		if s.Motivation != "" {
			b.WriteString("  " + dimStyle.Render("“"+s.Motivation+"”") + "\n")
		}
	}
	return b.String()
}

var weekdayHeaders = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// RenderCalendar draws a Sunday-first month grid. Each day shows one glyph
// per habit in habit order; milestone days carry a star.
func RenderCalendar(grid domain.MonthGrid, habits []domain.Habit) string {
	cellWidth := 2 + 1 + len(habits) + 1

	var b strings.Builder

	monthName := time.Month(grid.Month).String()
	b.WriteString(RenderTitle(fmt.Sprintf("%s %d", monthName, grid.Year)))
	b.WriteString("\n\n ")

	for _, h := range weekdayHeaders {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s", cellWidth, h)))
	}
	b.WriteString("\n")

	for i, cell := range grid.Cells {
		if i%7 == 0 {
			b.WriteString(" ")
		}
		b.WriteString(" " + renderCell(cell, cellWidth))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	if len(grid.Cells)%7 != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, h := range habits {
		b.WriteString(fmt.Sprintf("  %s %s\n", mutedStyle.Render(fmt.Sprintf("%d.", i+1)), valueStyle.Render(h.Name)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s done  %s missed  %s not recorded  %s milestone",
		glyphDone, glyphMissed, glyphUnknown, glyphMilestone)))
	b.WriteString("\n")

	return b.String()
}

func renderCell(cell domain.DayCell, width int) string {
	if cell.Empty {
		return strings.Repeat(" ", width)
	}

	day := fmt.Sprintf("%2d", cell.Day)
	if cell.IsToday {
		day = todayStyle.Render(day)
	}

	var marks strings.Builder
	for _, m := range cell.Marks {
		switch m {
		case domain.MarkDone:
			marks.WriteString(doneStyle.Render(glyphDone))
		case domain.MarkMissed:
			marks.WriteString(missedStyle.Render(glyphMissed))
		default:
			marks.WriteString(dimStyle.Render(glyphUnknown))
		}
	}

	star := " "
	if cell.IsMilestone {
		star = rewardStyle.Render(glyphMilestone)
	}

	return day + " " + marks.String() + star
}
