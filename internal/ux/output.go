package ux

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleBold    = lipgloss.NewStyle().Bold(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleCommand = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)
)

// Out is where progress output goes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

func timestamp() string {
	return StyleDim.Render("[" + time.Now().Format("15:04:05") + "]")
}

// StepHeader prints a timestamped step header.
func StepHeader(index, total int, name, desc string) {
	if desc != "" {
		desc = " " + StyleDim.Render("- "+desc)
	}
	fmt.Fprintf(Out, "%s %s%s\n", timestamp(),
		StyleBold.Render(fmt.Sprintf("Step %d/%d: %s", index+1, total, name)), desc)
}

// StepComplete prints a step completion message.
func StepComplete(index int, detail string, duration time.Duration) {
	msg := fmt.Sprintf("✓ Step %d complete", index+1)
	if detail != "" {
		msg += ": " + detail
	}
	fmt.Fprintf(Out, "%s  %s %s\n", timestamp(), StyleSuccess.Render(msg),
		StyleDim.Render("("+duration.Round(time.Millisecond).String()+")"))
}

// StepFail prints a step failure message.
func StepFail(index int, name, errMsg string) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(),
		StyleError.Render(fmt.Sprintf("✗ Step %d (%s) failed: %s", index+1, name, errMsg)))
}

// StepSkip prints a skipped step.
func StepSkip(index int, name, reason string) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(),
		StyleDim.Render(fmt.Sprintf("– Step %d (%s) skipped (%s)", index+1, name, reason)))
}

// Hint prints a follow-up command suggestion.
func Hint(label, command string) {
	fmt.Fprintf(Out, "\n%s %s\n", StyleWarning.Render(label+":"), StyleCommand.Render(command))
}

// Success prints the final build summary.
func Success(output string, topics int) {
	fmt.Fprintf(Out, "\n%s %s\n\n", timestamp(),
		StyleSuccess.Bold(true).Render(fmt.Sprintf("══ Built %s (%d topics) ══", output, topics)))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", StyleError.Bold(true).Render("error:"), fmt.Sprintf(format, args...))
}
