package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Anchor teal is the accent used for titles, sizes and the spinner.
var (
	colorAccent = lipgloss.Color("37")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("214")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached      = lipgloss.NewStyle().Foreground(colorOK)
	styleFresh       = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusIcon pairs a glyph with its color for one-line status messages.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	iconInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

const iconArrow = "→"

func printStatus(icon statusIcon, msg string) {
	fmt.Println(icon.style.Render(icon.glyph) + " " + msg)
}

func printSuccess(format string, args ...any) { printStatus(iconSuccess, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { printStatus(iconError, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { printStatus(iconInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	printStatus(iconWarning, iconWarning.style.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints the node count, container size and cache status of a
// render on one line.
func printStats(nodeCount int, size string, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	}
	if size != "" {
		parts = append(parts, styleDim.Render(size))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleFresh.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, styleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
