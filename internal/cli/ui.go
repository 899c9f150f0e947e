package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tikzlayout/pkg/geom"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorFail    = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle heads the inspector.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight marks scene names and subcommands.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorValue)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleMarkOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMarkFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleMarkInfo    = lipgloss.NewStyle().Foreground(colorLabel)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleFormat  = lipgloss.NewStyle().Foreground(colorAccent).Width(5)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)

	styleFromCache = lipgloss.NewStyle().Foreground(colorOK)
	styleRendered  = lipgloss.NewStyle().Foreground(colorLabel)
)

const (
	markOK   = "✓"
	markFail = "✗"
	markInfo = "›"

	statusFromCache = "from cache"
	statusRendered  = "rendered"
)

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleMarkOK.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleMarkFail.Render(markFail) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMarkInfo.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints a labeled setting, as in the serve banner.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Render Summary
// =============================================================================

// printArtifact prints one written output: its format, path and size.
func printArtifact(format, path string, size int) {
	fmt.Println("  " + styleFormat.Render(format) + StyleValue.Render(path) + " " + StyleDim.Render(formatSize(size)))
}

// printSummary prints the drawing's extent and tree size on one line,
// e.g. "3.000 × 1.500 cm · 4 leaves in 2 groups · rendered".
func printSummary(extent *geom.BBox, leaves, groups int, cached bool) {
	var parts []string
	if extent != nil {
		parts = append(parts, formatExtent(*extent))
	}
	parts = append(parts, fmt.Sprintf("%s in %s", plural(leaves, "leaf", "leaves"), plural(groups, "group", "groups")))

	status := styleRendered.Render(statusRendered)
	if cached {
		status = styleFromCache.Render(statusFromCache)
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")+" · ") + status)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func formatExtent(b geom.BBox) string {
	return formatCoord(b.Width()) + " × " + formatCoord(b.Height()) + " cm"
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
