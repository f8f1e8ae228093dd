package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/render"
	"github.com/matzehuels/gridshift/pkg/search"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, payload
	colorRed    = lipgloss.Color("167") // Soft red - errors, target
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	// Map cells.
	stylePayload = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleEmpty   = lipgloss.NewStyle().Foreground(colorGreen)
	styleWall    = lipgloss.NewStyle().Foreground(colorDim)
	styleTarget  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Plan Output
// =============================================================================

// printPlanResult prints the outcome line and statistics of a plan.
func printPlanResult(plan *gsio.Plan, cached bool) {
	switch plan.Status {
	case search.StatusFound:
		printSuccess("Payload reaches the target in %s", StyleNumber.Render(pluralMoves(plan.Length)))
	case search.StatusExhausted:
		printError("No sequence of moves brings the payload to the target")
	default:
		printWarning("Search budget exhausted before a plan was found")
	}
	printStats(plan.Expanded, plan.Generated, cached)
}

// printStats prints search statistics on a single line.
func printStats(expanded, generated int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d expanded", expanded),
		fmt.Sprintf("%d generated", generated),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// printMoves prints a plan's moves, at most limit of them when limit > 0.
func printMoves(plan *gsio.Plan, limit int) {
	for i, m := range plan.Moves {
		if limit > 0 && i >= limit {
			printDetail("... %d more moves", len(plan.Moves)-limit)
			return
		}
		line := fmt.Sprintf("%3d  (%d,%d) %s (%d,%d)  %dT", i+1, m.From.X, m.From.Y, iconArrow, m.To.X, m.To.Y, m.Units)
		if m.Payload {
			fmt.Println("  " + stylePayload.Render(line))
			continue
		}
		fmt.Println("  " + StyleValue.Render(line))
	}
}

// printMap prints the grid in state s as a coloured text map.
func printMap(g *grid.Grid, s grid.State) {
	fmt.Print(colorMap(render.Cells(g, s)))
}

// colorMap renders cells like render.Map, styling each symbol by kind.
func colorMap(cells [][]render.Cell) string {
	var sb strings.Builder
	for _, row := range cells {
		var line strings.Builder
		pending := 0
		for _, c := range row {
			if c.Kind == render.CellNone && !c.Target {
				pending += 3
				continue
			}
			line.WriteString(strings.Repeat(" ", pending))
			pending = 0
			sym := styleCell(c.Kind).Render(string(c.Kind.Symbol()))
			if c.Target {
				line.WriteString(styleTarget.Render("(") + sym + styleTarget.Render(")"))
			} else {
				line.WriteString(" " + sym + " ")
			}
		}
		sb.WriteString("  " + strings.TrimRight(line.String(), " ") + "\n")
	}
	return sb.String()
}

func styleCell(k render.CellKind) lipgloss.Style {
	switch k {
	case render.CellPayload:
		return stylePayload
	case render.CellEmpty:
		return styleEmpty
	case render.CellWall:
		return styleWall
	}
	return StyleValue
}

// =============================================================================
// Utilities
// =============================================================================

func pluralMoves(n int) string {
	if n == 1 {
		return "1 move"
	}
	return fmt.Sprintf("%d moves", n)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
