package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	errorColor     = lipgloss.Color("#D03030") // Red
	successColor   = PhosphorBright
	mutedColor     = ScanGray
	highlightColor = PhosphorAmber
	textColor      = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PhosphorBright).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PhosphorAmber).
			MarginTop(1).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PhosphorMid).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

const (
	appTitle   = "asciireel 📺"
	appTagline = "Play any video as ASCII art in your terminal, kept in step with its soundtrack."
)

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render(appTitle))
	fmt.Println(SubtitleStyle.Render(appTagline))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appTitle))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatFPS formats a frame rate derived from a frame count and running time
func FormatFPS(frames int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f fps", float64(frames)/d.Seconds())
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// Transport key bindings, as shown to the viewer
var controls = []struct{ keys, action string }{
	{"Enter / y", "start playback"},
	{"Space", "pause or resume"},
	{"Esc / q", "stop"},
	{"n", "decline replay"},
}

// ControlsBanner renders the key bindings shown before each playback
func ControlsBanner() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.UnsetMargins().Render("Controls"))
	b.WriteString("\n\n")
	for i, c := range controls {
		b.WriteString(HighlightStyle.Render(fmt.Sprintf("%-10s", c.keys)))
		b.WriteString("  ")
		b.WriteString(KeyStyle.Render(c.action))
		if i < len(controls)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Press Enter to begin."))

	return BoxStyle.Render(b.String())
}

// PlaybackSummary renders the box shown after a playback attempt finishes
func PlaybackSummary(frames, shown int, elapsed time.Duration, cancelled bool) string {
	var b strings.Builder

	if cancelled {
		b.WriteString(HighlightStyle.Render("■ Stopped"))
	} else {
		b.WriteString(SuccessStyle.Render("✓ Playback complete"))
	}
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Elapsed: "))
	b.WriteString(ValueStyle.Render(FormatDuration(elapsed)))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Frames:  "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d of %d shown", shown, frames)))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Rate:    "))
	b.WriteString(ValueStyle.Render(FormatFPS(shown, elapsed)))

	return BoxStyle.Render(b.String())
}

// SavedArtNotice is the PrintBox content confirming a saved still
func SavedArtNotice(path string, width, height int) string {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Art saved"))
	b.WriteString("\n\n")
	b.WriteString(KeyStyle.Render("Path: "))
	b.WriteString(ValueStyle.Render(path))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Size: "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%dx%d", width, height)))

	return b.String()
}

// ReplayPrompt renders the question asked after each playback attempt
func ReplayPrompt() string {
	return HighlightStyle.Render("Play again?") + " " + KeyStyle.Render("[y/n]")
}
