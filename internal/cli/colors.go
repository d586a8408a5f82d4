package cli

import "github.com/charmbracelet/lipgloss"

// Phosphor palette 📺
// Shared CRT theme colours for consistent branding across CLI and TUI
var (
	// Phosphor greens (dim to bright)
	PhosphorDim    = lipgloss.Color("#1F5F1F") // Unlit scanline
	PhosphorMid    = lipgloss.Color("#33A532") // Steady glow
	PhosphorBright = lipgloss.Color("#66FF66") // Beam hit
	PhosphorAmber  = lipgloss.Color("#FFB000") // Amber monitor

	// Accent colours
	ScanGray = lipgloss.Color("#7F8C7F") // Subtle text
)
