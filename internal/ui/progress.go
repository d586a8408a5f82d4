package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/asciireel/internal/cli"
)

// Phase represents the current preparation phase
type Phase int

const (
	PhaseExtracting Phase = iota
	PhaseConverting
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseExtracting:
		return "Extracting frames and audio"
	case PhaseConverting:
		return "Converting frames to ASCII"
	case PhaseComplete:
		return "Ready"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ExtractComplete signals that ffmpeg has written every frame and the audio track
type ExtractComplete struct {
	Frames  int
	Elapsed time.Duration
}

// LoadProgress is sent once per converted frame
type LoadProgress struct {
	Current int
	Total   int
}

// LoadComplete signals that the frame sequence is in memory
type LoadComplete struct {
	Frames  int
	Elapsed time.Duration
}

// Failed aborts the UI; the caller reports Err after Run returns
type Failed struct {
	Err error
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model is the Bubbletea model shown while a video is prepared for playback
type Model struct {
	input       string
	spinner     spinner.Model
	progressBar progress.Model
	phase       Phase

	extract  *ExtractComplete
	loaded   LoadProgress
	complete *LoadComplete
	err      error

	startTime       time.Time
	convertStart    time.Time
	completionDelay time.Duration
	width           int
	aborted         bool
}

// NewModel creates the preparation UI for input
func NewModel(input string) *Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(cli.PhosphorBright)),
	)

	p := progress.New(
		progress.WithGradient(string(cli.PhosphorDim), string(cli.PhosphorBright)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		input:           input,
		spinner:         s,
		progressBar:     p,
		phase:           PhaseExtracting,
		startTime:       time.Now(),
		completionDelay: 750 * time.Millisecond,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(min(msg.Width-30, 50), 10)
		return m, nil

	case spinner.TickMsg:
		if m.phase != PhaseExtracting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ExtractComplete:
		m.extract = &msg
		m.phase = PhaseConverting
		m.convertStart = time.Now()
		m.loaded = LoadProgress{Total: msg.Frames}
		return m, nil

	case LoadProgress:
		if m.phase == PhaseExtracting {
			m.phase = PhaseConverting
			m.convertStart = time.Now()
		}
		m.loaded = msg
		return m, nil

	case LoadComplete:
		m.complete = &msg
		m.phase = PhaseComplete
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case Failed:
		m.err = msg.Err
		return m, tea.Quit

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Phase reports the current phase
func (m *Model) Phase() Phase {
	return m.phase
}

// Aborted reports whether the user interrupted preparation
func (m *Model) Aborted() bool {
	return m.aborted
}

// Err returns the error delivered by Failed, if any
func (m *Model) Err() error {
	return m.err
}

// Ratio is the fraction of frames converted so far
func (m *Model) Ratio() float64 {
	if m.phase == PhaseComplete {
		return 1
	}
	if m.loaded.Total <= 0 {
		return 0
	}
	return min(float64(m.loaded.Current)/float64(m.loaded.Total), 1)
}

func (m *Model) View() string {
	if m.err != nil || m.aborted {
		return ""
	}

	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.PhosphorBright).Render("asciireel 📺"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.PhosphorAmber).Render(m.phase.String()))
	s.WriteString("\n\n")

	label := lipgloss.NewStyle().Faint(true)

	switch m.phase {
	case PhaseExtracting:
		s.WriteString(m.spinner.View())
		s.WriteString(" ")
		s.WriteString(label.Render("ffmpeg is splitting " + m.input))
		s.WriteString(fmt.Sprintf("  │  Elapsed: %s", cli.FormatDuration(time.Since(m.startTime))))

	case PhaseConverting, PhaseComplete:
		s.WriteString("Progress: ")
		s.WriteString(m.progressBar.ViewAs(m.Ratio()))
		s.WriteString(fmt.Sprintf(" %5.1f%%\n\n", m.Ratio()*100))

		s.WriteString(label.Render("Frames:   "))
		s.WriteString(fmt.Sprintf("%d / %d", m.loaded.Current, m.loaded.Total))
		if m.extract != nil {
			s.WriteString(label.Render("  │  Extracted in "))
			s.WriteString(cli.FormatDuration(m.extract.Elapsed))
		}
		if m.complete != nil {
			s.WriteString("\n")
			s.WriteString(label.Render("Converted in "))
			s.WriteString(cli.FormatDuration(m.complete.Elapsed))
			s.WriteString(label.Render("  │  "))
			s.WriteString(cli.FormatFPS(m.complete.Frames, m.complete.Elapsed))
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.PhosphorMid).
		Padding(1, 2).
		Render(s.String())
}
