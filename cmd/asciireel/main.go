package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/asciireel/internal/audio"
	"github.com/linuxmatters/asciireel/internal/cli"
	"github.com/linuxmatters/asciireel/internal/config"
	"github.com/linuxmatters/asciireel/internal/extract"
	"github.com/linuxmatters/asciireel/internal/playback"
	"github.com/linuxmatters/asciireel/internal/renderer"
	"github.com/linuxmatters/asciireel/internal/sequence"
	"github.com/linuxmatters/asciireel/internal/terminal"
	"github.com/linuxmatters/asciireel/internal/ui"
	"github.com/linuxmatters/asciireel/internal/workspace"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var _ playback.Output = (*audio.Player)(nil)

// App is the command line: flags, arguments and subcommands
type App struct {
	Version bool `help:"Show version information"`

	Play  PlayCmd  `cmd:"" default:"withargs" help:"Convert a video to ASCII frames and play it with sound"`
	Image ImageCmd `cmd:"" help:"Render a still image as ASCII art"`
}

type PlayCmd struct {
	Input       string        `arg:"" name:"input" help:"Video file to play" optional:""`
	Width       int           `help:"Frame width in columns (0 fits the terminal)" default:"0"`
	Height      int           `help:"Frame height in rows (0 fits the terminal)" default:"0"`
	FFmpeg      string        `name:"ffmpeg" help:"ffmpeg executable" default:"${ffmpeg}"`
	Workdir     string        `help:"Directory holding the cvf scratch workspace" default:"." type:"existingdir"`
	AudioFormat string        `help:"Extracted audio container" enum:"wav,mp3,flac" default:"${audio_format}"`
	Yield       time.Duration `help:"Pause between render loop iterations" default:"${yield}"`
	Workers     int           `help:"Frame conversion workers (0 uses every CPU)" default:"0"`
}

type ImageCmd struct {
	Input   string `arg:"" name:"input" help:"Image file (png, jpeg, gif or bmp)"`
	Width   int    `help:"Art width in columns (0 fits the terminal)" default:"0"`
	Save    string `help:"Also save the art as images/NAME.txt" placeholder:"NAME"`
	Workdir string `help:"Directory holding the images folder" default:"." type:"existingdir"`
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		cli.PrintWarning(fmt.Sprintf("ignoring .env: %v", err))
	}

	var app App
	ctx := kong.Parse(&app, options()...)

	// Handle version flag
	if app.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// options configures the parser. Every flag can also be set through an
// ASCIIREEL_<FLAG> environment variable.
func options() []kong.Option {
	return []kong.Option{
		kong.Name("asciireel"),
		kong.Description("Play any video as ASCII art in your terminal."),
		kong.Vars{
			"version":      version,
			"ffmpeg":       config.FFmpegBinary,
			"audio_format": config.AudioFormat,
			"yield":        config.RenderYield.String(),
		},
		kong.DefaultEnvars(config.EnvPrefix),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	}
}

func (c *PlayCmd) Run() error {
	if c.Input == "" {
		return errors.New("<input> is required")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("input file does not exist: %s", c.Input)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	width, height := terminal.Size(os.Stdout)
	if c.Width > 0 {
		width = c.Width
	}
	if c.Height > 0 {
		height = c.Height
	}

	ws := workspace.New(c.Workdir, c.AudioFormat)
	if err := ws.Reset(); err != nil {
		return err
	}

	cli.PrintBanner()
	cli.PrintInfo("Frame size", fmt.Sprintf("%dx%d", width, height))
	cli.PrintWarning("do not resize the terminal until playback starts")

	frames, err := c.prepare(ctx, ws, width, height)
	if err != nil {
		return err
	}

	return c.play(ctx, ws, frames)
}

// prepare extracts the video into the workspace and converts every frame,
// showing progress in a Bubbletea program.
func (c *PlayCmd) prepare(ctx context.Context, ws *workspace.Workspace, width, height int) (sequence.Sequence, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewModel(c.Input)
	p := tea.NewProgram(model)

	var frames sequence.Sequence
	var prepErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		frames, prepErr = c.convert(ctx, ws, width, height, p)
		if prepErr != nil {
			p.Send(ui.Failed{Err: prepErr})
		}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("running UI: %w", err)
	}
	if model.Aborted() {
		cancel()
		<-done
		return nil, context.Canceled
	}

	<-done
	if prepErr != nil {
		return nil, prepErr
	}
	if frames.Len() == 0 {
		return nil, errors.New("no frames to play")
	}
	return frames, nil
}

func (c *PlayCmd) convert(ctx context.Context, ws *workspace.Workspace, width, height int, p *tea.Program) (sequence.Sequence, error) {
	extractStart := time.Now()
	ex := extract.New(c.FFmpeg, config.FrameExt)

	count, err := ex.Frames(ctx, c.Input, ws.FramesDir(), width, height)
	if err != nil {
		return nil, err
	}
	if err := ex.Audio(ctx, c.Input, ws.AudioPath()); err != nil {
		return nil, err
	}
	p.Send(ui.ExtractComplete{Frames: count, Elapsed: time.Since(extractStart)})

	loader := &sequence.Loader{
		Dir:     ws.FramesDir(),
		Ext:     config.FrameExt,
		Width:   width,
		Height:  height,
		Palette: renderer.MustPalette(config.Palette),
		Workers: c.Workers,
	}

	convertStart := time.Now()
	frames, err := loader.Load(ctx, func(current, total int) {
		p.Send(ui.LoadProgress{Current: current, Total: total})
	})
	if err != nil {
		return nil, err
	}
	p.Send(ui.LoadComplete{Frames: frames.Len(), Elapsed: time.Since(convertStart)})
	return frames, nil
}

// play hands the terminal over to the playback session until the viewer quits
func (c *PlayCmd) play(ctx context.Context, ws *workspace.Workspace, frames sequence.Sequence) error {
	if err := audio.Initialize(); err != nil {
		return fmt.Errorf("initializing audio output: %w", err)
	}
	defer audio.Terminate()

	keys, err := terminal.OpenKeyboard(os.Stdin)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	defer keys.Close()

	screen := terminal.NewScreen(os.Stdout, true)
	if err := screen.HideCursor(); err != nil {
		return err
	}
	defer screen.ShowCursor()

	var shown int
	var started time.Time
	lastIndex := -1

	session := &playback.Session{
		Frames:    frames,
		AudioPath: ws.AudioPath(),
		Open: func(path string) (playback.Output, error) {
			player, err := audio.OpenPlayer(path, config.FramesPerBuffer)
			if err != nil {
				return nil, err
			}
			return player, nil
		},
		Display:  screen,
		Controls: keys,
		Yield:    c.Yield,
		Prompts: playback.Prompts{
			Banner: cli.ControlsBanner(),
			Done:   cli.SuccessStyle.Render("Done!"),
			Replay: cli.ReplayPrompt(),
		},
		OnRender: func(index int, state playback.State) {
			if started.IsZero() {
				started = time.Now()
			}
			if index != lastIndex {
				shown++
				lastIndex = index
			}
		},
		OnAttempt: func(attempt int, outcome playback.Outcome) {
			var elapsed time.Duration
			if !started.IsZero() {
				elapsed = time.Since(started)
			}
			_ = screen.Write(cli.PlaybackSummary(frames.Len(), shown, elapsed, outcome == playback.OutcomeCancelled) + "\n")
			shown, started, lastIndex = 0, time.Time{}, -1
		},
	}

	err = session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *ImageCmd) Run() error {
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("input file does not exist: %s", c.Input)
	}

	width := c.Width
	if width <= 0 {
		width, _ = terminal.Size(os.Stdout)
	}

	art, err := renderer.RasterizeStill(c.Input, width, renderer.MustPalette(config.Palette))
	if err != nil {
		return err
	}
	cli.PrintSection(filepath.Base(c.Input))
	fmt.Print(art.String())

	if c.Save == "" {
		return nil
	}
	ws := workspace.New(c.Workdir, config.AudioFormat)
	path, err := ws.SaveArt(c.Save, art.String())
	if err != nil {
		return err
	}
	cli.PrintBox(cli.SavedArtNotice(path, art.Width(), art.Height()))
	return nil
}
