package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wavetrack/audio"
	"github.com/lixenwraith/wavetrack/config"
	"github.com/lixenwraith/wavetrack/logging"
	"github.com/lixenwraith/wavetrack/render"
	"github.com/lixenwraith/wavetrack/service"
	"github.com/lixenwraith/wavetrack/wfc"
)

const helpLine = "space pause  s step  r reset  e entropies  m mute  q quit"

type Viewer struct {
	screen tcell.Screen
	driver *wfc.Driver
	out    [][]wfc.Tile
	cues   *audio.Cues

	frame     time.Duration
	hold      time.Duration
	lastStep  time.Time
	holdUntil time.Time
	paused    bool
	failed    error
	view      render.View
}

func NewViewer(screen tcell.Screen, d *wfc.Driver, cues *audio.Cues, cfg config.Config) *Viewer {
	return &Viewer{
		screen: screen,
		driver: d,
		out:    wfc.NewOutput(d.Width(), d.Height()),
		cues:   cues,
		frame:  cfg.FrameInterval(),
		hold:   cfg.HoldDuration(),
		view:   render.View{OriginX: 1, OriginY: 2, Highlight: wfc.Point{X: -1, Y: -1}},
	}
}

// step advances the driver once and plays the matching cue
func (v *Viewer) step() {
	outcome, err := v.driver.Step(v.out)
	if err != nil {
		if errors.Is(err, wfc.ErrRetryLimit) && v.failed == nil {
			log.Printf("viewer: %v", err)
			v.failed = err
		}
		return
	}
	v.cues.PlayOutcome(outcome)
	v.view.Highlight = v.driver.LastCell()

	if v.driver.Complete() && v.hold > 0 {
		v.holdUntil = time.Now().Add(v.hold)
	}
}

func (v *Viewer) reset() {
	v.driver.Reset(v.out)
	v.failed = nil
	v.holdUntil = time.Time{}
	v.view.Highlight = wfc.Point{X: -1, Y: -1}
}

func (v *Viewer) update(now time.Time) {
	if v.paused || v.failed != nil || now.Before(v.holdUntil) {
		return
	}
	if now.Sub(v.lastStep) < v.frame {
		return
	}
	v.lastStep = now
	v.step()
}

func (v *Viewer) draw() {
	v.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	render.DrawText(v.screen, 1, 0, title, render.Status(v.driver, v.paused))

	v.view.DrawGrid(v.screen, v.out, v.driver.Grid())

	footer := v.view.OriginY + v.driver.Height() + 1
	if v.failed != nil {
		render.DrawText(v.screen, 1, footer, tcell.StyleDefault.Foreground(tcell.ColorRed),
			fmt.Sprintf("%v, press r to retry", v.failed))
		footer++
	}
	render.DrawText(v.screen, 1, footer, tcell.StyleDefault.Foreground(tcell.ColorGray), helpLine)

	v.screen.Show()
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 's':
			if v.failed == nil {
				v.holdUntil = time.Time{}
				v.step()
			}
		case 'r':
			v.reset()
		case 'e':
			var buf bytes.Buffer
			v.driver.Grid().WriteEntropies(&buf)
			log.Printf("entropies:\n%s", buf.String())
		case 'm':
			v.cues.SetMuted(!v.cues.Muted())
			v.cues.Start()
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

func (v *Viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !v.handleInput(ev) {
				return
			}
			v.draw()

		case now := <-ticker.C:
			v.update(now)
			v.draw()
		}
	}
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "write logs to "+logging.DefaultDir)
	mute := flag.Bool("mute", false, "disable audio cues")
	ticks := flag.Bool("ticks", false, "play a tick for every collapsed cell")
	flag.Parse()

	if f := logging.Setup(*debug, logging.DefaultDir); f != nil {
		defer f.Close()
	}

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	dcfg, err := cfg.DriverConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	driver, err := wfc.NewDriver(dcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create driver: %v\n", err)
		os.Exit(1)
	}

	// Audio failure is non-fatal, viewer runs without sound
	cues := audio.NewCues()
	cues.SetTicks(*ticks)
	services := service.NewGroup()
	services.Add(cues, *mute || !cfg.Audio.Enabled)
	if err := services.Start(); err != nil {
		log.Printf("services: %v", err)
	}
	defer services.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	log.Printf("viewer: %dx%d grid, mode %s", driver.Width(), driver.Height(), driver.Mode())
	NewViewer(screen, driver, cues, cfg).run()
}
