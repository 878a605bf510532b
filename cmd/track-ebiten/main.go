package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/wavetrack/audio"
	"github.com/lixenwraith/wavetrack/config"
	"github.com/lixenwraith/wavetrack/logging"
	"github.com/lixenwraith/wavetrack/service"
	"github.com/lixenwraith/wavetrack/wfc"
)

const (
	cellSizePx = 24
	hudHeight  = 36
)

var (
	background  = color.RGBA{17, 17, 17, 255}
	trackColor  = color.RGBA{230, 200, 80, 255}
	lastColor   = color.RGBA{255, 80, 80, 255}
	forcedColor = color.RGBA{120, 160, 220, 255}
)

type App struct {
	driver *wfc.Driver
	out    [][]wfc.Tile
	cues   *audio.Cues

	autoRun   bool
	frame     time.Duration
	hold      time.Duration
	lastStep  time.Time
	holdUntil time.Time
	err       error
}

func NewApp(d *wfc.Driver, cues *audio.Cues, cfg config.Config) *App {
	return &App{
		driver:  d,
		out:     wfc.NewOutput(d.Width(), d.Height()),
		cues:    cues,
		autoRun: true,
		frame:   cfg.FrameInterval(),
		hold:    cfg.HoldDuration(),
	}
}

func (a *App) step() {
	outcome, err := a.driver.Step(a.out)
	if err != nil {
		if a.err == nil {
			log.Printf("ebiten: %v", err)
		}
		a.err = err
		return
	}
	a.cues.PlayOutcome(outcome)
	if a.driver.Complete() && a.hold > 0 {
		a.holdUntil = time.Now().Add(a.hold)
	}
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.driver.Reset(a.out)
		a.err = nil
		a.holdUntil = time.Time{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.autoRun = !a.autoRun
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && a.err == nil {
		a.holdUntil = time.Time{}
		a.step()
	}

	now := time.Now()
	if a.autoRun && a.err == nil && !now.Before(a.holdUntil) && now.Sub(a.lastStep) >= a.frame {
		a.lastStep = now
		a.step()
	}
	return nil
}

// domainColor shades an uncollapsed cell, wider domains lighter
func domainColor(n int) color.RGBA {
	if n == 0 {
		return color.RGBA{120, 20, 20, 255}
	}
	v := uint8(30 + n*14)
	return color.RGBA{v, v, v, 255}
}

// drawArrow strokes a track arrow inside the cell at (px, py)
func drawArrow(screen *ebiten.Image, t wfc.Tile, px, py float32, clr color.Color) {
	const m = 5
	s := float32(cellSizePx - 1)
	cx, cy := px+s/2, py+s/2

	var tipX, tipY, tailX, tailY float32
	switch t {
	case wfc.Up:
		tipX, tipY, tailX, tailY = cx, py+m, cx, py+s-m
	case wfc.Down:
		tipX, tipY, tailX, tailY = cx, py+s-m, cx, py+m
	case wfc.Left:
		tipX, tipY, tailX, tailY = px+m, cy, px+s-m, cy
	case wfc.Right:
		tipX, tipY, tailX, tailY = px+s-m, cy, px+m, cy
	default:
		return
	}
	vector.StrokeLine(screen, tailX, tailY, tipX, tipY, 2, clr, true)

	// Head: two short strokes back from the tip, perpendicular offsets
	dx, dy := (tailX-tipX)/3, (tailY-tipY)/3
	vector.StrokeLine(screen, tipX, tipY, tipX+dx+dy, tipY+dy-dx, 2, clr, true)
	vector.StrokeLine(screen, tipX, tipY, tipX+dx-dy, tipY+dy+dx, 2, clr, true)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g := a.driver.Grid()
	last := a.driver.LastCell()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, _ := g.Cell(x, y)
			px := float32(x * cellSizePx)
			py := float32(hudHeight + y*cellSizePx)

			vector.DrawFilledRect(screen, px, py, cellSizePx-1, cellSizePx-1, domainColor(c.Domain.Len()), false)

			switch {
			case c.Collapsed:
				clr := trackColor
				if last == (wfc.Point{X: x, Y: y}) {
					clr = lastColor
				}
				drawArrow(screen, a.out[y][x], px, py, clr)
			case c.Domain.Len() == 1:
				drawArrow(screen, c.Domain.Nth(0), px, py, forcedColor)
			}
		}
	}

	st := a.driver.Stats()
	status := "SPACE=step  ENTER=auto  R=reset  Q=quit\n"
	status += fmt.Sprintf("%s collapsed=%d/%d runs=%d contradictions=%d",
		a.driver.State(), g.CollapsedCount(), g.Width()*g.Height(), st.CompletedRuns, st.Contradictions)
	if a.err != nil {
		status += "  [FAILED]"
	} else if !a.autoRun {
		status += "  [PAUSED]"
	}
	ebitenutil.DebugPrint(screen, status)
}

func (a *App) Layout(outsideW, outsideH int) (int, int) {
	return a.driver.Width() * cellSizePx, hudHeight + a.driver.Height()*cellSizePx
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "write logs to "+logging.DefaultDir)
	mute := flag.Bool("mute", false, "disable audio cues")
	flag.Parse()

	if f := logging.Setup(*debug, logging.DefaultDir); f != nil {
		defer f.Close()
	}

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dcfg, err := cfg.DriverConfig()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	driver, err := wfc.NewDriver(dcfg)
	if err != nil {
		log.Fatalf("Failed to create driver: %v", err)
	}

	cues := audio.NewCues()
	services := service.NewGroup()
	services.Add(cues, *mute || !cfg.Audio.Enabled)
	if err := services.Start(); err != nil {
		log.Printf("services: %v", err)
	}
	defer services.Stop()

	app := NewApp(driver, cues, cfg)
	w, h := app.Layout(0, 0)
	ebiten.SetWindowTitle("wavetrack")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
