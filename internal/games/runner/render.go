package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Render draws the current frame into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	g.runtime.ScreenW, g.runtime.ScreenH = dst.Width(), dst.Height()

	f := g.session.Draw()
	v := g.viewport(dst.Width(), dst.Height())

	g.drawField(dst, v, f)
	for _, c := range f.Calls {
		drawCall(dst, v, c, f.CameraY)
	}
	g.drawHUD(dst, v, f)

	switch f.State {
	case StateCountdown:
		drawBanner(dst, f.Countdown)
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", "Score: "+f.Score)
	}
}

// drawField draws the field edges and the scrolling lane guides.
func (g *Game) drawField(dst *core.Screen, v viewport, f Frame) {
	cfg := g.session.Config()
	left := v.x0 - 1
	right := v.x0 + v.fieldW
	dst.DrawVLine(left, 0, v.rows, BorderChar, core.ColorGray)
	dst.DrawVLine(right, 0, v.rows, BorderChar, core.ColorGray)

	phase := int(f.CameraY / v.unitY)
	for _, x := range []float64{cfg.Spawn.LaneSplit[0], cfg.Spawn.LaneSplit[1]} {
		col := v.col(x)
		for row := 0; row < v.rows; row++ {
			if (row+phase)%2 == 0 {
				dst.SetColored(col, row, GuideChar, core.ColorGray)
			}
		}
	}
}

func drawCall(dst *core.Screen, v viewport, c DrawCall, cameraY float64) {
	r := v.cells(core.NewBox(c.X, c.Y-cameraY, c.W, c.H))

	if c.Character {
		head := '▲'
		switch c.Texture {
		case "walk_left":
			head = '◀'
		case "walk_right":
			head = '▶'
		}
		dst.DrawRect(r, BodyChar, core.ColorCyan)
		dst.SetColored(r.X+r.W/2, r.Y, head, core.ColorBrightCyan)
		return
	}

	color := core.ColorBrightGreen
	switch c.Polarity {
	case Negative:
		color = core.ColorBrightRed
	case Special:
		color = core.ColorBrightYellow
	}
	dst.DrawRect(r, c.Glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen, v viewport, f Frame) {
	dst.DrawTextColored(v.x0+1, 0, f.Score, core.ColorYellow)

	hearts := make([]rune, 0, f.MaxLives)
	for i := 0; i < f.MaxLives; i++ {
		if i < f.Lives {
			hearts = append(hearts, HeartFull)
		} else {
			hearts = append(hearts, HeartEmpty)
		}
	}
	dst.DrawTextColored(v.x0+v.fieldW/2-len(hearts)/2, 0, string(hearts), core.ColorRed)

	if f.Slowed {
		dst.DrawTextColored(v.x0+1, 1, "SLOW", core.ColorMagenta)
	}

	if !f.ShowControls {
		return
	}
	pause := PauseLabel
	if f.State == StatePaused {
		pause = ResumeLabel
	}
	pr := v.cells(f.Pause)
	dst.DrawTextColored(pr.X, pr.Y, pause, core.ColorWhite)
	br := v.cells(f.Back)
	dst.DrawTextColored(br.X, br.Y, BackLabel, core.ColorWhite)
}

func drawBanner(dst *core.Screen, label string) {
	if label == "" {
		return
	}
	text := fmt.Sprintf(" %s ", label)
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColored(x, dst.Height()/2, text, core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
