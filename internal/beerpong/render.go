package beerpong

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// Visual characters for rendering
const (
	CupChar     = 'O'
	BallChar    = '●'
	PlayerChar  = '@'
	PointerChar = '·'
	HitChar     = 'X'
	TableChar   = '░'
	AimChar     = '·'
)

// Minimum screen size for a usable view.
const (
	minScreenW = 40
	minScreenH = 14
)

// projection maps a plane onto screen cells. Terminal cells are about twice
// as tall as they are wide, so columns use twice the scale of rows.
type projection struct {
	originX, originY int
	minU, minV       float64
	scale            float64 // Rows per metre
}

func fitProjection(area core.Rect, minU, maxU, minV, maxV float64) projection {
	spanU := math.Max(maxU-minU, 0.1)
	spanV := math.Max(maxV-minV, 0.1)
	k := math.Min(float64(area.W-1)/(2*spanU), float64(area.H-1)/spanV)
	usedW := int(spanU * 2 * k)
	usedH := int(spanV * k)
	return projection{
		originX: area.X + (area.W-usedW)/2,
		originY: area.Y + (area.H-usedH)/2,
		minU:    minU,
		minV:    minV,
		scale:   k,
	}
}

func (p projection) cell(u, v float64) (int, int) {
	x := p.originX + int(math.Round((u-p.minU)*2*p.scale))
	y := p.originY + int(math.Round((v-p.minV)*p.scale))
	return x, y
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	area := core.NewRect(1, 2, dst.Width()-2, dst.Height()-4)
	switch g.phase {
	case PhaseSelecting:
		g.renderRoom(dst, area)
	case PhasePlaying, PhaseWon:
		g.renderTable(dst, area)
	}

	g.renderHUD(dst)
	g.renderCaptions(dst)
	g.renderOverlay(dst)
}

// renderRoom draws the room from above with the selection pointer.
func (g *Game) renderRoom(dst *core.Screen, area core.Rect) {
	surfaces := g.env.Room.Surfaces()
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, s := range surfaces {
		for _, c := range corners(s) {
			minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
			minZ, maxZ = math.Min(minZ, c.Z), math.Max(maxZ, c.Z)
		}
	}
	if math.IsInf(minX, 0) {
		return
	}
	proj := fitProjection(area, minX, maxX, minZ, maxZ)

	hovered, hovering := g.selector.Hovered()
	for _, s := range surfaces {
		if !s.HasExtent() || s.Label == room.LabelCeiling || !g.world.SurfaceVisible(s.ID) {
			continue
		}
		r := footprint(proj, s)
		switch {
		case s.Label == room.LabelFloor:
			dst.DrawBox(r, s.Label.DebugColor())
		case s.Label == room.LabelWall:
			dst.DrawRect(r, '█')
			colorRect(dst, r, s.Label.DebugColor())
		default:
			color := s.Label.DebugColor()
			glyph := '▒'
			if hovering && hovered.ID == s.ID {
				color, glyph = core.ColorBrightYellow, '█'
			}
			fillRect(dst, r, glyph, color)
			if len(s.ID) <= r.W {
				dst.DrawTextColored(r.X+(r.W-len(s.ID))/2, r.Y+r.H/2, s.ID, core.ColorBrightWhite)
			}
		}
	}

	ray := g.PointerRay()
	hit, ok := g.world.Raycast(ray, SelectRange)
	end := SelectRange
	if ok {
		end = hit.Distance
	}
	dir := ray.Direction.Normalize()
	for t := 0.1; t < end; t += 0.1 {
		p := ray.Origin.Add(dir.Scale(t))
		x, y := proj.cell(p.X, p.Z)
		dst.SetColored(x, y, PointerChar, core.ColorGreen)
	}
	if ok {
		hx, hy := proj.cell(hit.Point.X, hit.Point.Z)
		dst.SetColored(hx, hy, HitChar, core.ColorBrightGreen)
	}
	px, py := proj.cell(ray.Origin.X, ray.Origin.Z)
	dst.SetColored(px, py, PlayerChar, core.ColorBrightWhite)
}

// renderTable draws the selected table with the player on the left and the
// rack on the right.
func (g *Game) renderTable(dst *core.Screen, area core.Rect) {
	s := g.session
	p := s.Placement
	long, short := s.Table.Extent.W, s.Table.Extent.D
	if !p.IsWide {
		long, short = short, long
	}
	frame := g.tableFrame()
	margin := 0.15
	proj := fitProjection(area, -long/2-margin, long/2+margin, -short/2-margin, short/2+margin)

	x0, y0 := proj.cell(-long/2, -short/2)
	x1, y1 := proj.cell(long/2, short/2)
	top := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
	fillRect(dst, top, TableChar, core.ColorGray)
	dst.DrawBox(top, s.Table.Label.DebugColor())

	// Aim guide
	if s.Ball.Ready() {
		spawnU, spawnV := frame.project(s.Ball.Position())
		yaw := core.Deg2Rad(g.aimDeg)
		reach := 0.15 + 0.35*g.power
		for t := 0.05; t <= reach; t += 0.05 {
			x, y := proj.cell(spawnU+t*math.Cos(yaw), spawnV+t*math.Sin(yaw))
			dst.SetColored(x, y, AimChar, core.ColorBrightGreen)
		}
	}

	for _, cup := range s.Rack.CupPoses() {
		u, v := frame.project(cup.Position)
		x, y := proj.cell(u, v)
		dst.SetColored(x, y, CupChar, core.ColorBrightRed)
	}

	if !s.Ball.Removed() {
		u, v := frame.project(s.Ball.Position())
		x, y := proj.cell(u, v)
		color := core.ColorBrightWhite
		if s.Ball.Resetting() {
			color = core.ColorGray
		}
		dst.SetColored(x, y, BallChar, color)
	}

	px, py := proj.cell(-long/2-margin/2, 0)
	dst.SetColored(px, py, PlayerChar, core.ColorBrightWhite)
}

// tableView projects world points onto the table plane: u runs from the
// player towards the rack, v is lateral.
type tableView struct {
	center, rows, lateral core.Vec3
}

func (g *Game) tableFrame() tableView {
	s := g.session
	up := s.Table.Normal()
	rows := s.Placement.Rack.Position.Sub(s.Placement.Ball.Position)
	rows = rows.Sub(up.Scale(rows.Dot(up))).Normalize()
	return tableView{center: s.Table.Pose.Position, rows: rows, lateral: rows.Cross(up)}
}

func (t tableView) project(p core.Vec3) (float64, float64) {
	rel := p.Sub(t.center)
	return rel.Dot(t.rows), rel.Dot(t.lateral)
}

// renderHUD draws the title, scoreboard and throw controls.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, g.mode.Title)

	switch g.phase {
	case PhaseSelecting:
		dst.DrawTextCentered(0, "Point at a table and pinch")
		dst.DrawText(1, dst.Height()-1, "←/→/↑/↓ point  ENTER pinch  Q quit")
	case PhasePlaying, PhaseWon:
		view := g.session.Score.Snapshot()
		if view.Won {
			dst.DrawTextColored(dst.Width()/2-8, 0, "You Win!", core.ColorBrightYellow)
		} else {
			dst.DrawTextColored(dst.Width()/2-10, 0, view.HitsText, core.ColorBrightGreen)
			dst.DrawTextColored(dst.Width()/2+2, 0, view.MissesText, core.ColorBrightRed)
		}
		score := fmt.Sprintf("Score: %d", g.session.Score.Points())
		dst.DrawText(dst.Width()-len(score)-1, 0, score)

		filled := int(math.Round(g.power * 10))
		bar := strings.Repeat("#", filled) + strings.Repeat("-", 10-filled)
		controls := fmt.Sprintf("Power [%s] %3.0f%%  Aim %+5.1f°  Cups %d", bar, g.power*100, g.aimDeg, g.session.Rack.Count())
		dst.DrawText(1, 1, controls)
		dst.DrawText(1, dst.Height()-1, "←/→ aim  ↑/↓ power  SPACE throw  P pause  Q quit")
	}
}

// renderCaptions shows the most recent sound cues.
func (g *Game) renderCaptions(dst *core.Screen) {
	events := g.feed.Recent()
	if len(events) > 3 {
		events = events[len(events)-3:]
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, "♪ "+e.Cue.String())
	}
	line := strings.Join(parts, "  ")
	dst.DrawTextColored(dst.Width()-len([]rune(line))-1, dst.Height()-2, line, core.ColorCyan)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.phase == PhaseWon:
		lines := strings.Split(VictoryText, "\n")
		sub := fmt.Sprintf("%s  Score: %d  |  Press R to restart", lines[len(lines)-1], g.session.Score.Points())
		g.drawCenteredBox(dst, lines[0], sub)
	case g.phase == PhaseFailed:
		msg := "No playable table"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.drawCenteredBox(dst, "CANNOT START", msg)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

// corners returns the four world corners of a surface rectangle.
func corners(s room.Surface) []core.Vec3 {
	hw, hd := s.Extent.W/2, s.Extent.D/2
	return []core.Vec3{
		s.Pose.TransformPoint(core.V3(-hw, -hd, 0)),
		s.Pose.TransformPoint(core.V3(hw, -hd, 0)),
		s.Pose.TransformPoint(core.V3(hw, hd, 0)),
		s.Pose.TransformPoint(core.V3(-hw, hd, 0)),
	}
}

// footprint returns the screen rectangle covering a surface seen from above.
func footprint(proj projection, s room.Surface) core.Rect {
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, c := range corners(s) {
		x, y := proj.cell(c.X, c.Z)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return core.NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

func fillRect(dst *core.Screen, r core.Rect, glyph rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, glyph, c)
		}
	}
}

func colorRect(dst *core.Screen, r core.Rect, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, dst.Get(x, y), c)
		}
	}
}
