package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// viewport maps the logical view (bottom-left origin, y up) onto terminal
// cells (top-left origin, y down). Cells are roughly twice as tall as wide,
// so one row covers twice the world units of one column.
type viewport struct {
	cols, rows   int
	unitX, unitY float64
	x0, fieldW   int
}

func newViewport(cols, rows int, viewW, viewH float64) viewport {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	unitY := viewH / float64(rows)
	unitX := unitY / 2
	if viewW/unitX > float64(cols) {
		unitX = viewW / float64(cols)
	}
	fieldW := int(math.Ceil(viewW / unitX))
	if fieldW > cols {
		fieldW = cols
	}
	return viewport{
		cols:   cols,
		rows:   rows,
		unitX:  unitX,
		unitY:  unitY,
		x0:     (cols - fieldW) / 2,
		fieldW: fieldW,
	}
}

// col returns the column holding view x.
func (v viewport) col(x float64) int {
	return v.x0 + int(math.Floor(x/v.unitX))
}

// row returns the row holding view y.
func (v viewport) row(y float64) int {
	return v.rows - 1 - int(math.Floor(y/v.unitY))
}

// cells returns the cell rectangle covered by a view-space box.
func (v viewport) cells(b core.Box) core.Rect {
	left := v.col(b.X)
	right := v.x0 + int(math.Ceil(b.Right()/v.unitX)) - 1
	if right < left {
		right = left
	}
	bottom := v.row(b.Y)
	top := v.rows - int(math.Ceil(b.Top()/v.unitY))
	if top > bottom {
		top = bottom
	}
	return core.NewRect(left, top, right-left+1, bottom-top+1)
}

// touch converts a cell to the view point at its center.
func (v viewport) touch(col, row int) (core.Touch, bool) {
	if col < v.x0 || col >= v.x0+v.fieldW || row < 0 || row >= v.rows {
		return core.Touch{}, false
	}
	return core.Touch{
		X: (float64(col-v.x0) + 0.5) * v.unitX,
		Y: (float64(v.rows-1-row) + 0.5) * v.unitY,
	}, true
}
