package core

import (
	"testing"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
)

const testLayer = "solid"

// rowsSource is a TileSource read from ASCII rows: '#' places tile id 1,
// 'x' places tile id 2, anything else leaves the cell empty.
type rowsSource struct {
	rows   []string
	w, h   int
	tw, th int
}

func newRowsSource(rows ...string) rowsSource {
	w := 0
	if len(rows) > 0 {
		w = len(rows[0])
	}
	return rowsSource{rows: rows, w: w, h: len(rows), tw: 16, th: 16}
}

func (s rowsSource) Size() (int, int)     { return s.w, s.h }
func (s rowsSource) TileSize() (int, int) { return s.tw, s.th }

func (s rowsSource) Tiles(layer string) ([]TileRef, error) {
	if layer != testLayer {
		return nil, &LoadError{Layer: layer, Err: ErrMissingLayer}
	}
	var refs []TileRef
	for y, row := range s.rows {
		for x, ch := range row {
			switch ch {
			case '#':
				refs = append(refs, TileRef{X: x, Y: y, ID: 1})
			case 'x':
				refs = append(refs, TileRef{X: x, Y: y, ID: 2})
			}
		}
	}
	return refs, nil
}

func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := Build(newRowsSource(rows...), testLayer, SolidIDs(1))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func hold(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Hold(a)
	}
	return f
}

var noInput = platformcore.NewInputFrame()

const frameDT = 1.0 / 60.0
