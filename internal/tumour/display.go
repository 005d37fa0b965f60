package tumour

import "image/color"

// Display values rendered by the viewer and the movie recorder.
const (
	displayEmpty uint8 = iota
	displayTumour
	displayAdvantaged
)

var tumourPalette = []color.RGBA{
	{R: 18, G: 18, B: 24, A: 255},   // empty lattice
	{R: 198, G: 60, B: 92, A: 255},  // tumour cell
	{R: 255, G: 204, B: 64, A: 255}, // advantageous lineage
}

// Palette exposes the color palette used for rendering the lattice.
func (t *Tumour) Palette() []color.RGBA { return tumourPalette }

// refreshDisplay re-derives one display value from the grid and the
// beneficial set.
func (t *Tumour) refreshDisplay(c Cell) {
	idx := c.Row*t.p.MatrixSize + c.Col
	id := t.grid.At(c)
	switch {
	case id == 0:
		t.display[idx] = displayEmpty
	case t.isBeneficial(id):
		t.display[idx] = displayAdvantaged
	default:
		t.display[idx] = displayTumour
	}
}
