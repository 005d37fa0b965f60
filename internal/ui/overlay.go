//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/bezfeng/cancer-sim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type statusProvider interface {
	Generation() int
	Population() int
}

// Overlay draws a status line (generation and live-cell count) over the
// simulation view. Tab toggles it.
type Overlay struct {
	sim    core.Sim
	hidden bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	return &Overlay{sim: sim}
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.hidden = !o.hidden
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.hidden {
		return
	}
	provider, ok := o.sim.(statusProvider)
	if !ok {
		return
	}
	label := fmt.Sprintf("gen %d  cells %d", provider.Generation(), provider.Population())
	text.Draw(screen, label, basicfont.Face7x13, 4, 14, color.White)
}
