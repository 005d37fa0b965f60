package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Movie records one lattice frame per generation into an MJPEG AVI.
type Movie struct {
	writer  mjpeg.AviWriter
	w, h    int
	scale   int
	palette []color.RGBA
}

// NewMovie opens an AVI at path sized for a w x h lattice drawn at the
// given pixel scale.
func NewMovie(path string, w, h, scale int, fps int32, palette []color.RGBA) (*Movie, error) {
	if scale < 1 {
		scale = 1
	}
	aw, err := mjpeg.New(path, int32(w*scale), int32(h*scale), fps)
	if err != nil {
		return nil, fmt.Errorf("create movie %s: %w", path, err)
	}
	return &Movie{writer: aw, w: w, h: h, scale: scale, palette: palette}, nil
}

// AddFrame rasterizes the cell buffer through the palette, stamps the
// generation number and appends the JPEG-encoded frame.
func (m *Movie) AddFrame(cells []uint8, generation int) error {
	if len(cells) != m.w*m.h {
		return fmt.Errorf("frame size mismatch: %d cells for %dx%d lattice", len(cells), m.w, m.h)
	}
	img := image.NewRGBA(image.Rect(0, 0, m.w*m.scale, m.h*m.scale))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			block := image.Rect(x*m.scale, y*m.scale, (x+1)*m.scale, (y+1)*m.scale)
			draw.Draw(img, block, &image.Uniform{C: m.colorFor(cells[y*m.w+x])}, image.Point{}, draw.Src)
		}
	}
	m.stampLabel(img, fmt.Sprintf("generation %d", generation))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := m.writer.AddFrame(buf.Bytes()); err != nil {
		return fmt.Errorf("append frame: %w", err)
	}
	return nil
}

// Close finalizes the AVI container.
func (m *Movie) Close() error { return m.writer.Close() }

func (m *Movie) colorFor(v uint8) color.RGBA {
	if int(v) < len(m.palette) {
		return m.palette[v]
	}
	if len(m.palette) == 0 {
		return color.RGBA{A: 255}
	}
	return m.palette[len(m.palette)-1]
}

func (m *Movie) stampLabel(img *image.RGBA, label string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(label)
}
