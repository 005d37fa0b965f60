//go:build ebiten

// Command cancer-sim-view watches a tumour grow live. Space pauses, N
// single-steps, R reseeds, Tab toggles the status overlay.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/bezfeng/cancer-sim/internal/app"
	"github.com/bezfeng/cancer-sim/internal/params"
	"github.com/bezfeng/cancer-sim/internal/tumour"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	p := params.Default()
	if cfg.Params != "" {
		var err error
		p, err = params.LoadFile(cfg.Params)
		if err != nil {
			log.Fatalf("load parameters: %v", err)
		}
	}

	sim := tumour.New(p)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("cancer-sim: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
