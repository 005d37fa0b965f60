// Command cancer-sim runs a headless tumour growth simulation and writes
// the resulting VAF spectrum plus raw run artifacts.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bezfeng/cancer-sim/internal/core"
	"github.com/bezfeng/cancer-sim/internal/export"
	"github.com/bezfeng/cancer-sim/internal/params"
	"github.com/bezfeng/cancer-sim/internal/tumour"
)

// multiFlag collects repeated -set key=value pairs.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var overrides multiFlag
	paramsPath := flag.String("params", "", "parameter YAML file (defaults apply when empty)")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from wall-clock time")
	outdir := flag.String("outdir", "", "directory for simulation output (stdout only when empty)")
	movie := flag.Bool("movie", false, "record one lattice frame per generation into an AVI (requires -outdir)")
	biopsySize := flag.Int("biopsy", 0, "additionally report a random biopsy of this many cells")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Var(&overrides, "set", "override a parameter, e.g. -set matrix_size=100 (repeatable)")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	p, err := loadParameters(*paramsPath, overrides)
	if err != nil {
		log.Fatalf("parameters: %v", err)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().Unix()
	}
	if runSeed <= 0 {
		log.Fatalf("seed must be a positive integer, got %d", runSeed)
	}

	var layout export.Layout
	if *outdir != "" {
		layout, err = export.NewLayout(*outdir, runSeed)
		if err != nil {
			log.Fatalf("setup output: %v", err)
		}
	}

	sim := tumour.New(p)
	sim.Reset(runSeed)

	var movieWriter *export.Movie
	if *movie {
		if *outdir == "" {
			log.Fatal("-movie requires -outdir")
		}
		movieWriter, err = export.NewMovie(
			filepath.Join(layout.Sim, "growth.avi"),
			p.MatrixSize, p.MatrixSize, movieScale(p.MatrixSize), 4, sim.Palette())
		if err != nil {
			log.Fatalf("setup movie: %v", err)
		}
	}

	slog.Info("tumour growth in progress", "seed", runSeed, "generations", p.NumberOfGenerations, "mode", p.TumourMultiplicity)
	start := time.Now()
	progress := core.NewFixedStep(1)
	for g := 0; g < p.NumberOfGenerations; g++ {
		sim.Step()
		if movieWriter != nil {
			if err := movieWriter.AddFrame(sim.Cells(), g); err != nil {
				log.Fatalf("record frame: %v", err)
			}
		}
		if progress.ShouldStep() {
			slog.Info("growth in progress", "generation", g+1, "of", p.NumberOfGenerations, "population", sim.Population())
		}
	}

	vaf, err := sim.Spectrum()
	if err != nil {
		log.Fatalf("build spectrum: %v", err)
	}
	slog.Info("run finished",
		"population", sim.Population(),
		"mutations", sim.Ledger().Len()-1,
		"deaths", len(sim.Deaths()),
		"elapsed", time.Since(start))

	if movieWriter != nil {
		if err := movieWriter.Close(); err != nil {
			log.Fatalf("finalize movie: %v", err)
		}
	}

	if *biopsySize > 0 {
		biopsy, err := sim.RandomBiopsy(*biopsySize)
		if err != nil {
			slog.Warn("biopsy skipped", "err", err)
		} else if *outdir != "" {
			if err := export.WriteVAF(filepath.Join(layout.Sim, "biopsy_VAF.txt"), biopsy); err != nil {
				log.Fatalf("write biopsy: %v", err)
			}
		} else {
			printVAF(biopsy)
		}
	}

	if *outdir != "" {
		if err := export.WriteAll(layout, sim, vaf); err != nil {
			log.Fatalf("export: %v", err)
		}
		slog.Info("simulation data exported", "dir", layout.Sim)
		return
	}
	printVAF(vaf)
}

func loadParameters(path string, overrides multiFlag) (params.Parameters, error) {
	cfg := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return params.Parameters{}, fmt.Errorf("malformed -set %q, expected key=value", kv)
		}
		cfg[key] = value
	}
	if path == "" {
		return params.FromMap(cfg)
	}
	p, err := params.LoadFile(path)
	if err != nil {
		return p, err
	}
	return p.WithOverrides(cfg)
}

// movieScale picks a pixel scale that keeps frames near 512px on a side.
func movieScale(matrixSize int) int {
	scale := 512 / matrixSize
	if scale < 1 {
		return 1
	}
	if scale > 8 {
		return 8
	}
	return scale
}

func printVAF(vaf []tumour.Bin) {
	for _, bin := range vaf {
		fmt.Printf("%d\t%g\n", bin.MutationID, bin.Count)
	}
}
