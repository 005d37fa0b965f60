// Package export is the output-sink collaborator: it owns file formats and
// directory layout for persisted simulation results. The engine itself
// never chooses paths or formats.
package export

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bezfeng/cancer-sim/internal/params"
	"github.com/bezfeng/cancer-sim/internal/tumour"
)

// Archive is the persisted end-of-run state: enough to resume lineage
// reconstruction later without re-running growth.
type Archive struct {
	Params params.Parameters
	Seed   int64
	Grid   map[tumour.Cell]int
	Ledger []tumour.Entry
	Deaths []tumour.DeathRecord
	Growth []int
}

// Layout holds the per-seed output directories:
// <outdir>/cancer_<seed>/{log,simOutput}.
type Layout struct {
	Root string
	Log  string
	Sim  string
}

// NewLayout creates the output directory tree for one run. It refuses to
// reuse a seed directory that already exists rather than overwrite old
// results.
func NewLayout(outdir string, seed int64) (Layout, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return Layout{}, fmt.Errorf("create outdir: %w", err)
	}
	root := filepath.Join(outdir, fmt.Sprintf("cancer_%d", seed))
	if _, err := os.Stat(root); err == nil {
		return Layout{}, fmt.Errorf("output directory %s already exists; pick another seed or outdir", root)
	}
	l := Layout{
		Root: root,
		Log:  filepath.Join(root, "log"),
		Sim:  filepath.Join(root, "simOutput"),
	}
	for _, dir := range []string{l.Root, l.Log, l.Sim} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return Layout{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return l, nil
}

// WriteAll persists the VAF spectrum and the raw end-of-run artifacts for
// one finished run.
func WriteAll(l Layout, t *tumour.Tumour, vaf []tumour.Bin) error {
	if err := WriteVAF(filepath.Join(l.Sim, "mtx_VAF.txt"), vaf); err != nil {
		return err
	}
	if err := WriteGrowthCSV(filepath.Join(l.Sim, "growth.csv"), t.GrowthHistory()); err != nil {
		return err
	}
	if err := RenderGrowthCurve(filepath.Join(l.Sim, "growthCurve.png"), t.GrowthHistory()); err != nil {
		return err
	}
	arch := Archive{
		Params: t.Params(),
		Seed:   t.Seed(),
		Grid:   t.Grid().Snapshot(),
		Ledger: t.Ledger().Entries(),
		Deaths: t.Deaths(),
		Growth: t.GrowthHistory(),
	}
	if err := WriteArchive(filepath.Join(l.Sim, "state.gob"), arch); err != nil {
		return err
	}
	slog.Debug("run artifacts written", "dir", l.Sim, "bins", len(vaf))
	return nil
}

// WriteVAF writes one mutation-id/count pair per line, tab separated.
func WriteVAF(path string, vaf []tumour.Bin) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create VAF file: %w", err)
	}
	defer f.Close()
	for _, bin := range vaf {
		if _, err := fmt.Fprintf(f, "%d\t%g\n", bin.MutationID, bin.Count); err != nil {
			return fmt.Errorf("write VAF file: %w", err)
		}
	}
	return nil
}

// WriteGrowthCSV writes the population history; the history holds two
// samples per generation, so the division-cycle column advances by halves.
func WriteGrowthCSV(path string, growth []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create growth CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"division_cycle", "population"}); err != nil {
		return fmt.Errorf("write growth CSV header: %w", err)
	}
	for i, n := range growth {
		row := []string{
			strconv.FormatFloat(float64(i)/2, 'f', 1, 64),
			strconv.Itoa(n),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write growth CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush growth CSV: %w", err)
	}
	return nil
}

// WriteArchive gob-encodes the archive to path.
func WriteArchive(path string, a Archive) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(a); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	return nil
}

// Load reads an archive written by WriteArchive.
func Load(path string) (Archive, error) {
	var a Archive
	f, err := os.Open(path)
	if err != nil {
		return a, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return a, fmt.Errorf("decode archive: %w", err)
	}
	return a, nil
}
