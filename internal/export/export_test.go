package export

import (
	"encoding/csv"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bezfeng/cancer-sim/internal/params"
	"github.com/bezfeng/cancer-sim/internal/tumour"
)

func TestLayoutCreatesTree(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLayout(dir, 42)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	for _, sub := range []string{l.Root, l.Log, l.Sim} {
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", sub, err)
		}
	}
	if filepath.Base(l.Root) != "cancer_42" {
		t.Fatalf("root directory = %s, want cancer_42", l.Root)
	}
}

func TestLayoutRefusesExistingSeedDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewLayout(dir, 7); err != nil {
		t.Fatalf("first NewLayout: %v", err)
	}
	if _, err := NewLayout(dir, 7); err == nil {
		t.Fatal("expected error reusing an existing seed directory")
	}
}

func TestWriteVAF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaf.txt")
	vaf := []tumour.Bin{{MutationID: 1, Count: 12}, {MutationID: 2, Count: 0.5}, {MutationID: 3, Count: 3}}
	if err := WriteVAF(path, vaf); err != nil {
		t.Fatalf("WriteVAF: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines, want 3", len(lines))
	}
	if lines[1] != "2\t0.5" {
		t.Fatalf("line = %q, want %q", lines[1], "2\t0.5")
	}
}

func TestWriteGrowthCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growth.csv")
	if err := WriteGrowthCSV(path, []int{1, 1, 2, 2}); err != nil {
		t.Fatalf("WriteGrowthCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want header plus 4 samples", len(rows))
	}
	if !slices.Equal(rows[0], []string{"division_cycle", "population"}) {
		t.Fatalf("header = %v", rows[0])
	}
	// Two samples per generation, so the cycle column advances by halves.
	if !slices.Equal(rows[2], []string{"0.5", "1"}) {
		t.Fatalf("second sample row = %v, want [0.5 1]", rows[2])
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.gob")
	arch := Archive{
		Params: params.Default(),
		Seed:   99,
		Grid: map[tumour.Cell]int{
			{Row: 2, Col: 2}: 3,
			{Row: 2, Col: 3}: 2,
		},
		Ledger: []tumour.Entry{{}, {Parent: 0, Own: 1}, {Parent: 1, Own: 2}, {Parent: 1, Own: 3}},
		Deaths: []tumour.DeathRecord{{Cell: tumour.Cell{Row: 1, Col: 1}, Generation: 4}},
		Growth: []int{1, 1, 2, 2},
	}
	if err := WriteArchive(path, arch); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Params != arch.Params || got.Seed != arch.Seed {
		t.Fatalf("params/seed changed in round trip: %+v", got)
	}
	if !maps.Equal(got.Grid, arch.Grid) {
		t.Fatalf("grid changed in round trip: %v", got.Grid)
	}
	if !slices.Equal(got.Ledger, arch.Ledger) {
		t.Fatalf("ledger changed in round trip: %v", got.Ledger)
	}
	if !slices.Equal(got.Deaths, arch.Deaths) {
		t.Fatalf("deaths changed in round trip: %v", got.Deaths)
	}
	if !slices.Equal(got.Growth, arch.Growth) {
		t.Fatalf("growth changed in round trip: %v", got.Growth)
	}
}

func TestRenderGrowthCurveSkipsShortHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	if err := RenderGrowthCurve(path, []int{1}); err != nil {
		t.Fatalf("RenderGrowthCurve: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("single-sample history should not produce a chart")
	}
}

func TestRenderGrowthCurveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	if err := RenderGrowthCurve(path, []int{1, 2, 4, 7, 11, 14}); err != nil {
		t.Fatalf("RenderGrowthCurve: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("chart file is empty")
	}
}

func TestMovieRecordsFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growth.avi")
	sim := tumour.New(params.Default())
	sim.Reset(1)

	m, err := NewMovie(path, 10, 10, 2, 4, sim.Palette())
	if err != nil {
		t.Fatalf("NewMovie: %v", err)
	}
	for g := 0; g < 2; g++ {
		sim.Step()
		if err := m.AddFrame(sim.Cells(), g); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("movie file is empty")
	}
}

func TestMovieRejectsWrongFrameSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.avi")
	m, err := NewMovie(path, 4, 4, 1, 4, nil)
	if err != nil {
		t.Fatalf("NewMovie: %v", err)
	}
	defer m.Close()
	if err := m.AddFrame(make([]uint8, 5), 0); err == nil {
		t.Fatal("expected size-mismatch error")
	}
}
