package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"darkagency/config"
	"darkagency/factors"
	"darkagency/sim"
)

func observedEngine() *Engine {
	e := NewEngine(0.1)
	e.Observe(1, []sim.AgentSnapshot{
		{ID: 0, Alive: true, Archetype: factors.Normal, Core: 0.2, Residual: 0.3},
		{ID: 1, Alive: true, Archetype: factors.Toxic, Core: 0.9, Residual: 0.1, PeerDamage: 2, Violations: 2},
	})
	return e
}

func TestNilOutputManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	// All operations must be safe on a nil manager.
	if err := om.WriteTick(observedEngine()); err != nil {
		t.Errorf("WriteTick on nil manager: %v", err)
	}
	if err := om.WriteSummary(observedEngine().Report()); err != nil {
		t.Errorf("WriteSummary on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestTelemetryCSVHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	e := observedEngine()
	for i := 0; i < 3; i++ {
		if err := om.WriteTick(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want 1 header + 3 rows", len(lines))
	}
	if !strings.Contains(lines[0], "tick") || !strings.Contains(lines[0], "r_residual_innovation") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if strings.Contains(lines[1], "tick") {
		t.Error("header repeated in data rows")
	}
}

func TestWriteSummaryAndReport(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteSummary(observedEngine().Report()); err != nil {
		t.Fatal(err)
	}

	summary, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(summary)), "\n")
	// Header plus one row per archetype.
	if len(lines) != 1+len(factors.Archetypes) {
		t.Errorf("summary.csv has %d lines, want %d", len(lines), 1+len(factors.Archetypes))
	}

	report, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "HYPOTHESIS REPORT") {
		t.Error("report.txt missing report header")
	}
}

func TestWriteConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	back, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("snapshot does not round-trip: %v", err)
	}
	if back.Run.MaxTicks != cfg.Run.MaxTicks {
		t.Error("snapshot differs from the source config")
	}
}
