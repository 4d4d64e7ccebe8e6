package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"darkagency/config"
	"darkagency/factors"
)

// TickRecord is one row of the per-tick statistics time series.
type TickRecord struct {
	Tick  int `csv:"tick"`
	Alive int `csv:"alive"`

	ResidualInnovationR float64 `csv:"r_residual_innovation"`
	CoreDamageR         float64 `csv:"r_core_damage"`
	CoreInnovationR     float64 `csv:"r_core_innovation"`

	NormalAlive     int     `csv:"normal_alive"`
	NormalInnov     float64 `csv:"normal_innov_mean"`
	NormalViolation float64 `csv:"normal_violations_mean"`

	DarkAlive     int     `csv:"dark_alive"`
	DarkInnov     float64 `csv:"dark_innov_mean"`
	DarkViolation float64 `csv:"dark_violations_mean"`

	MaverickAlive     int     `csv:"maverick_alive"`
	MaverickInnov     float64 `csv:"maverick_innov_mean"`
	MaverickViolation float64 `csv:"maverick_violations_mean"`

	ToxicAlive     int     `csv:"toxic_alive"`
	ToxicDamage    float64 `csv:"toxic_damage_mean"`
	ToxicViolation float64 `csv:"toxic_violations_mean"`
}

// SummaryRecord is one per-archetype row of the end-of-run summary table.
type SummaryRecord struct {
	Archetype       string  `csv:"archetype"`
	Count           int     `csv:"count"`
	Alive           int     `csv:"alive"`
	MeanCore        float64 `csv:"mean_core"`
	MeanResidual    float64 `csv:"mean_residual"`
	MeanInnovations float64 `csv:"mean_innovations"`
	MeanViolations  float64 `csv:"mean_violations"`
	MeanPeerDamage  float64 `csv:"mean_peer_damage"`
	MeanWaited      float64 `csv:"mean_waited"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File

	telemetryHeaderWritten bool
}

// NewOutputManager creates an output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled); a nil manager
// is safe to use.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}

	return &OutputManager{dir: dir, telemetryFile: f}, nil
}

// WriteConfig saves the run configuration as YAML alongside the results.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTick appends the engine's latest aggregates to telemetry.csv.
func (om *OutputManager) WriteTick(e *Engine) error {
	if om == nil {
		return nil
	}

	arch := e.Archetypes()
	corr := e.Correlations()
	rec := TickRecord{
		Tick:  e.Tick(),
		Alive: e.Alive(),

		ResidualInnovationR: corr.ResidualInnovation,
		CoreDamageR:         corr.CoreDamage,
		CoreInnovationR:     corr.CoreInnovation,

		NormalAlive:     arch[factors.Normal].Alive,
		NormalInnov:     arch[factors.Normal].MeanInnovations,
		NormalViolation: arch[factors.Normal].MeanViolations,

		DarkAlive:     arch[factors.DarkInnovator].Alive,
		DarkInnov:     arch[factors.DarkInnovator].MeanInnovations,
		DarkViolation: arch[factors.DarkInnovator].MeanViolations,

		MaverickAlive:     arch[factors.Maverick].Alive,
		MaverickInnov:     arch[factors.Maverick].MeanInnovations,
		MaverickViolation: arch[factors.Maverick].MeanViolations,

		ToxicAlive:     arch[factors.Toxic].Alive,
		ToxicDamage:    arch[factors.Toxic].MeanPeerDamage,
		ToxicViolation: arch[factors.Toxic].MeanViolations,
	}

	records := []TickRecord{rec}
	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteSummary writes the final per-archetype table and the rendered
// hypothesis report.
func (om *OutputManager) WriteSummary(r Report) error {
	if om == nil {
		return nil
	}

	records := make([]SummaryRecord, 0, len(r.Archetypes))
	for _, a := range r.Archetypes {
		records = append(records, SummaryRecord{
			Archetype:       a.Archetype.String(),
			Count:           a.Count,
			Alive:           a.Alive,
			MeanCore:        a.MeanCore,
			MeanResidual:    a.MeanResidual,
			MeanInnovations: a.MeanInnovations,
			MeanViolations:  a.MeanViolations,
			MeanPeerDamage:  a.MeanPeerDamage,
			MeanWaited:      a.MeanWaited,
		})
	}

	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := os.WriteFile(filepath.Join(om.dir, "report.txt"), []byte(r.Render()), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.telemetryFile.Close()
}
