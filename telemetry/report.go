package telemetry

import (
	"fmt"
	"strings"
)

// Hypothesis is one correlation claim evaluated against the confirmation
// threshold.
type Hypothesis struct {
	Name         string
	Claim        string
	R            float64
	WantPositive bool
	Confirmed    bool
}

// Report is the end-of-run hypothesis summary, built from the final tick's
// cross-sectional statistics.
type Report struct {
	Tick       int
	Population int
	Alive      int
	Hypotheses [3]Hypothesis
	Archetypes []ArchetypeStats
	Synthesis  string
}

// Report builds the hypothesis report from the engine's latest aggregates.
func (e *Engine) Report() Report {
	c := e.corr
	r := Report{
		Tick:       e.tick,
		Population: e.population,
		Alive:      e.alive,
		Archetypes: e.Archetypes(),
	}

	r.Hypotheses = [3]Hypothesis{
		{
			Name:         "H1",
			Claim:        "strategic agency predicts innovation positively",
			R:            c.ResidualInnovation,
			WantPositive: true,
		},
		{
			Name:         "H2",
			Claim:        "the dark core predicts interpersonal damage positively",
			R:            c.CoreDamage,
			WantPositive: true,
		},
		{
			Name:         "H3",
			Claim:        "the dark core predicts innovation negatively",
			R:            c.CoreInnovation,
			WantPositive: false,
		},
	}
	for i := range r.Hypotheses {
		h := &r.Hypotheses[i]
		if h.WantPositive {
			h.Confirmed = h.R > e.confirmThreshold
		} else {
			h.Confirmed = h.R < -e.confirmThreshold
		}
	}

	if r.Hypotheses[0].Confirmed && r.Hypotheses[2].R < 0 {
		r.Synthesis = "Strategic agency, net of the dark core, is positively associated with innovation."
	} else {
		r.Synthesis = "Mixed results; the trait-behavior relationships did not separate cleanly."
	}
	return r
}

// Render formats the report as human-readable text.
func (r Report) Render() string {
	var b strings.Builder
	line := strings.Repeat("=", 64)

	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "HYPOTHESIS REPORT  (tick %d, %d/%d agents alive)\n", r.Tick, r.Alive, r.Population)
	fmt.Fprintf(&b, "%s\n\n", line)

	for _, h := range r.Hypotheses {
		status := "NOT CONFIRMED"
		if h.Confirmed {
			status = "CONFIRMED"
		}
		dir := "+"
		if !h.WantPositive {
			dir = "-"
		}
		fmt.Fprintf(&b, "%s: %s (expected %s)\n", h.Name, h.Claim, dir)
		fmt.Fprintf(&b, "    r = %+.3f  ->  %s\n\n", h.R, status)
	}

	fmt.Fprintf(&b, "Per-archetype aggregates:\n")
	for _, a := range r.Archetypes {
		fmt.Fprintf(&b, "  %-15s %3d/%3d alive  innov %.2f  violations %.2f  damage %.2f\n",
			a.Archetype, a.Alive, a.Count, a.MeanInnovations, a.MeanViolations, a.MeanPeerDamage)
	}

	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", line, r.Synthesis, line)
	return b.String()
}
