package factors

import (
	"math"
	"testing"

	"darkagency/config"
	"darkagency/entropy"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestCoreScoreClamping(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{"all zero", Profile{}, 0},
		{"all max", Profile{Narcissism: 1, Machiavellianism: 1, Psychopathy: 1, Sadism: 1}, 1.0},
		{"pure psychopathy", Profile{Psychopathy: 1}, 0.45},
		{"out of range input stays clamped", Profile{Psychopathy: 5, Sadism: 5}, 1.0},
		{"negative input clamps to zero", Profile{Psychopathy: -3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoreScore(tt.profile, cfg.Loadings)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CoreScore = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("CoreScore = %v outside [0,1]", got)
			}
		})
	}
}

func TestResidualScore(t *testing.T) {
	// mach=0.8, narc=0.6, core=0.2, vigilance=0.5:
	// clamp(0.4+0.3-0.07) * (1+0.1) = 0.63*1.1 = 0.693
	p := Profile{Machiavellianism: 0.8, Narcissism: 0.6, Vigilance: 0.5}
	got := ResidualScore(p, 0.2)
	if math.Abs(got-0.693) > 1e-9 {
		t.Errorf("ResidualScore = %v, want 0.693", got)
	}

	// High core orthogonalizes the residual away entirely.
	low := ResidualScore(Profile{Machiavellianism: 0.1}, 1.0)
	if low != 0 {
		t.Errorf("ResidualScore with dominant core = %v, want 0", low)
	}

	// Vigilance boost can never push past 1.
	high := ResidualScore(Profile{Machiavellianism: 1, Narcissism: 1, Vigilance: 1}, 0)
	if high != 1 {
		t.Errorf("ResidualScore at ceiling = %v, want 1", high)
	}
}

func TestClassifyRegions(t *testing.T) {
	cfg := testConfig(t)
	th := cfg.Thresholds

	tests := []struct {
		name           string
		core, residual float64
		want           Archetype
	}{
		{"low both", 0.2, 0.2, Normal},
		{"high core dominates", 0.9, 0.9, Toxic},
		{"high residual low core", 0.2, 0.8, DarkInnovator},
		{"high residual mid core", 0.6, 0.8, Maverick},
		{"exactly at toxic threshold", th.ToxicCore, 0.2, Normal},
		{"just above toxic threshold", th.ToxicCore + 1e-9, 0.2, Toxic},
		{"exactly at agency threshold", 0.2, th.AgencyResidual, Normal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.core, tt.residual, th)
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.core, tt.residual, got, tt.want)
			}
		})
	}
}

// The four threshold regions must partition the unit square: every pair
// classifies to exactly one archetype.
func TestClassifyTotality(t *testing.T) {
	cfg := testConfig(t)
	for core := 0.0; core <= 1.0; core += 0.01 {
		for residual := 0.0; residual <= 1.0; residual += 0.01 {
			got := Classify(core, residual, cfg.Thresholds)
			switch got {
			case Normal, DarkInnovator, Maverick, Toxic:
			default:
				t.Fatalf("Classify(%v, %v) = %v, not a valid archetype", core, residual, got)
			}
		}
	}
}

func TestSampleStaysInRange(t *testing.T) {
	cfg := testConfig(t)
	rng := entropy.NewSource(11)

	for _, tmpl := range cfg.Archetypes {
		for i := 0; i < 200; i++ {
			p := Sample(tmpl, rng)
			for name, v := range map[string]float64{
				"narcissism":       p.Narcissism,
				"machiavellianism": p.Machiavellianism,
				"psychopathy":      p.Psychopathy,
				"sadism":           p.Sadism,
				"vigilance":        p.Vigilance,
				"psycap":           p.Psycap,
				"politics":         p.Politics,
			} {
				if v < 0 || v > 1 {
					t.Fatalf("archetype %s trait %s = %v outside [0,1]", tmpl.Name, name, v)
				}
			}
		}
	}
}

func TestPickTemplateFallsThroughToBaseline(t *testing.T) {
	cfg := testConfig(t)
	rng := entropy.NewSource(3)

	counts := map[string]int{}
	for i := 0; i < 5000; i++ {
		counts[PickTemplate(cfg.Archetypes, rng).Name]++
	}
	// Every configured template should appear, and the baseline (last,
	// largest ratio) should dominate.
	for _, tmpl := range cfg.Archetypes {
		if counts[tmpl.Name] == 0 {
			t.Errorf("template %q never selected in 5000 rolls", tmpl.Name)
		}
	}
	last := cfg.Archetypes[len(cfg.Archetypes)-1].Name
	for name, n := range counts {
		if name != last && n > counts[last] {
			t.Errorf("template %q selected %d times, more than baseline %q (%d)", name, n, last, counts[last])
		}
	}
}

func TestArchetypeString(t *testing.T) {
	want := map[Archetype]string{
		Normal:        "normal",
		DarkInnovator: "dark_innovator",
		Maverick:      "maverick",
		Toxic:         "toxic",
	}
	for a, s := range want {
		if a.String() != s {
			t.Errorf("%d.String() = %q, want %q", a, a.String(), s)
		}
	}
}
