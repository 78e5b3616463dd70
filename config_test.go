package polyreg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGateConfig_MissingFile(t *testing.T) {
	cfg, err := LoadGateConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got error: %v", err)
	}

	if cfg.Threshold != DefaultThreshold {
		t.Errorf("threshold %v, expected default %v", cfg.Threshold, DefaultThreshold)
	}
	if cfg.Formulation != FormulationSincEnvelope {
		t.Errorf("formulation %q, expected default %q", cfg.Formulation, FormulationSincEnvelope)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}

	t.Logf("✓ Missing file → validated defaults")
}

func TestLoadGateConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.yaml")
	data := `
margin: 2.5
threshold: 1e9
danger_factor: 5
watch_factor: 50
min_hold_seconds: 10
formulation: legacy-ratio
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGateConfig(path)
	if err != nil {
		t.Fatalf("LoadGateConfig failed: %v", err)
	}

	if cfg.Margin != 2.5 {
		t.Errorf("margin %v, expected 2.5", cfg.Margin)
	}
	if cfg.Threshold != 1e9 {
		t.Errorf("threshold %v, expected 1e9", cfg.Threshold)
	}
	if cfg.DangerFactor != 5 || cfg.WatchFactor != 50 {
		t.Errorf("zones (%v, %v), expected (5, 50)", cfg.DangerFactor, cfg.WatchFactor)
	}
	// Unset key takes its default
	if cfg.ExitFactor != defaultExitFactor {
		t.Errorf("exit_factor %v, expected default %v", cfg.ExitFactor, defaultExitFactor)
	}
	if cfg.Formulation != FormulationLegacyRatio {
		t.Errorf("formulation %q, expected legacy-ratio", cfg.Formulation)
	}

	// The loaded config must build a gate that carries the formulation
	g, err := NewSafetyGateWithConfig(cfg)
	if err != nil {
		t.Fatalf("loaded config rejected by gate: %v", err)
	}
	if got := g.GetStatistics()["formulation"].(string); got != FormulationLegacyRatio {
		t.Errorf("gate carries formulation %q, expected %q", got, FormulationLegacyRatio)
	}

	t.Logf("✓ YAML config loaded with defaults filled in")
}

func TestLoadGateConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "non-positive threshold",
			yaml: "margin: 1.0\nthreshold: -1\n",
			want: "threshold",
		},
		{
			name: "missing margin",
			yaml: "threshold: 1e12\n",
			want: "margin",
		},
		{
			name: "watch below danger",
			yaml: "margin: 1.0\nwatch_factor: 2\ndanger_factor: 20\n",
			want: "watch_factor",
		},
		{
			name: "unknown formulation",
			yaml: "margin: 1.0\nformulation: quantum-exact\n",
			want: "not registered",
		},
		{
			name: "malformed yaml",
			yaml: "margin: [not a number\n",
			want: "parse",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gate.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadGateConfig(path)
			if err == nil {
				t.Fatal("invalid config was accepted")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}

			t.Logf("✓ Rejected: %v", err)
		})
	}
}
