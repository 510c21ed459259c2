package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSampleConfigsLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"full", SampleConfig()},
		{"minimal", MinimalSampleConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("Failed to write sample: %v", err)
			}

			cfg, err := NewLoader().LoadConfig(path)
			if err != nil {
				t.Fatalf("Sample config failed to load: %v", err)
			}
			if !reflect.DeepEqual(cfg, DefaultConfig()) {
				t.Errorf("Expected the sample to match the defaults, got %+v", cfg)
			}
		})
	}
}
