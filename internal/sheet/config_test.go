package sheet

import (
	"errors"
	"testing"

	"contact-sheet/internal/video"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"jpg", FormatJPG, false},
		{"jpeg", FormatJPG, false},
		{"png", FormatPNG, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatJPG.Ext(); got != ".jpg" {
		t.Errorf("FormatJPG.Ext() = %q, want .jpg", got)
	}
	if got := FormatPNG.Ext(); got != ".png" {
		t.Errorf("FormatPNG.Ext() = %q, want .png", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		emptyGrid bool
	}{
		{"default", func(c *Config) {}, false, false},
		{"zero rows", func(c *Config) { c.Rows = 0 }, true, true},
		{"negative columns", func(c *Config) { c.Columns = -1 }, true, true},
		{"zero cell width", func(c *Config) { c.CellWidth = 0 }, true, false},
		{"zero cell height", func(c *Config) { c.CellHeight = 0 }, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.emptyGrid && !errors.Is(err, video.ErrEmptyGrid) {
				t.Errorf("Validate() error = %v, want ErrEmptyGrid", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Cells() != 16 {
		t.Errorf("Cells() = %d, want 16", cfg.Cells())
	}
	if cfg.CellWidth != 320 || cfg.CellHeight != 240 {
		t.Errorf("cell box = %dx%d, want 320x240", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.Quality != 75 || cfg.Format != FormatJPG {
		t.Errorf("encoding = %q q%d, want jpg q75", cfg.Format, cfg.Quality)
	}
	if !cfg.Labels.Title || !cfg.Labels.Resolution || !cfg.Labels.FileSize || !cfg.Labels.Duration {
		t.Error("default labels should include title, resolution, file size and duration")
	}
	if cfg.Labels.Codec || cfg.Labels.Timestamps {
		t.Error("codec and timestamp labels should default off")
	}
}
