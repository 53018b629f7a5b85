package config

import (
	"testing"

	"github.com/Garsondee/Star-Warp/internal/fx"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STARWARP_QUALITY", "")
	cfg, err := Load([]string{"-quality", "low"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Fatalf("unexpected default size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Quality != fx.QualityLow || !cfg.ShowHUD {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_EnvironmentDefaults(t *testing.T) {
	t.Setenv("STARWARP_QUALITY", "low")
	t.Setenv("STARWARP_WIDTH", "800")
	t.Setenv("STARWARP_ASSETS", "/tmp/img")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quality != fx.QualityLow || cfg.Width != 800 || cfg.AssetDir != "/tmp/img" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STARWARP_QUALITY", "low")
	cfg, err := Load([]string{"-quality", "high", "-width", "640", "-height", "480"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quality != fx.QualityHigh || cfg.Width != 640 || cfg.Height != 480 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	if _, err := Load([]string{"-quality", "ultra"}); err == nil {
		t.Fatal("expected error for unknown quality")
	}
	if _, err := Load([]string{"-quality", "low", "-width", "0"}); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := Load([]string{"-nope"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestGetEnvIntFallsBack(t *testing.T) {
	t.Setenv("STARWARP_HEIGHT", "tall")
	if got := getEnvInt("STARWARP_HEIGHT", 720); got != 720 {
		t.Fatalf("expected fallback 720, got %d", got)
	}
}
