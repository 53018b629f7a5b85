// Package config provides host configuration from flags and environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Garsondee/Star-Warp/internal/fx"
)

// Config holds window and rendering settings for the host.
type Config struct {
	Width    int
	Height   int
	Quality  fx.Quality
	AssetDir string
	ShowHUD  bool
	Seed     int64 // 0 means time-seeded
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

// Load parses args (without the program name). Environment variables
// STARWARP_WIDTH, STARWARP_HEIGHT, STARWARP_QUALITY and STARWARP_ASSETS
// provide defaults that flags override.
func Load(args []string) (Config, error) {
	var cfg Config
	var quality string

	fs := flag.NewFlagSet("star-warp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.Width, "width", getEnvInt("STARWARP_WIDTH", 1280), "window width in logical pixels")
	fs.IntVar(&cfg.Height, "height", getEnvInt("STARWARP_HEIGHT", 720), "window height in logical pixels")
	fs.StringVar(&quality, "quality", GetEnv("STARWARP_QUALITY", "high"), "rendering quality: low or high")
	fs.StringVar(&cfg.AssetDir, "assets", GetEnv("STARWARP_ASSETS", "assets/images"), "directory of optional nebula/flare images")
	fs.BoolVar(&cfg.ShowHUD, "hud", true, "show the key legend")
	fs.Int64Var(&cfg.Seed, "seed", 0, "RNG seed (0 = time-based)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	q, err := fx.ParseQuality(quality)
	if err != nil {
		return Config{}, err
	}
	cfg.Quality = q
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
