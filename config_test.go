package easel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "easel.toml")
	data := "perf_limit_size_total = 10000\nmax_cache_side_limit = 512\n"
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EASEL_MAX_CACHE_SIDE_LIMIT", "1024")

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PerfLimitSizeTotal != 10000 {
		t.Errorf("PerfLimitSizeTotal = %v, want file value 10000", cfg.PerfLimitSizeTotal)
	}
	if cfg.MaxCacheSideLimit != 1024 {
		t.Errorf("MaxCacheSideLimit = %v, want env value 1024", cfg.MaxCacheSideLimit)
	}
	if cfg.MinCacheSideLimit != 256 {
		t.Errorf("MinCacheSideLimit = %v, want default 256", cfg.MinCacheSideLimit)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Errorf("missing file should fall back to defaults, got %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("EASEL_CACHE_SHRINK_RATIO", "1.5")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected validation error for shrink ratio 1.5")
	}
}

func TestConfigWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultConfig().WriteTOML(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("perf_limit_size_total")) {
		t.Errorf("encoded config lacks keys:\n%s", buf.String())
	}
}
