package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "yumlsvgd"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "yumlsvgd", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("service name propagates to logging", func(t *testing.T) {
		cfg := ServiceConfig{Name: "yumlsvgd"}
		cfg.ApplyDefaults()
		if cfg.Logging.ServiceName != "yumlsvgd" {
			t.Errorf("expected logging service name 'yumlsvgd', got %q", cfg.Logging.ServiceName)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestRenderConfigDefaults(t *testing.T) {
	var cfg RenderConfig
	cfg.ApplyDefaults()

	if cfg.Type != "class" {
		t.Errorf("expected default type 'class', got %q", cfg.Type)
	}
	if cfg.Direction != "TB" {
		t.Errorf("expected default direction 'TB', got %q", cfg.Direction)
	}
	if cfg.Dark {
		t.Error("dark must default to false")
	}
	if cfg.Layout != "dot" {
		t.Errorf("expected default layout 'dot', got %q", cfg.Layout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestRenderConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RenderConfig)
		wantErr string
	}{
		{"unknown type", func(c *RenderConfig) { c.Type = "flowchart" }, "render.type must be one of"},
		{"unknown direction", func(c *RenderConfig) { c.Direction = "BT" }, "render.direction must be one of"},
		{"negative timeout", func(c *RenderConfig) { c.Timeout = -1 }, "render.timeout"},
		{"sequence type accepted", func(c *RenderConfig) { c.Type = "sequence" }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg RenderConfig
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: yumlsvgd
environment: staging
render:
  direction: LR
  dark: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
		Render        RenderConfig `yaml:"render" mapstructure:"render"`
	}

	var cfg TestConfig
	if err := LoadConfig("yumlsvgd", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "yumlsvgd" {
		t.Errorf("expected name 'yumlsvgd', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Render.Direction != "LR" {
		t.Errorf("expected direction 'LR', got %q", cfg.Render.Direction)
	}
	if !cfg.Render.Dark {
		t.Error("expected dark=true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
	}

	var cfg TestConfig
	// A missing config file is fine: env vars alone are a valid source.
	if err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RENDER_DIRECTION", "RL")

	type TestConfig struct {
		Render RenderConfig `yaml:"render" mapstructure:"render"`
	}
	var cfg TestConfig
	if err := LoadConfig("yumlsvgd", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Render.Direction != "RL" {
		t.Errorf("expected env override 'RL', got %q", cfg.Render.Direction)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/yumlsvgd/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("yumlsvgd", LoaderConfig{})
	if files.ConfigFile != "./cmd/yumlsvgd/config.yml" {
		t.Errorf("expected config file at ./cmd/yumlsvgd/config.yml, got %q", files.ConfigFile)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("unexpected config file %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected env file %q", lc.EnvFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("RENDER_MAX_SOURCE_BYTES")
	want := map[string]bool{
		"render_max_source_bytes": false,
		"render.max.source.bytes": false,
		"render.max_source_bytes": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("missing variant %q in %v", k, variants)
		}
	}
}
