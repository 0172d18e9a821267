package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper-cli",
					ModelDir:   "models",
				},
			},
			wantErr: false,
		},
		{
			name: "missing binary path",
			config: Config{
				Whisper: WhisperConfig{
					ModelDir: "models",
				},
			},
			wantErr: true,
		},
		{
			name: "missing model dir",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper-cli",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			BinaryPath: "./whisper-cli",
			ModelDir:   "models",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Whisper.Model != "small" {
		t.Errorf("Model = %v, want small", cfg.Whisper.Model)
	}
	if cfg.Pipeline.ChunkMinutes != 5 {
		t.Errorf("ChunkMinutes = %v, want 5", cfg.Pipeline.ChunkMinutes)
	}
	if cfg.Research.Provider != "none" {
		t.Errorf("Research.Provider = %v, want none", cfg.Research.Provider)
	}
	if cfg.Summarizer.OpenAI.FallbackModel != "gpt-5" {
		t.Errorf("FallbackModel = %v, want gpt-5", cfg.Summarizer.OpenAI.FallbackModel)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  binary_path: "./whisper-cli"
  model_dir: "models"
  model: "medium"
  language: "en"

pipeline:
  chunk_minutes: 10

paths:
  transcripts: "data/transcripts"
  outputs: "data/outputs"

logging:
  level: "debug"
  format: "text"

research:
  provider: "tavily"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.Model != "medium" {
		t.Errorf("Model = %v, want medium", cfg.Whisper.Model)
	}
	if cfg.Pipeline.ChunkMinutes != 10 {
		t.Errorf("ChunkMinutes = %v, want 10", cfg.Pipeline.ChunkMinutes)
	}
	if cfg.Research.Provider != "tavily" {
		t.Errorf("Research.Provider = %v, want tavily", cfg.Research.Provider)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
