package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Research   ResearchConfig   `yaml:"research"`
	Notion     NotionConfig     `yaml:"notion"`
	Output     OutputConfig     `yaml:"output"`
}

type PipelineConfig struct {
	ChunkMinutes int `yaml:"chunk_minutes"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type PathsConfig struct {
	Transcripts string `yaml:"transcripts"`
	Outputs     string `yaml:"outputs"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SummarizerConfig struct {
	Provider string       `yaml:"provider"`
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
}

type OpenAIConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	FallbackModel string `yaml:"fallback_model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ResearchConfig struct {
	Provider   string   `yaml:"provider"`
	APIKey     string   `yaml:"api_key"`
	MaxResults int      `yaml:"max_results"`
	Triggers   []string `yaml:"triggers"`
	Verbs      []string `yaml:"verbs"`
}

type NotionConfig struct {
	Token      string `yaml:"token"`
	DatabaseID string `yaml:"database_id"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelDir == "" {
		return fmt.Errorf("whisper.model_dir is required")
	}

	if c.Whisper.Model == "" {
		c.Whisper.Model = "small"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Pipeline.ChunkMinutes == 0 {
		c.Pipeline.ChunkMinutes = 5
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = "transcripts"
	}
	if c.Paths.Outputs == "" {
		c.Paths.Outputs = "outputs"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = "openai"
	}
	if c.Summarizer.OpenAI.BaseURL == "" {
		c.Summarizer.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.Summarizer.OpenAI.Model == "" {
		c.Summarizer.OpenAI.Model = "gpt-5-pro"
	}
	if c.Summarizer.OpenAI.FallbackModel == "" {
		c.Summarizer.OpenAI.FallbackModel = "gpt-5"
	}
	if c.Summarizer.Gemini.Model == "" {
		c.Summarizer.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Research.Provider == "" {
		c.Research.Provider = "none"
	}
	if c.Research.MaxResults == 0 {
		c.Research.MaxResults = 5
	}

	return nil
}

// Load reads and validates a yaml config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills credential fields left empty in the file from the
// process environment. Called once at startup; nothing below the cmd
// layer reads the environment.
func (c *Config) ApplyEnv() {
	if c.Summarizer.OpenAI.APIKey == "" {
		c.Summarizer.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.Summarizer.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_MODEL_FALLBACK"); v != "" {
		c.Summarizer.OpenAI.FallbackModel = v
	}
	if c.Summarizer.Gemini.APIKey == "" {
		c.Summarizer.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Notion.Token == "" {
		c.Notion.Token = os.Getenv("NOTION_TOKEN")
	}
	if c.Notion.DatabaseID == "" {
		c.Notion.DatabaseID = os.Getenv("NOTION_DATABASE_ID")
	}
	if c.Research.APIKey == "" {
		c.Research.APIKey = os.Getenv("TAVILY_API_KEY")
	}
}
