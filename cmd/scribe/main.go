package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/notion"
	"meeting-scribe/internal/pipeline"
	"meeting-scribe/internal/research"
	"meeting-scribe/internal/summarizer"
	"meeting-scribe/internal/transcriber"
	"meeting-scribe/internal/watcher"
	"meeting-scribe/pkg/executor"
)

type runFlags struct {
	audioDir     string
	title        string
	date         string
	project      string
	recordingURL string
	chunkMinutes int
	model        string
	noSummary    bool
	doResearch   bool
	uploadNotion bool

	researchProvider string
	researchKey      string
	triggers         []string
	verbs            []string
}

type watchFlags struct {
	root   string
	settle time.Duration
}

func main() {
	// Missing .env is fine; the config file and environment still apply.
	_ = godotenv.Load()

	var configPath string
	run := runFlags{}
	watch := watchFlags{}

	rootCmd := &cobra.Command{
		Use:   "scribe",
		Short: "Turn per-speaker meeting recordings into structured notes",
		Long: "scribe transcribes per-speaker audio with whisper.cpp, fuses the\n" +
			"tracks into a speaker-labeled transcript, summarizes it, executes\n" +
			"in-meeting research requests and publishes the notes.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the yaml config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process one meeting directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), configPath, run)
		},
	}
	runCmd.Flags().StringVar(&run.audioDir, "audio-dir", "", "directory holding one audio file per speaker (required)")
	runCmd.Flags().StringVar(&run.title, "title", "", "meeting title (overrides the generated one)")
	runCmd.Flags().StringVar(&run.date, "date", "", "meeting date as YYYY-MM-DD (default: inferred)")
	runCmd.Flags().StringVar(&run.project, "project", "", "project name for the published page")
	runCmd.Flags().StringVar(&run.recordingURL, "recording-url", "", "link to the original recording")
	runCmd.Flags().IntVar(&run.chunkMinutes, "chunk-minutes", 0, "timeline window length in minutes (default: from config)")
	runCmd.Flags().StringVar(&run.model, "model", "", "whisper model tier (overrides config)")
	runCmd.Flags().BoolVar(&run.noSummary, "no-summary", false, "skip LLM summarization")
	runCmd.Flags().BoolVar(&run.doResearch, "research", false, "extract and execute in-meeting research requests")
	runCmd.Flags().BoolVar(&run.uploadNotion, "upload-notion", false, "publish the notes to Notion")
	runCmd.Flags().StringVar(&run.researchProvider, "research-provider", "", "search provider: tavily or none (overrides config)")
	runCmd.Flags().StringVar(&run.researchKey, "research-key", "", "search provider api key (overrides config/env)")
	runCmd.Flags().StringSliceVar(&run.triggers, "triggers", nil, "research trigger vocabulary (overrides config)")
	runCmd.Flags().StringSliceVar(&run.verbs, "verbs", nil, "research verb vocabulary (overrides config)")
	runCmd.MarkFlagRequired("audio-dir")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a recordings root and process new meeting directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), configPath, watch, run)
		},
	}
	watchCmd.Flags().StringVar(&watch.root, "root", "", "recordings root to monitor (required)")
	watchCmd.Flags().DurationVar(&watch.settle, "settle", 30*time.Second, "how long a new directory must settle before processing")
	watchCmd.Flags().BoolVar(&run.noSummary, "no-summary", false, "skip LLM summarization")
	watchCmd.Flags().BoolVar(&run.doResearch, "research", false, "extract and execute in-meeting research requests")
	watchCmd.Flags().BoolVar(&run.uploadNotion, "upload-notion", false, "publish the notes to Notion")
	watchCmd.MarkFlagRequired("root")

	rootCmd.AddCommand(runCmd, watchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deps bundles everything a pipeline run needs.
type deps struct {
	cfg  *config.Config
	log  logger.Logger
	pipe *pipeline.Pipeline
}

func setup(ctx context.Context, configPath string, flags runFlags) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if flags.model != "" {
		cfg.Whisper.Model = flags.model
	}
	if flags.researchProvider != "" {
		cfg.Research.Provider = flags.researchProvider
	}
	if flags.researchKey != "" {
		cfg.Research.APIKey = flags.researchKey
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	exec := executor.New()
	engine := transcriber.NewWhisperEngine(cfg.Whisper, exec, log)

	var summ summarizer.Engine
	if !flags.noSummary {
		summ, err = summarizer.New(cfg.Summarizer, log)
		if err != nil {
			log.Warn(ctx, "Summarization disabled: %v", err)
		}
	}

	provider := research.NewProvider(cfg.Research.Provider, cfg.Research.APIKey, cfg.Research.MaxResults, log)

	var uploader notion.Uploader
	if flags.uploadNotion {
		if cfg.Notion.Token == "" || cfg.Notion.DatabaseID == "" {
			log.Warn(ctx, "Notion upload requested but token or database id missing; skipping upload")
		} else {
			uploader = notion.New(cfg.Notion, log)
		}
	}

	return &deps{
		cfg:  cfg,
		log:  log,
		pipe: pipeline.New(cfg, log, exec, engine, summ, provider, uploader),
	}, nil
}

func (d *deps) options(flags runFlags, audioDir string) pipeline.Options {
	return pipeline.Options{
		AudioDir:         audioDir,
		Project:          flags.project,
		MeetingTitle:     flags.title,
		DateOverride:     flags.date,
		ChunkMinutes:     flags.chunkMinutes,
		RecordingURL:     flags.recordingURL,
		Summarize:        !flags.noSummary,
		EnableResearch:   flags.doResearch,
		UploadNotion:     flags.uploadNotion,
		ResearchTriggers: firstNonEmpty(flags.triggers, d.cfg.Research.Triggers),
		ResearchVerbs:    firstNonEmpty(flags.verbs, d.cfg.Research.Verbs),
	}
}

func runOnce(ctx context.Context, configPath string, flags runFlags) error {
	d, err := setup(ctx, configPath, flags)
	if err != nil {
		return err
	}

	result, err := d.pipe.Run(ctx, d.options(flags, flags.audioDir), progressLogger{d.log}, ctxToken{ctx})
	if err != nil {
		return err
	}

	reportResult(ctx, d.log, result)
	return nil
}

func runWatch(ctx context.Context, configPath string, wf watchFlags, flags runFlags) error {
	d, err := setup(ctx, configPath, flags)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, dir string) error {
		result, err := d.pipe.Run(ctx, d.options(flags, dir), progressLogger{d.log}, ctxToken{ctx})
		if err != nil {
			return err
		}
		reportResult(ctx, d.log, result)
		return nil
	}

	w, err := watcher.New(wf.root, wf.settle, handler, d.log)
	if err != nil {
		return err
	}
	defer w.Stop()

	d.log.Info(ctx, "Watching %s; press Ctrl+C to stop", wf.root)
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func reportResult(ctx context.Context, log logger.Logger, result *pipeline.Result) {
	if result.Cancelled {
		log.Warn(ctx, "Run %s cancelled (date %s)", result.RunID, result.Date)
	}
	for _, stage := range result.Stages {
		switch stage.Status {
		case pipeline.StageDegraded:
			log.Warn(ctx, "Stage %s degraded: %s", stage.Name, stage.Reason)
		case pipeline.StageSkipped:
			log.Debug(ctx, "Stage %s skipped: %s", stage.Name, stage.Reason)
		}
	}
	if result.NotesPath != "" {
		log.Info(ctx, "Notes: %s", result.NotesPath)
	}
	if result.MarkdownPath != "" {
		log.Info(ctx, "Markdown: %s", result.MarkdownPath)
	}
	if result.DocxPath != "" {
		log.Info(ctx, "Docx: %s", result.DocxPath)
	}
	if result.NotionURL != "" {
		log.Info(ctx, "Notion: %s", result.NotionURL)
	}
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}

// ctxToken adapts context cancellation to the file-boundary cancel poll.
type ctxToken struct{ ctx context.Context }

func (t ctxToken) Cancelled() bool { return t.ctx.Err() != nil }

// progressLogger reports per-file transcription progress.
type progressLogger struct{ log logger.Logger }

func (p progressLogger) FileCompleted(index, total int, speaker string, elapsed time.Duration) {
	p.log.Info(context.Background(), "Progress: %d/%d (%s, %s)", index, total, speaker, elapsed.Round(time.Second))
}
