package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"meeting-scribe/internal/catalog"
	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/notion"
	"meeting-scribe/internal/research"
	"meeting-scribe/internal/summarizer"
	"meeting-scribe/internal/transcriber"
	"meeting-scribe/internal/transcript"
	"meeting-scribe/pkg/executor"
)

// Options selects the inputs and optional stages for one run.
type Options struct {
	AudioDir         string
	Project          string
	MeetingTitle     string
	DateOverride     string
	ChunkMinutes     int
	RecordingURL     string
	Summarize        bool
	EnableResearch   bool
	UploadNotion     bool
	ResearchTriggers []string
	ResearchVerbs    []string
}

// StageStatus classifies how an optional stage ended.
type StageStatus string

const (
	StageOK       StageStatus = "ok"
	StageDegraded StageStatus = "degraded"
	StageSkipped  StageStatus = "skipped"
)

// StageResult records the outcome of one pipeline stage. Degraded means
// the stage failed but the run carried on without its output.
type StageResult struct {
	Name   string      `json:"name"`
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// Result summarizes one completed run and points at its artifacts.
type Result struct {
	RunID        string
	Date         string
	Notes        *MeetingNotes
	NotesPath    string
	MarkdownPath string
	DocxPath     string
	NotionURL    string
	Cancelled    bool
	Stages       []StageResult
}

func (r *Result) addStage(name string, status StageStatus, reason string) {
	r.Stages = append(r.Stages, StageResult{Name: name, Status: status, Reason: reason})
}

// Pipeline wires the full run: transcribe, fuse, summarize, extract and
// execute research requests, write artifacts, upload.
type Pipeline struct {
	cfg        *config.Config
	logger     logger.Logger
	executor   executor.Executor
	engine     transcriber.Engine
	summarizer summarizer.Engine
	provider   research.Provider
	uploader   notion.Uploader
}

// New assembles a Pipeline from its collaborators. The summarizer and
// uploader may be nil; the matching stages are then skipped.
func New(
	cfg *config.Config,
	log logger.Logger,
	exec executor.Executor,
	engine transcriber.Engine,
	summ summarizer.Engine,
	provider research.Provider,
	uploader notion.Uploader,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		logger:     log,
		executor:   exec,
		engine:     engine,
		summarizer: summ,
		provider:   provider,
		uploader:   uploader,
	}
}

// Run executes the whole pipeline for one recorded meeting. Transcription
// failures and artifact write failures abort the run; summarization,
// research and upload failures degrade it. A cancellation honored before
// any file completed yields a cancelled Result with no artifacts and no
// error.
func (p *Pipeline) Run(ctx context.Context, opts Options, obs transcriber.ProgressObserver, token transcriber.CancelToken) (*Result, error) {
	runID := uuid.NewString()[:8]
	log := p.logger.WithField("run_id", runID)

	result := &Result{RunID: runID}

	if err := p.executor.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}

	date := catalog.FormatDate(catalog.DetermineDate(opts.DateOverride, opts.AudioDir))
	result.Date = date
	log.Info(ctx, "Starting run for %s (date %s)", opts.AudioDir, date)

	log.Info(ctx, "Transcribing...")
	orch := transcriber.NewOrchestrator(p.engine, p.executor, log, p.cfg.Whisper.Language)
	speakers, cancelled, err := orch.TranscribeDirectory(ctx, opts.AudioDir, obs, token)
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}
	result.Cancelled = cancelled

	if len(speakers) == 0 {
		if cancelled {
			log.Warn(ctx, "Cancelled before any file completed; no artifacts written")
			result.addStage("transcribe", StageSkipped, "cancelled before first file")
			return result, nil
		}
		return nil, fmt.Errorf("no audio files found in %s", opts.AudioDir)
	}
	result.addStage("transcribe", StageOK, "")

	// A speaker may appear more than once in the catalog (same stem,
	// different extension); attendees are the distinct identities.
	perSpeaker := make(map[string][]string)
	var attendees []string
	for _, st := range speakers {
		if _, ok := perSpeaker[st.Speaker]; !ok {
			attendees = append(attendees, st.Speaker)
		}
		perSpeaker[st.Speaker] = append(perSpeaker[st.Speaker], st.Text)
	}
	sort.Strings(attendees)

	transcriptsDir := filepath.Join(p.cfg.Paths.Transcripts, date)
	for _, speaker := range attendees {
		text := strings.Join(perSpeaker[speaker], "\n")
		if err := writeText(filepath.Join(transcriptsDir, speaker+".txt"), text+"\n"); err != nil {
			return nil, err
		}
	}

	merged := transcript.Merge(speakers)
	rendered := transcript.Render(merged)
	normalized := research.NormalizeTriggerText(rendered)
	if err := writeText(filepath.Join(transcriptsDir, "merged_transcript.txt"), rendered+"\n"); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(transcriptsDir, "segments.json"), merged); err != nil {
		return nil, err
	}
	log.Info(ctx, "Fused %d speakers into %d segments", len(speakers), len(merged))

	notes := newMeetingNotes(opts.MeetingTitle, date, attendees)
	p.summarize(ctx, log, opts, merged, normalized, notes, result)
	p.research(ctx, log, opts, normalized, notes, result)

	outputsDir := p.cfg.Paths.Outputs
	result.NotesPath = filepath.Join(outputsDir, date+"_meeting_notes.json")
	if err := writeJSON(result.NotesPath, notes); err != nil {
		return nil, err
	}

	markdown := buildMarkdown(notes, rendered)
	result.MarkdownPath = filepath.Join(outputsDir, date+"_meeting_notes.md")
	if err := writeText(result.MarkdownPath, markdown); err != nil {
		return nil, err
	}

	if p.cfg.Output.Docx {
		docxPath := filepath.Join(outputsDir, date+"_meeting_notes.docx")
		if err := writeDocx(notes.Title, markdown, docxPath); err != nil {
			log.Warn(ctx, "docx render failed: %v", err)
			result.addStage("docx", StageDegraded, err.Error())
		} else {
			result.DocxPath = docxPath
			result.addStage("docx", StageOK, "")
		}
	}

	p.upload(ctx, log, opts, rendered, notes, result)

	result.Notes = notes
	log.Info(ctx, "Run complete: %s", result.NotesPath)
	return result, nil
}

func (p *Pipeline) summarize(ctx context.Context, log logger.Logger, opts Options, merged []transcript.Segment, text string, notes *MeetingNotes, result *Result) {
	if !opts.Summarize || p.summarizer == nil {
		result.addStage("summarize", StageSkipped, "summarization disabled")
		return
	}

	log.Info(ctx, "Summarizing...")
	degraded := false

	summary, err := p.summarizer.SummarizeMeeting(ctx, summarizer.MeetingRequest{
		Transcript: text,
		Attendees:  notes.Attendees,
		Date:       notes.Date,
		TitleHint:  opts.MeetingTitle,
	})
	if err != nil {
		log.Warn(ctx, "meeting summary failed: %v", err)
		degraded = true
	} else {
		notes.applySummary(summary)
		if opts.MeetingTitle != "" {
			notes.Title = opts.MeetingTitle
		}
	}

	chunkMinutes := opts.ChunkMinutes
	if chunkMinutes <= 0 {
		chunkMinutes = p.cfg.Pipeline.ChunkMinutes
	}
	windows := transcript.GroupIntoWindows(merged, chunkMinutes)
	if len(windows) > 0 {
		timeline, err := p.summarizer.SummarizeTimeline(ctx, windows)
		if err != nil {
			log.Warn(ctx, "timeline summary failed: %v", err)
			degraded = true
		} else if len(timeline) > 0 {
			notes.Timeline = timeline
		}
	}

	if degraded {
		result.addStage("summarize", StageDegraded, "summarizer request failed")
	} else {
		result.addStage("summarize", StageOK, "")
	}
}

func (p *Pipeline) research(ctx context.Context, log logger.Logger, opts Options, text string, notes *MeetingNotes, result *Result) {
	if !opts.EnableResearch {
		result.addStage("research", StageSkipped, "research disabled")
		return
	}

	log.Info(ctx, "Researching...")
	triggers := opts.ResearchTriggers
	if len(triggers) == 0 {
		triggers = p.cfg.Research.Triggers
	}
	verbs := opts.ResearchVerbs
	if len(verbs) == 0 {
		verbs = p.cfg.Research.Verbs
	}

	requests := research.Extract(text, triggers, verbs)
	if len(requests) > 0 {
		notes.ResearchRequests = requests
	}
	log.Info(ctx, "Extracted %d research requests", len(requests))

	results, err := research.Run(ctx, p.provider, requests, log)
	if len(results) > 0 {
		notes.ResearchResults = results
	}
	if err != nil {
		result.addStage("research", StageDegraded, err.Error())
	} else {
		result.addStage("research", StageOK, "")
	}
}

func (p *Pipeline) upload(ctx context.Context, log logger.Logger, opts Options, rendered string, notes *MeetingNotes, result *Result) {
	if !opts.UploadNotion {
		result.addStage("upload", StageSkipped, "upload disabled")
		return
	}
	if p.uploader == nil {
		result.addStage("upload", StageSkipped, "notion credentials not configured")
		return
	}

	log.Info(ctx, "Uploading...")
	page := notion.Page{
		Title:            fmt.Sprintf("%s - %s", notes.Date, notes.Title),
		Date:             notes.Date,
		Project:          opts.Project,
		MeetingType:      inferMeetingType(notes.Title),
		Attendees:        notes.Attendees,
		ActionsCount:     len(notes.Actions),
		DecisionsCount:   len(notes.Decisions),
		Status:           "Draft",
		RecordingURL:     opts.RecordingURL,
		Summary:          notes.Summary,
		Decisions:        notes.Decisions,
		Actions:          notes.Actions,
		Highlights:       notes.Highlights,
		Timeline:         notes.Timeline,
		ResearchRequests: notes.ResearchRequests,
		ResearchResults:  notes.ResearchResults,
		Transcript:       rendered,
	}

	url, err := p.uploader.Upload(ctx, page)
	if err != nil {
		log.Warn(ctx, "notion upload failed: %v", err)
		result.addStage("upload", StageDegraded, err.Error())
		return
	}

	result.NotionURL = url
	result.addStage("upload", StageOK, "")
	log.Info(ctx, "Uploaded notes: %s", url)
}
