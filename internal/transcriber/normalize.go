package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"meeting-scribe/pkg/executor"
)

// normalizeAudio converts a recording to 16kHz mono PCM WAV, the format
// the whisper engine expects. The converted file lands in workDir.
func normalizeAudio(ctx context.Context, exec executor.Executor, inputPath, workDir string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(workDir, stem+"_16k.wav")

	args := []string{
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		outputPath,
	}

	if _, err := exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize %s: %w", filepath.Base(inputPath), err)
	}

	return outputPath, nil
}
