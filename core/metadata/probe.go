package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Prober reports the playable length of an audio file in seconds.
type Prober interface {
	Duration(ctx context.Context, filePath string) (float64, error)
}

// FFprobeProber shells out to ffprobe for the duration. Metadata extraction
// treats probe failures as "duration unknown", so a missing binary only
// degrades the catalog to zero durations.
type FFprobeProber struct {
	ffprobePath string
}

// NewFFprobeProber creates an FFprobeProber using the given binary path.
func NewFFprobeProber(ffprobePath string) *FFprobeProber {
	return &FFprobeProber{ffprobePath: ffprobePath}
}

// Duration returns the duration of the audio file in seconds.
func (p *FFprobeProber) Duration(ctx context.Context, filePath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=duration",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe execution failed for %s: %w (%s)", filePath, err, stderr.String())
	}

	var probeData struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}

	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}

	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("no duration reported for %s", filePath)
	}

	seconds, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %w", probeData.Format.Duration, err)
	}
	return seconds, nil
}
