package media

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFProbe reads durations by shelling out to ffprobe
type FFProbe struct {
	timeout time.Duration
}

// NewFFProbe creates a prober that gives up after timeout
func NewFFProbe(timeout time.Duration) *FFProbe {
	return &FFProbe{timeout: timeout}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the container duration in seconds
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseDuration([]byte(out))
}

func parseDuration(raw []byte) (float64, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("failed to decode probe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", out.Format.Duration, err)
	}
	return d, nil
}
