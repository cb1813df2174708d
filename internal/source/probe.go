package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// VideoInfo is what a Prober learns about a movie file.
type VideoInfo struct {
	Width    int
	Height   int
	Duration time.Duration
}

// Prober inspects movie files.
type Prober interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// FFprobe probes movies with the ffprobe command line tool.
type FFprobe struct {
	Binary string // defaults to "ffprobe" on PATH
}

// Probe runs ffprobe on the first video stream of path.
func (p FFprobe) Probe(ctx context.Context, path string) (VideoInfo, error) {
	bin := p.Binary
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbe(out)
}

// parseProbe reads ffprobe key=value output.
func parseProbe(out []byte) (VideoInfo, error) {
	var info VideoInfo
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || value == "N/A" {
			continue
		}
		switch key {
		case "width":
			info.Width, _ = strconv.Atoi(value)
		case "height":
			info.Height, _ = strconv.Atoi(value)
		case "duration":
			if secs, err := strconv.ParseFloat(value, 64); err == nil {
				info.Duration = time.Duration(secs * float64(time.Second))
			}
		}
	}
	if info.Width <= 0 || info.Height <= 0 {
		return info, errors.New("ffprobe: no video stream")
	}
	return info, nil
}
