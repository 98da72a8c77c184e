package ocr

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"time"
)

// Runner abstracts external command execution so tests can stub the
// tesseract binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		log.Printf("ocr.Runner: %s failed after %s: %v (stderr: %s)",
			name, time.Since(start).Round(time.Millisecond), err, truncate(errb.String(), 2048))
	}
	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
