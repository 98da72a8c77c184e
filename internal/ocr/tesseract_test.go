package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/config"
)

type stubRunner struct {
	gotName string
	gotArgs []string
	stdout  []byte
	stderr  []byte
	err     error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestExtractText_BuildsTesseractInvocation(t *testing.T) {
	stub := &stubRunner{stdout: []byte("FRESH MART\nBread 2 10.00\n")}
	e := NewExtractor(config.OCRConfig{
		Binary:      "/usr/bin/tesseract",
		Language:    "eng",
		PageSegMode: 6,
		EngineMode:  3,
		TessdataDir: "/usr/share/tessdata",
	}).WithRunner(stub)

	text, err := e.ExtractText(context.Background(), "/tmp/receipt.png")
	require.NoError(t, err)
	assert.Equal(t, "FRESH MART\nBread 2 10.00\n", text)

	assert.Equal(t, "/usr/bin/tesseract", stub.gotName)
	assert.Equal(t, []string{
		"/tmp/receipt.png", "stdout",
		"-l", "eng",
		"--psm", "6",
		"--oem", "3",
		"--tessdata-dir", "/usr/share/tessdata",
	}, stub.gotArgs)
}

func TestExtractText_DefaultsApplied(t *testing.T) {
	stub := &stubRunner{stdout: []byte("ok")}
	e := NewExtractor(config.OCRConfig{}).WithRunner(stub)

	_, err := e.ExtractText(context.Background(), "r.jpg")
	require.NoError(t, err)

	assert.Equal(t, "tesseract", stub.gotName)
	assert.Equal(t, []string{"r.jpg", "stdout", "-l", "eng", "--psm", "6", "--oem", "3"}, stub.gotArgs)
}

func TestExtractText_RunnerError(t *testing.T) {
	stub := &stubRunner{stderr: []byte("Error opening data file"), err: errors.New("exit status 1")}
	e := NewExtractor(config.OCRConfig{Timeout: time.Second}).WithRunner(stub)

	_, err := e.ExtractText(context.Background(), "missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr.ExtractText")
}
