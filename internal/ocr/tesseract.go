package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

// charWhitelist restricts recognition to characters that appear in broadcast
// graphics. Cuts down on punctuation hallucinations in noisy frames.
const charWhitelist = `0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz .,!?:;-()[]{}"'`

// TesseractEngine shells out to the tesseract binary, feeding the frame as a
// PNG over stdin and reading word-level TSV from stdout.
type TesseractEngine struct {
	// Binary overrides the tesseract executable path. Empty means "tesseract"
	// from PATH.
	Binary string
}

func (t *TesseractEngine) binary() string {
	if t.Binary != "" {
		return t.Binary
	}
	return "tesseract"
}

// Recognize runs tesseract in TSV mode and returns every word row it emits.
// Confidence filtering is the Extractor's job.
func (t *TesseractEngine) Recognize(ctx context.Context, img *image.Gray) ([]Word, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return nil, vqcerr.NewOCRError("failed to encode frame for recognition", err)
	}

	cmd := exec.CommandContext(ctx, t.binary(),
		"stdin", "stdout",
		"--oem", "3",
		"--psm", "6",
		"-c", "tessedit_char_whitelist="+charWhitelist,
		"tsv",
	)
	cmd.Stdin = &in
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, vqcerr.NewOCRError(fmt.Sprintf("tesseract failed: %s", msg), err)
	}
	return parseTSV(out.Bytes()), nil
}

// parseTSV extracts word rows from tesseract's TSV output. The format is one
// header line followed by rows of
// level page block par line word left top width height conf text.
// Structural rows carry conf -1 and are skipped.
func parseTSV(data []byte) []Word {
	var words []Word
	for i, line := range strings.Split(string(data), "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}
		words = append(words, Word{Text: text, Confidence: conf})
	}
	return words
}
