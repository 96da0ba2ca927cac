package extract

import (
	"context"
	"os/exec"
)

// imageExtractor runs OCR over image attachments. It produces text only
// when OCR is enabled for the run and the tesseract tool is on PATH;
// both conditions missing are capability gaps, not errors.
type imageExtractor struct {
	caps Capabilities
}

func (e *imageExtractor) Extract(ctx context.Context, path string, opts Options) Result {
	if !opts.OCR || e.caps.TesseractPath == "" {
		return failed(CapabilityMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, e.caps.TesseractPath, path, "stdout", "-l", "kor+eng").Output()
	if err != nil {
		return failed(InputMalformed)
	}
	return ok(Normalize(string(out)))
}
