package extract

import (
	"os/exec"
	"time"
)

// toolTimeout bounds external tool invocations (OCR, HWP conversion),
// which are unbounded by default. A timeout is an extraction failure,
// not a fatal error.
const toolTimeout = 60 * time.Second

// Capabilities records which optional external tools were found on PATH
// at startup. An absent capability makes the matching extractor return
// empty text; it is never an error.
type Capabilities struct {
	TesseractPath string
	HWP5TxtPath   string
}

// DetectCapabilities resolves optional tools once. Extractors consult
// the result instead of probing the environment per call.
func DetectCapabilities() Capabilities {
	var caps Capabilities
	if p, err := exec.LookPath("tesseract"); err == nil {
		caps.TesseractPath = p
	}
	if p, err := exec.LookPath("hwp5txt"); err == nil {
		caps.HWP5TxtPath = p
	}
	return caps
}
