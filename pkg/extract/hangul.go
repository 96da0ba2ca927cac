package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"os/exec"
	"strings"
)

// hwpxExtractor reads HWPX documents, which are zip containers of XML
// parts: all character data of every XML part is collected.
type hwpxExtractor struct{}

func (e *hwpxExtractor) Extract(_ context.Context, path string, _ Options) Result {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer zr.Close()

	var parts []string
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		text, err := xmlText(rc)
		rc.Close()
		if err != nil || text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return ok(Normalize(strings.Join(parts, " ")))
}

func xmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, isText := tok.(xml.CharData); isText {
			sb.Write(cd)
			sb.WriteByte(' ')
		}
	}
	return sb.String(), nil
}

// hwpExtractor handles the legacy binary HWP format through the hwp5txt
// conversion tool when it is installed.
type hwpExtractor struct {
	caps Capabilities
}

func (e *hwpExtractor) Extract(ctx context.Context, path string, _ Options) Result {
	if e.caps.HWP5TxtPath == "" {
		return failed(CapabilityMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, e.caps.HWP5TxtPath, path).Output()
	if err != nil {
		return failed(InputMalformed)
	}
	return ok(Normalize(string(out)))
}
