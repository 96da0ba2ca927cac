package extract

import (
	"bytes"
	"context"

	"github.com/ledongthuc/pdf"
)

// pdfExtractor extracts whole-document plain text from PDFs.
type pdfExtractor struct{}

func (e *pdfExtractor) Extract(_ context.Context, path string, _ Options) Result {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return failed(InputMalformed)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return failed(InputMalformed)
	}
	return ok(Normalize(buf.String()))
}
