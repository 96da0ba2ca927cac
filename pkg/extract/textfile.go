package extract

import (
	"context"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// textExtractor reads text-like files (txt, csv, tsv, md, log, json).
type textExtractor struct{}

func (e *textExtractor) Extract(_ context.Context, path string, _ Options) Result {
	data, err := readFileLenient(path)
	if err != nil {
		return failed(InputMalformed)
	}
	return ok(Normalize(data))
}

// readFileLenient reads a file as UTF-8, falling back to EUC-KR/CP949
// when the bytes are not valid UTF-8. Archives exported from old Korean
// systems routinely carry legacy-encoded text files.
func readFileLenient(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), nil
	}
	return string(decoded), nil
}
