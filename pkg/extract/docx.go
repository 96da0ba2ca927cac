package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"strings"
)

// docxExtractor reads Word documents: a docx is a zip whose text lives
// in the <w:t> runs of word/document.xml. Legacy binary .doc files are
// not zip archives and degrade to empty output here.
type docxExtractor struct{}

func (e *docxExtractor) Extract(_ context.Context, path string, _ Options) Result {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return failed(InputMalformed)
		}
		text, err := wordText(rc)
		rc.Close()
		if err != nil {
			return failed(InputMalformed)
		}
		return ok(Normalize(text))
	}
	return failed(InputMalformed)
}

// wordText pulls the character data of every <w:t> run, with paragraph
// and line breaks turned into spaces.
func wordText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inRun := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun++
			case "p", "br", "tab":
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == "t" && inRun > 0 {
				inRun--
				sb.WriteByte(' ')
			}
		case xml.CharData:
			if inRun > 0 {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
