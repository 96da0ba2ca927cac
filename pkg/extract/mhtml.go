package extract

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// mhtmlExtractor reads saved web-page archives (.mht/.mhtml): the HTML
// part is located in the MIME envelope and distilled with readability,
// since a saved page carries full site chrome that plain body-text
// extraction would keep.
type mhtmlExtractor struct {
	html *htmlExtractor
}

func (e *mhtmlExtractor) Extract(_ context.Context, path string, _ Options) Result {
	f, err := os.Open(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer f.Close()

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		return failed(InputMalformed)
	}
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		return failed(InputMalformed)
	}

	var markup string
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		markup = htmlPart(multipart.NewReader(msg.Body, params["boundary"]))
	case strings.HasPrefix(mediaType, "text/html"):
		data, _ := io.ReadAll(msg.Body)
		markup = string(data)
	}
	if markup == "" {
		return failed(InputMalformed)
	}

	base, _ := url.Parse("file:///" + filepath.ToSlash(path))
	parser := readability.NewParser()
	if article, err := parser.Parse(strings.NewReader(markup), base); err == nil {
		if text := Normalize(article.TextContent); text != "" {
			return ok(text)
		}
	}

	// Readability found no article: fall back to plain visible text.
	text, err := VisibleText(markup)
	if err != nil {
		return ok(Normalize(StripTags(markup)))
	}
	return ok(text)
}

// htmlPart returns the decoded body of the first text/html part.
func htmlPart(mr *multipart.Reader) string {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return ""
		}
		if !strings.HasPrefix(part.Header.Get("Content-Type"), "text/html") {
			continue
		}
		return decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding"))
	}
}

func decodeTransfer(r io.Reader, encoding string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}
	data, _ := io.ReadAll(r)
	return string(data)
}
