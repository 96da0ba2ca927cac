package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/daehokim/noteindex/internal/index"
	"github.com/daehokim/noteindex/internal/merge"
)

func main() {
	app := &cli.App{
		Name:  "noteindex",
		Usage: "Build a searchable metadata index over an exported note archive",
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Extract text from note bodies and attachments and write the per-variant index collections",
				Action: index.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Root directory of the exported archive", Required: true},
					&cli.StringFlag{Name: "manifest", Usage: "Path to the files_info.json manifest", Required: true},
					&cli.StringFlag{Name: "outdir", Usage: "Output directory for index files and the text cache", Value: "data"},
					&cli.IntFlag{Name: "k-name", Usage: "Keyword count for the name variant", Value: 20},
					&cli.IntFlag{Name: "k-html", Usage: "Keyword count for the body variant", Value: 50},
					&cli.IntFlag{Name: "k-attach", Usage: "Keyword count for the attachment variant", Value: 40},
					&cli.StringFlag{Name: "stopwords", Usage: "JSON or YAML file replacing the built-in stopword list"},
					&cli.StringFlag{Name: "rules", Usage: "YAML file replacing the built-in tag rules and subtag map"},
					&cli.BoolFlag{Name: "ocr", Usage: "Run OCR over image attachments when tesseract is available"},
					&cli.BoolFlag{Name: "only-attachments", Usage: "Suppress HTML extraction for attached exported pages"},
					&cli.StringFlag{Name: "emit", Usage: "Active emit modes: name, html (body), attach", Value: "name,html,attach"},
					&cli.IntFlag{Name: "workers", Usage: "Worker pool size", Value: 4},
					&cli.BoolFlag{Name: "dry-run", Usage: "Preview records without writing index files"},
					&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
				},
			},
			{
				Name:   "merge",
				Usage:  "Merge the per-variant collections into content_index.json",
				Action: merge.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Name-variant collection", Value: "data/content_index_for_name.json"},
					&cli.StringFlag{Name: "html", Usage: "Body-variant collection", Value: "data/content_index_for_html.json"},
					&cli.StringFlag{Name: "attach", Usage: "Attachment-variant collection", Value: "data/content_index_for_attach.json"},
					&cli.StringFlag{Name: "out", Usage: "Merged output path", Value: "data/content_index.json"},
					&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
