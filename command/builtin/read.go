package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/reader"
)

type ReadCommand struct {
}

func (rc *ReadCommand) Name() string {
	return "read"
}

func (rc *ReadCommand) Description() string {
	return "Print one page of a text file, online or from a download"
}

func (rc *ReadCommand) Usage() string {
	return "read [--offline] [--toc] [-c chapter] [-n page] <key|id>"
}

// Execute prints a single page. Chapters and pages are counted from one.
func (rc *ReadCommand) Execute(ctx context.Context, api command.API, args *command.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, rc.Usage()); err != nil {
		return 2, err
	}

	doc, err := rc.open(ctx, api, args)
	if err != nil {
		return 1, err
	}

	if args.Bool("toc") {
		for i, chapter := range doc.Chapters {
			title := chapter.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(writer, "%3d  %s  (%d pages)\n", i+1, title, doc.PageCount(i))
		}
		return 0, nil
	}

	chapter := args.Int("chapter") - 1
	page := args.Int("page") - 1

	content, err := doc.Page(chapter, page)
	if err != nil {
		return 1, err
	}

	if title := doc.Chapters[chapter].Title; title != "" {
		fmt.Fprintln(writer, headerStyle.Render(title))
	}
	fmt.Fprintln(writer, content)
	fmt.Fprintln(writer, dimStyle.Render(fmt.Sprintf("chapter %d/%d, page %d/%d", chapter+1, len(doc.Chapters), page+1, doc.PageCount(chapter))))
	return 0, nil
}

func (rc *ReadCommand) open(ctx context.Context, api command.API, args *command.CommandArgs) (*reader.Document, error) {
	if !args.Bool("offline") {
		return api.Read(ctx, args.Arg(0, ""))
	}

	id, err := parseID(args.Arg(0, ""))
	if err != nil {
		return nil, err
	}
	return api.ReadDownload(ctx, id)
}

func (rc *ReadCommand) GetFlags() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"offline": {
				Name:        "offline",
				Short:       "o",
				Type:        "bool",
				Description: "Read a download by ID instead of a remote key",
			},
			"toc": {
				Name:        "toc",
				Short:       "t",
				Type:        "bool",
				Description: "List chapters",
			},
			"chapter": {
				Name:        "chapter",
				Short:       "c",
				Type:        "int",
				Default:     int64(1),
				Description: "Chapter number",
			},
			"page": {
				Name:        "page",
				Short:       "n",
				Type:        "int",
				Default:     int64(1),
				Description: "Page number within the chapter",
			},
		},
	}
}
