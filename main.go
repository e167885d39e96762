package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"webcorpus/internal/analyze"
	"webcorpus/internal/arxiv"
	"webcorpus/internal/extract"
	"webcorpus/internal/fetch"
	"webcorpus/internal/summarize"
)

func main() {
	app := &cli.App{
		Name:  "webcorpus",
		Usage: "fetch web pages, extract plain text, and analyze the corpus",
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "fetch every URL from the input list into raw artifacts and publish the fetch manifest",
				Flags:  stageFlags(),
				Action: fetch.FetchAction,
			},
			{
				Name:   "extract",
				Usage:  "strip fetched artifacts to structured documents and publish the extract manifest",
				Flags:  stageFlags(),
				Action: extract.ExtractAction,
			},
			{
				Name:   "analyze",
				Usage:  "compute corpus-wide statistics over all structured documents and write the final report",
				Flags:  stageFlags(),
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "summarize",
				Usage: "fetch a URL list in one process and write per-response records plus summary statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Usage:    "text file with one URL per line",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Usage:    "directory for responses.json, summary.json and errors.log",
						Required: true,
					},
					quietFlag(),
				},
				Action: summarize.SummarizeAction,
			},
			{
				Name:  "arxiv",
				Usage: "query the arXiv API and write per-paper stats plus a corpus analysis",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Usage:    "arXiv search query, e.g. \"cat:cs.CL\"",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "number of results to request (1-100)",
						Value: 10,
					},
					&cli.StringFlag{
						Name:     "output",
						Usage:    "directory for papers.json, corpus_analysis.json and processing.log",
						Required: true,
					},
					quietFlag(),
				},
				Action: arxiv.ArxivAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func stageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML config with the shared directory layout (defaults used when omitted)",
		},
		quietFlag(),
	}
}

func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "quiet",
		Usage: "log errors only",
	}
}
