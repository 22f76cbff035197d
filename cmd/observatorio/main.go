// Copyright 2025 Observatorio Regulatorio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	observatorio "github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/chunker"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/extraction"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/sink"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "observatorio",
		Usage: "Entity extraction pipeline for regulatory news documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Load a document, extract entities chunk by chunk and merge the results",
				ArgsUsage: "<url>",
				Action:    extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service base URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "extraction-model",
						Usage: "Model used for per-chunk extraction",
						Value: "gpt-oss:latest",
					},
					&cli.StringFlag{
						Name:  "consolidation-model",
						Usage: "Model used for the final consolidation pass (defaults to extraction-model)",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum chunk length in runes",
						Value: 2000,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Runes shared between consecutive chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"c"},
						Usage:   "Number of chunks extracted in parallel",
						Value:   4,
					},
					&cli.BoolFlag{
						Name:  "semantic",
						Usage: "Prefer sentence and paragraph boundaries when chunking",
					},
					&cli.BoolFlag{
						Name:  "no-consolidate",
						Usage: "Skip the consolidation model pass and merge chunk results directly",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the result as JSON to this file",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Record the run in a BadgerDB history database at this path",
					},
				},
			},
			{
				Name:      "agent",
				Usage:     "Extract entities from a URL with a tool-calling agent",
				ArgsUsage: "<url>",
				Action:    agentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service base URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Model used for the agent loop",
						Value: "gpt-oss:latest",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List extraction runs recorded in a history database",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the BadgerDB history database",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Show only runs recorded for this URL",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs to list",
						Value:   20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractCommand(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("usage: observatorio extract [options] <url>")
	}

	consolidationModel := c.String("consolidation-model")
	if consolidationModel == "" {
		consolidationModel = c.String("extraction-model")
	}
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithExtractionModel(c.String("extraction-model")),
		ai.WithConsolidationModel(consolidationModel),
	)

	options := []observatorio.ServiceOption{
		observatorio.WithAIConfig(aiConfig),
		observatorio.WithChunkerConfig(chunker.Config{
			ChunkSize: c.Int("chunk-size"),
			Overlap:   c.Int("overlap"),
		}),
		observatorio.WithConcurrency(c.Int("concurrency")),
		observatorio.WithSemanticChunking(c.Bool("semantic")),
		observatorio.WithConsolidation(!c.Bool("no-consolidate")),
	}
	if dbPath := c.String("db"); dbPath != "" {
		options = append(options, observatorio.WithHistory(dbPath))
	}

	service, err := observatorio.NewService(options...)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	run, err := service.Extract(c.Context, url,
		extraction.WithMonitor(&progressMonitor{w: os.Stderr}))
	if err != nil {
		return err
	}

	renderRun(os.Stdout, run)

	if out := c.String("out"); out != "" {
		if err := sink.WriteFile(out, run); err != nil {
			return fmt.Errorf("failed to write result file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", dimStyle.Render("Wrote"), out)
	}

	return nil
}

func agentCommand(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("usage: observatorio agent [options] <url>")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
	)

	service, err := observatorio.NewService(observatorio.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	entities, err := service.ExtractWithAgent(c.Context, url)
	if err != nil {
		return err
	}

	renderEntityList(os.Stdout, "Companies", entities.Companies)
	renderEntityList(os.Stdout, "Persons", entities.Persons)
	renderEntityList(os.Stdout, "Events", entities.Events)

	return nil
}

func historyCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRunRepository(backend)
	if err != nil {
		return err
	}

	var runs []*core.ExtractionRun
	if url := c.String("url"); url != "" {
		runs, err = repo.GetRunsByURL(c.Context, url)
	} else {
		runs, err = repo.GetRecentRuns(c.Context, c.Int("limit"))
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(dimStyle.Render("no runs recorded"))
		return nil
	}
	for _, run := range runs {
		renderHistoryLine(os.Stdout, run)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
