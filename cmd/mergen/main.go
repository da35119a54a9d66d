// Copyright 2025 Poiesic Systems
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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/mergen"
	"github.com/poiesic/mergen/export"
	"github.com/poiesic/mergen/observability"
	"github.com/poiesic/mergen/server"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mergen",
		Usage: "Plan hotel, flight and transfer packages from free-text requests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding hotels.json, flights.json, transfers.json and the index",
				EnvVars: []string{"MERGEN_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "interpreter",
				Usage:   "Query interpreter (keyword, llm)",
				EnvVars: []string{"MERGEN_INTERPRETER"},
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the plan cache; empty disables caching",
				EnvVars: []string{"MERGEN_REDIS_ADDR"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build the hotel index from the hotel catalog",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Drop and rebuild the index even when it is not empty",
					},
				},
			},
			{
				Name:      "plan",
				Usage:     "Plan packages for a request",
				ArgsUsage: "<query>",
				Action:    planCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of packages (1-3)",
						Value:   3,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the plan as JSON",
					},
					&cli.StringFlag{
						Name:  "pdf",
						Usage: "Also write the plan to this PDF file",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the planning HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"MERGEN_ADDR"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-request timeout",
						Value: server.DefaultTimeout,
					},
				},
			},
		},
	}
}

// loadConfig reads the environment and applies the global flags on top.
func loadConfig(c *cli.Context) (*mergen.Config, error) {
	cfg, err := mergen.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if c.IsSet("data-dir") {
		cfg.SetDataDir(c.String("data-dir"))
	}
	if c.IsSet("interpreter") {
		cfg.Interpreter = c.String("interpreter")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	return cfg, cfg.Validate()
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	start := time.Now()
	opts := []mergen.Option{mergen.WithIndexProgress()}
	if c.Bool("force") {
		opts = append(opts, mergen.WithoutIndexCheck())
	}
	tc, err := mergen.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer tc.Close()

	if c.Bool("force") {
		n, err := tc.Reindex(ctx)
		if err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}
		fmt.Printf("Indexed %d hotels in %v\n", n, time.Since(start).Round(time.Millisecond))
		return nil
	}
	n, err := tc.IndexSize(ctx)
	if err != nil {
		return fmt.Errorf("count index: %w", err)
	}
	fmt.Printf("Index ready with %d of %d hotels (%v)\n", n, len(tc.Catalogs().Hotels), time.Since(start).Round(time.Millisecond))
	return nil
}

func planCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	ctx := context.Background()
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	tc, err := mergen.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer tc.Close()

	plan, err := tc.PlanTravel(ctx, query, c.Int("top-k"))
	if err != nil {
		return err
	}

	if path := c.String("pdf"); path != "" {
		body, err := export.NewWriter().Bytes(plan)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0644); err != nil {
			return err
		}
		slog.Info("plan written", "path", path)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	printPlan(os.Stdout, plan)
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	tc, err := mergen.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer tc.Close()

	srv := server.New(tc,
		server.WithRegistry(observability.InitRegistry()),
		server.WithTimeout(c.Duration("timeout")),
	)
	return srv.ListenAndServe(ctx, c.String("addr"))
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
