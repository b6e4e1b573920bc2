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
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poiesic/corpus"
	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "corpus",
		Usage: "Domain-scoped document knowledge bases with semantic retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "Path to the corpus store root directory",
				Value:   "./corpus-data",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
			&cli.StringFlag{
				Name:  "generator-model",
				Usage: "Answer generation model name",
				Value: "qwen2.5:3b",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new domain",
				ArgsUsage: "NAME",
				Action:    createCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Human-readable domain description",
					},
					&cli.StringFlag{
						Name:  "keywords",
						Usage: "Comma-separated domain keywords",
					},
					&cli.IntFlag{
						Name:     "dimension",
						Usage:    "Embedding dimension (must match the embedding model)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "index-kind",
						Usage: "Vector index kind (flat-l2, flat-cos)",
						Value: string(core.IndexFlatL2),
					},
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "Chunking strategy (recursive, semantic-cluster)",
						Value: string(core.StrategyRecursive),
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum chunk size in characters",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Characters carried from one chunk into the next",
						Value: 200,
					},
					&cli.Float64Flag{
						Name:  "cluster-threshold",
						Usage: "Cosine distance bound for merging segments (semantic-cluster)",
						Value: 0.3,
					},
					&cli.IntFlag{
						Name:  "chunk-max-words",
						Usage: "Word bound per merged chunk (semantic-cluster)",
						Value: 200,
					},
					&cli.IntFlag{
						Name:  "retrieval-k",
						Usage: "Number of chunks retrieved per query",
						Value: 3,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all domains",
				Action: listCommand,
			},
			{
				Name:      "documents",
				Usage:     "List a domain's ingested documents",
				ArgsUsage: "DOMAIN",
				Action:    documentsCommand,
			},
			{
				Name:      "ingest",
				Usage:     "Ingest documents into a domain",
				ArgsUsage: "DOMAIN FILE...",
				Action:    ingestCommand,
			},
			{
				Name:      "query",
				Usage:     "Ask a question against a domain",
				ArgsUsage: "DOMAIN QUESTION",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "show-context",
						Usage: "Print the retrieved context block with the answer",
					},
				},
			},
			{
				Name:      "check",
				Usage:     "Check a domain's cross-store consistency",
				ArgsUsage: "DOMAIN",
				Action:    checkCommand,
			},
			{
				Name:      "reindex",
				Usage:     "Rebuild a domain's vector index from its chunk rows",
				ArgsUsage: "DOMAIN",
				Action:    reindexCommand,
			},
			{
				Name:      "delete-document",
				Usage:     "Delete a document and its chunk rows from a domain",
				ArgsUsage: "DOMAIN DOCUMENT_ID",
				Action:    deleteDocumentCommand,
			},
			{
				Name:      "delete-domain",
				Usage:     "Delete a domain and all of its stored data",
				ArgsUsage: "DOMAIN",
				Action:    deleteDomainCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(c *cli.Context) (*corpus.Store, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return corpus.Open(c.String("store"), corpus.WithAIConfig(aiConfig))
}

func createCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the domain name")
	}

	config, err := domainConfigFromFlags(c)
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	domain := &core.Domain{
		Name:        c.Args().Get(0),
		Description: c.String("description"),
		Keywords:    splitKeywords(c.String("keywords")),
		Config:      *config,
	}

	created, err := store.CreateDomain(context.Background(), domain)
	if err != nil {
		return err
	}

	fmt.Printf("Created domain %q (id %d, dimension %d, %s, %s)\n",
		created.Name, created.Id, created.Config.EmbeddingDimension,
		created.Config.IndexKind, created.Config.Strategy)
	return nil
}

func listCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	domains, err := store.ListDomains(context.Background())
	if err != nil {
		return err
	}

	if len(domains) == 0 {
		fmt.Println("No domains")
		return nil
	}

	for _, domain := range domains {
		fmt.Printf("%-24s %6d docs  dim %-5d %-9s %s\n",
			domain.Name, domain.TotalDocuments,
			domain.Config.EmbeddingDimension, domain.Config.IndexKind, domain.Description)
	}
	return nil
}

func documentsCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the domain name")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	domain, err := store.OpenDomain(context.Background(), c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	docs, err := domain.ListDocuments(context.Background())
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("No documents")
		return nil
	}

	for _, doc := range docs {
		fmt.Printf("%8d  %-32s %4d pages  %s\n", doc.Id, doc.Name, doc.TotalPages, doc.Path)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("expected a domain name and at least one file")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	domain, err := store.OpenDomain(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	for _, path := range c.Args().Slice()[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		report, err := domain.Ingest(ctx, filepath.Base(path), path, data)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		if report.Duplicate {
			fmt.Printf("%s: already ingested (document %d)\n", path, report.DocumentId)
			continue
		}
		fmt.Printf("%s: document %d, %d chunks\n", path, report.DocumentId, report.ChunksWritten)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a domain name and a question")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	domain, err := store.OpenDomain(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	result, err := domain.Query(ctx, c.Args().Get(1))
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)

	if c.Bool("show-context") {
		fmt.Println()
		fmt.Println(result.Context)
	}
	return nil
}

func checkCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the domain name")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	domain, err := store.OpenDomain(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	report, err := domain.Check(ctx)
	if err != nil {
		return err
	}

	fmt.Println(report)
	if !report.Consistent() {
		return fmt.Errorf("domain %q is inconsistent", c.Args().Get(0))
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the domain name")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	domain, err := store.OpenDomain(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	return domain.Reindex(ctx, os.Stderr)
}

func deleteDocumentCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a domain name and a document id")
	}

	id, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", c.Args().Get(1), err)
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	domain, err := store.OpenDomain(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer domain.Close()

	if err := domain.DeleteDocument(ctx, core.ID(id)); err != nil {
		return err
	}

	fmt.Printf("Deleted document %d. The domain's vectors are untouched; run 'check' and re-create the domain if queries start reporting integrity faults.\n", id)
	return nil
}

func deleteDomainCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the domain name")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	name := c.Args().Get(0)
	if err := store.DeleteDomain(context.Background(), name); err != nil {
		return err
	}

	fmt.Printf("Deleted domain %q\n", name)
	return nil
}

func domainConfigFromFlags(c *cli.Context) (*core.DomainConfig, error) {
	config := &core.DomainConfig{
		EmbeddingDimension: c.Int("dimension"),
		IndexKind:          core.IndexKind(c.String("index-kind")),
		Strategy:           core.ChunkStrategy(c.String("strategy")),
		ChunkSize:          c.Int("chunk-size"),
		ChunkOverlap:       c.Int("chunk-overlap"),
		ClusterThreshold:   float32(c.Float64("cluster-threshold")),
		ChunkMaxWords:      c.Int("chunk-max-words"),
		RetrievalK:         c.Int("retrieval-k"),
	}

	if err := core.ValidateDomainConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
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
