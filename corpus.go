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


package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/ai/openai"
	"github.com/poiesic/corpus/chunking"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/extract"
	"github.com/poiesic/corpus/ingestion"
	"github.com/poiesic/corpus/query"
	"github.com/poiesic/corpus/reindex"
	"github.com/poiesic/corpus/storage"
	"github.com/poiesic/corpus/storage/badger"
	"github.com/poiesic/corpus/vecindex"
)

// ErrInvalidDomainName is returned when a domain name cannot be used as
// a directory name under the store root.
var ErrInvalidDomainName = errors.New("domain name cannot contain path separators or dots")

// Store is the root handle over a corpus directory. It owns the control
// store cataloging domains and the AI provider shared by all domain
// handles. Every Domain opened from a Store must be closed before the
// Store itself.
type Store struct {
	rootDir   string
	backend   *badger.Backend
	registry  storage.DomainRegistry
	provider  ai.AIProvider
	extractor extract.Extractor
	logger    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	aiConfig  *ai.Config
	provider  ai.AIProvider
	extractor extract.Extractor
	logger    *slog.Logger
}

// WithAIConfig sets the configuration for the default OpenAI-compatible
// provider. Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) StoreOption {
	return func(o *storeOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of the default
// OpenAI-compatible one. The store takes ownership and closes it.
func WithProvider(provider ai.AIProvider) StoreOption {
	return func(o *storeOptions) {
		o.provider = provider
	}
}

// WithExtractor sets the document extractor used by all domains.
// Default is the plain-text extractor.
func WithExtractor(extractor extract.Extractor) StoreOption {
	return func(o *storeOptions) {
		o.extractor = extractor
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// Open opens the corpus store rooted at rootDir, creating the directory
// layout on first use. The control store lives under rootDir/control;
// each domain gets its own subdirectory under rootDir/domains.
func Open(rootDir string, opts ...StoreOption) (*Store, error) {
	options := &storeOptions{
		aiConfig:  ai.DefaultConfig(),
		extractor: extract.NewPlaintext(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store root: %w", err)
	}

	backend, err := badger.OpenBackend(filepath.Join(rootDir, "control"), false)
	if err != nil {
		return nil, err
	}

	registry, err := badger.NewDomainRegistry(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			registry.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Store{
		rootDir:   rootDir,
		backend:   backend,
		registry:  registry,
		provider:  provider,
		extractor: options.extractor,
		logger:    options.logger,
	}, nil
}

// CreateDomain registers a new domain and assigns its storage paths.
// The caller fills Name, Description, Keywords, and Config; the
// configuration is write-once from here on.
func (s *Store) CreateDomain(ctx context.Context, domain *core.Domain) (*core.Domain, error) {
	if domain == nil {
		return nil, core.ErrInvalidDomain
	}
	if strings.ContainsAny(domain.Name, `/\`) || strings.Contains(domain.Name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomainName, domain.Name)
	}

	dir := s.domainDir(domain.Name)
	domain.MetadataPath = filepath.Join(dir, "metadata")
	domain.VectorPath = filepath.Join(dir, "vectors.idx")

	created, err := s.registry.CreateDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating domain directory: %w", err)
	}

	s.logger.Info("domain created", "name", created.Name, "domainId", created.Id)
	return created, nil
}

// GetDomain retrieves a domain's catalog entry by name.
func (s *Store) GetDomain(ctx context.Context, name string) (*core.Domain, error) {
	return s.registry.GetDomain(ctx, name)
}

// ListDomains retrieves all registered domains ordered by name.
func (s *Store) ListDomains(ctx context.Context) ([]*core.Domain, error) {
	return s.registry.ListDomains(ctx)
}

// DeleteDomain removes a domain's catalog entry and its store files.
// Any open Domain handle must be closed first.
func (s *Store) DeleteDomain(ctx context.Context, name string) error {
	domain, err := s.registry.GetDomain(ctx, name)
	if err != nil {
		return err
	}
	if err := s.registry.DeleteDomain(ctx, name); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Dir(domain.MetadataPath)); err != nil {
		s.logger.Error("error removing domain directory", "name", name, "err", err)
		return err
	}
	s.logger.Info("domain deleted", "name", name)
	return nil
}

// OpenDomain opens a handle over one domain's stores and coordinators.
func (s *Store) OpenDomain(ctx context.Context, name string) (*Domain, error) {
	info, err := s.registry.GetDomain(ctx, name)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(info.MetadataPath, false)
	if err != nil {
		return nil, err
	}

	meta, err := badger.NewMetadataStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	index, err := vecindex.Open(info.VectorPath, info.Config.EmbeddingDimension, info.Config.IndexKind)
	if err != nil {
		meta.Close()
		backend.Close()
		return nil, err
	}

	chunker, err := chunking.New(info.Config, s.provider.Embedder())
	if err != nil {
		index.Close()
		meta.Close()
		backend.Close()
		return nil, err
	}

	d := &Domain{
		info:    info,
		store:   s,
		backend: backend,
		meta:    meta,
		index:   index,
		chunker: chunker,
		logger:  s.logger.With("domain", info.Name),
	}

	if err := d.wireCoordinators(); err != nil {
		index.Close()
		meta.Close()
		backend.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the AI provider, the registry, and the control store.
func (s *Store) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.registry.Close(); err != nil {
		s.logger.Error("error closing domain registry", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing control store", "err", err)
		return err
	}
	return nil
}

func (s *Store) domainDir(name string) string {
	return filepath.Join(s.rootDir, "domains", strings.ToLower(name))
}

// Domain is an open handle over one domain: its metadata store, its
// vector index, and the coordinators operating on them.
type Domain struct {
	info     *core.Domain
	store    *Store
	backend  *badger.Backend
	meta     storage.MetadataStore
	index    *vecindex.Flat
	chunker  chunking.Chunker
	ingestor *ingestion.Coordinator
	querier  *query.Coordinator
	logger   *slog.Logger
}

// wireCoordinators builds the ingestion and query coordinators over the
// current index. Called at open time and again after a rebuild swap.
func (d *Domain) wireCoordinators() error {
	ingestor, err := ingestion.NewCoordinator(
		d.meta, d.index, d.store.extractor, d.chunker, d.store.provider.Embedder(),
		ingestion.WithLogger(d.logger),
	)
	if err != nil {
		return err
	}

	querier, err := query.NewCoordinator(
		d.meta, d.index, d.store.provider,
		query.WithRetrievalK(d.info.Config.RetrievalK),
		query.WithLogger(d.logger),
	)
	if err != nil {
		ingestor.Release()
		return err
	}

	if d.ingestor != nil {
		d.ingestor.Release()
	}
	d.ingestor = ingestor
	d.querier = querier
	return nil
}

// Info returns the domain's catalog entry.
func (d *Domain) Info() *core.Domain {
	return d.info
}

// Ingest runs the ingestion pipeline on one document and maintains the
// registry's document counter.
func (d *Domain) Ingest(ctx context.Context, name, path string, data []byte) (*core.IngestionReport, error) {
	report, err := d.ingestor.Ingest(ctx, name, path, data)
	if err != nil {
		return nil, err
	}

	if !report.Duplicate {
		if err := d.store.registry.AddDocumentCount(ctx, d.info.Name, 1); err != nil {
			d.logger.Warn("error updating document counter", "err", err)
		}
	}
	return report, nil
}

// Query answers the question from the domain's indexed chunks.
func (d *Domain) Query(ctx context.Context, question string) (*query.Result, error) {
	return d.querier.Query(ctx, question)
}

// QueryWithMonitor answers the question with monitoring callbacks.
func (d *Domain) QueryWithMonitor(ctx context.Context, question string, monitor query.QueryMonitor) (*query.Result, error) {
	return d.querier.QueryWithMonitor(ctx, question, monitor)
}

// ListDocuments retrieves the domain's documents ordered by insertion.
func (d *Domain) ListDocuments(ctx context.Context) ([]*core.DocumentFile, error) {
	return d.meta.ListDocuments(ctx)
}

// DeleteDocument removes a document and its chunk rows. The document's
// vectors stay in the append-only index; until the domain is rebuilt or
// re-created, queries hitting those offsets report a broken invariant
// rather than serving stale content.
func (d *Domain) DeleteDocument(ctx context.Context, id core.ID) error {
	if err := d.meta.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if err := d.store.registry.AddDocumentCount(ctx, d.info.Name, -1); err != nil {
		d.logger.Warn("error updating document counter", "err", err)
	}
	return nil
}

// Check compares the domain's chunk rows against its vector index.
func (d *Domain) Check(ctx context.Context) (*reindex.ConsistencyReport, error) {
	return reindex.Verify(ctx, d.meta, d.index)
}

// Reindex rebuilds the domain's vector index from its chunk rows,
// re-embedding everything in offset order. The old index file stays in
// place until the rebuilt one is persisted, then the handle swaps over.
func (d *Domain) Reindex(ctx context.Context, progress io.Writer) error {
	rebuilder, err := reindex.NewRebuilder(d.meta, d.store.provider.Embedder(), nil, progress)
	if err != nil {
		return err
	}

	dest, err := vecindex.Create(d.info.VectorPath, d.info.Config.EmbeddingDimension, d.info.Config.IndexKind)
	if err != nil {
		return err
	}

	if err := rebuilder.Run(ctx, dest); err != nil {
		dest.Close()
		return err
	}

	old := d.index
	d.index = dest
	if err := d.wireCoordinators(); err != nil {
		d.index = old
		dest.Close()
		return err
	}
	old.Close()

	d.logger.Info("index rebuilt", "vectors", dest.Len())
	return nil
}

// Close releases the domain's coordinators and stores.
func (d *Domain) Close() error {
	d.ingestor.Release()

	if err := d.index.Close(); err != nil {
		d.logger.Error("error closing vector index", "err", err)
	}

	if err := d.meta.Close(); err != nil {
		d.logger.Error("error closing metadata store", "err", err)
		return err
	}

	if err := d.backend.Close(); err != nil {
		d.logger.Error("error closing domain store", "err", err)
		return err
	}
	return nil
}
