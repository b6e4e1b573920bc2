package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

func testDocument(name, content string) *core.DocumentFile {
	return &core.DocumentFile{
		Name:       name,
		Path:       "/tmp/" + name,
		Hash:       core.HashContent([]byte(content)),
		TotalPages: 1,
	}
}

func testChunks(offsets []uint64, contents []string) []*core.Chunk {
	chunks := make([]*core.Chunk, len(offsets))
	for i := range offsets {
		chunks[i] = &core.Chunk{
			Offset:  offsets[i],
			Content: contents[i],
			Metadata: core.ChunkMetadata{
				Pages:   []int{1},
				Indices: []int{i},
			},
		}
	}
	return chunks
}

func TestAddAndGetDocument(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	doc := testDocument("manual.txt", "full manual text")
	chunks := testChunks([]uint64{0, 1}, []string{"first chunk body", "second chunk body"})

	if err := store.AddDocument(ctx, doc, chunks); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if doc.Id == 0 {
		t.Fatal("Expected non-zero document ID")
	}
	for _, chunk := range chunks {
		if chunk.Id == 0 {
			t.Fatal("Expected non-zero chunk ID")
		}
		if chunk.DocumentId != doc.Id {
			t.Fatalf("Expected chunk document ID %d, got %d", doc.Id, chunk.DocumentId)
		}
	}

	retrieved, err := store.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Name != "manual.txt" {
		t.Fatalf("Expected 'manual.txt', got '%s'", retrieved.Name)
	}

	byHash, err := store.FindDocumentByHash(ctx, doc.Hash)
	if err != nil {
		t.Fatalf("Failed to find document by hash: %v", err)
	}
	if byHash.Id != doc.Id {
		t.Fatalf("Expected document ID %d, got %d", doc.Id, byHash.Id)
	}
}

func TestAddDocumentDuplicateHash(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	first := testDocument("a.txt", "shared content")
	if err := store.AddDocument(ctx, first, testChunks([]uint64{0}, []string{"chunk one"})); err != nil {
		t.Fatalf("Failed to add first document: %v", err)
	}

	second := testDocument("b.txt", "shared content")
	err = store.AddDocument(ctx, second, testChunks([]uint64{1}, []string{"chunk two"}))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// The failed insert must not leave any rows behind
	count, err := store.CountDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to count documents: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 document, got %d", count)
	}
}

func TestAddDocumentDuplicateChunkContent(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	first := testDocument("a.txt", "document a")
	if err := store.AddDocument(ctx, first, testChunks([]uint64{0}, []string{"repeated body"})); err != nil {
		t.Fatalf("Failed to add first document: %v", err)
	}

	second := testDocument("b.txt", "document b")
	err = store.AddDocument(ctx, second, testChunks([]uint64{1, 2}, []string{"fresh body", "repeated body"}))
	if !errors.Is(err, storage.ErrDuplicateContent) {
		t.Fatalf("Expected ErrDuplicateContent, got %v", err)
	}

	// Transaction rollback: none of the second document's rows may exist
	chunkCount, err := store.CountChunks(ctx)
	if err != nil {
		t.Fatalf("Failed to count chunks: %v", err)
	}
	if chunkCount != 1 {
		t.Fatalf("Expected 1 chunk, got %d", chunkCount)
	}
	if _, err := store.FindDocumentByHash(ctx, second.Hash); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for rolled-back document, got %v", err)
	}
}

func TestGetChunksByOffsets(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	doc := testDocument("a.txt", "document a")
	contents := []string{"alpha body", "beta body", "gamma body"}
	if err := store.AddDocument(ctx, doc, testChunks([]uint64{0, 1, 2}, contents)); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	// Input order must be preserved, not offset order
	chunks, err := store.GetChunksByOffsets(ctx, 2, 0)
	if err != nil {
		t.Fatalf("Failed to get chunks: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Content != "gamma body" || chunks[1].Content != "alpha body" {
		t.Fatalf("Chunks not in input order: %q, %q", chunks[0].Content, chunks[1].Content)
	}

	// A missing offset is an integrity fault
	_, err = store.GetChunksByOffsets(ctx, 0, 99)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing offset, got %v", err)
	}
}

func TestChunksInOffsetOrder(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	// Insert with offsets past one byte to catch lexicographic ordering bugs
	doc := testDocument("a.txt", "document a")
	offsets := []uint64{3, 0, 300, 2, 1}
	contents := []string{"chunk d", "chunk a", "chunk far", "chunk c", "chunk b"}
	if err := store.AddDocument(ctx, doc, testChunks(offsets, contents)); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	var seen []uint64
	err = store.ChunksInOffsetOrder(ctx, func(chunk *core.Chunk) error {
		seen = append(seen, chunk.Offset)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to iterate chunks: %v", err)
	}

	want := []uint64{0, 1, 2, 3, 300}
	if len(seen) != len(want) {
		t.Fatalf("Expected %d chunks, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Expected offset %d at position %d, got %d", want[i], i, seen[i])
		}
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	keep := testDocument("keep.txt", "kept document")
	if err := store.AddDocument(ctx, keep, testChunks([]uint64{0}, []string{"kept chunk"})); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	gone := testDocument("gone.txt", "deleted document")
	if err := store.AddDocument(ctx, gone, testChunks([]uint64{1, 2}, []string{"doomed one", "doomed two"})); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := store.DeleteDocument(ctx, gone.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	if _, err := store.GetDocument(ctx, gone.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := store.FindDocumentByHash(ctx, gone.Hash); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound by hash, got %v", err)
	}

	chunkCount, err := store.CountChunks(ctx)
	if err != nil {
		t.Fatalf("Failed to count chunks: %v", err)
	}
	if chunkCount != 1 {
		t.Fatalf("Expected 1 chunk after cascade, got %d", chunkCount)
	}

	// Content uniqueness entries must be gone too, so re-ingestion works
	again := testDocument("gone-again.txt", "deleted document reborn")
	if err := store.AddDocument(ctx, again, testChunks([]uint64{3}, []string{"doomed one"})); err != nil {
		t.Fatalf("Failed to re-add chunk content after delete: %v", err)
	}
}

func TestGetChunksByDocument(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	first := testDocument("a.txt", "document a")
	if err := store.AddDocument(ctx, first, testChunks([]uint64{0, 1}, []string{"a one", "a two"})); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	second := testDocument("b.txt", "document b")
	if err := store.AddDocument(ctx, second, testChunks([]uint64{2, 3, 4}, []string{"b one", "b two", "b three"})); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	chunks, err := store.GetChunksByDocument(ctx, second.Id)
	if err != nil {
		t.Fatalf("Failed to get chunks by document: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Offset != uint64(2+i) {
			t.Fatalf("Expected offset %d, got %d", 2+i, chunk.Offset)
		}
		if chunk.DocumentId != second.Id {
			t.Fatalf("Expected document ID %d, got %d", second.Id, chunk.DocumentId)
		}
	}
}

func TestListDocuments(t *testing.T) {
	store, backend, err := NewMemoryMetadataStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	names := []string{"first.txt", "second.txt", "third.txt"}
	for i, name := range names {
		doc := testDocument(name, "content of "+name)
		chunks := testChunks([]uint64{uint64(i)}, []string{"chunk of " + name})
		if err := store.AddDocument(ctx, doc, chunks); err != nil {
			t.Fatalf("Failed to add document %s: %v", name, err)
		}
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	for i, doc := range docs {
		if doc.Name != names[i] {
			t.Fatalf("Expected %s at position %d, got %s", names[i], i, doc.Name)
		}
	}
}
