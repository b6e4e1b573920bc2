package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// MetadataStore implements storage.MetadataStore for BadgerDB.
// One store instance backs exactly one domain.
type MetadataStore struct {
	backend  *Backend
	docSeq   *badger.Sequence
	chunkSeq *badger.Sequence
}

var _ storage.MetadataStore = (*MetadataStore)(nil)

// NewMetadataStore creates a new MetadataStore on the given backend.
func NewMetadataStore(backend *Backend) (*MetadataStore, error) {
	docSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}

	chunkSeq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		docSeq.Release()
		return nil, err
	}

	return &MetadataStore{
		backend:  backend,
		docSeq:   docSeq,
		chunkSeq: chunkSeq,
	}, nil
}

// Close releases the ID sequences.
func (s *MetadataStore) Close() error {
	if err := s.docSeq.Release(); err != nil {
		return err
	}
	return s.chunkSeq.Release()
}

// nextID returns the next non-zero value from a sequence.
func nextID(seq *badger.Sequence) (core.ID, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(next), nil
}

// AddDocument inserts a document row and all of its chunk rows in one
// transaction. Either every row lands or none do.
func (s *MetadataStore) AddDocument(ctx context.Context, doc *core.DocumentFile, chunks []*core.Chunk) error {
	if err := core.ValidateDocumentFile(doc); err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		// Enforce hash uniqueness
		hashKey := makeDocumentHashKey(doc.Hash)
		if _, err := tx.Get(hashKey); err == nil {
			return fmt.Errorf("%w: document hash %s", storage.ErrDuplicateKey, doc.Hash)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		id, err := nextID(s.docSeq)
		if err != nil {
			return err
		}
		doc.Id = id
		doc.CreatedAt = time.Now().UTC()
		doc.UpdatedAt = doc.CreatedAt

		if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocumentFile(doc)); err != nil {
			return err
		}
		if err := tx.Set(hashKey, storage.MarshalID(doc.Id)); err != nil {
			return err
		}

		for _, chunk := range chunks {
			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}

			// Enforce content uniqueness
			contentKey := makeChunkContentKey(chunk.Content)
			if _, err := tx.Get(contentKey); err == nil {
				return fmt.Errorf("%w: offset %d", storage.ErrDuplicateContent, chunk.Offset)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			chunkID, err := nextID(s.chunkSeq)
			if err != nil {
				return err
			}
			chunk.Id = chunkID
			chunk.DocumentId = doc.Id
			chunk.InsertedAt = doc.CreatedAt

			if err := tx.Set(makeChunkKey(chunk.Offset), storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			if err := tx.Set(contentKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeChunkDocumentKey(doc.Id, chunk.Offset), storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// FindDocumentByHash retrieves a document by its content hash.
func (s *MetadataStore) FindDocumentByHash(ctx context.Context, hash string) (*core.DocumentFile, error) {
	var result *core.DocumentFile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentHashKey(hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocument retrieves a document by ID.
func (s *MetadataStore) GetDocument(ctx context.Context, id core.ID) (*core.DocumentFile, error) {
	var result *core.DocumentFile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments retrieves all documents ordered by insertion.
func (s *MetadataStore) ListDocuments(ctx context.Context) ([]*core.DocumentFile, error) {
	var result []*core.DocumentFile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.DocumentFile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocumentFile(val)
				return err
			})
			if err != nil {
				return err
			}
			result = append(result, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Key order is lexicographic over decimal IDs; restore insertion order.
	sortDocumentsByID(result)
	return result, nil
}

func sortDocumentsByID(docs []*core.DocumentFile) {
	for i := 1; i < len(docs); i++ {
		for j := i; j > 0 && docs[j-1].Id > docs[j].Id; j-- {
			docs[j-1], docs[j] = docs[j], docs[j-1]
		}
	}
}

// DeleteDocument removes a document and cascades to its chunk rows and
// indices. Vectors already appended for those chunks stay in the vector
// index; their offsets become unmapped on this side.
func (s *MetadataStore) DeleteDocument(ctx context.Context, id core.ID) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		doc, err := readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		// Cascade: walk the document's chunk index
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkDocumentKey(id)
		iter := tx.NewIterator(opts)

		var indexKeys [][]byte
		var offsets []uint64
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)
			indexKeys = append(indexKeys, key)
			offsets = append(offsets, offsetFromChunkDocumentKey(key))
		}
		iter.Close()

		for i, offset := range offsets {
			chunkKey := makeChunkKey(offset)
			chunk, err := readChunk(tx, chunkKey)
			if err != nil {
				return err
			}
			if chunk != nil {
				if err := tx.Delete(makeChunkContentKey(chunk.Content)); err != nil {
					return err
				}
			}
			if err := tx.Delete(chunkKey); err != nil {
				return err
			}
			if err := tx.Delete(indexKeys[i]); err != nil {
				return err
			}
		}

		if err := tx.Delete(makeDocumentHashKey(doc.Hash)); err != nil {
			return err
		}
		if err := tx.Delete(makeDocumentKey(id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetChunksByOffsets retrieves chunks by their vector offsets, preserving
// input order. A missing offset is an integrity fault for the caller.
func (s *MetadataStore) GetChunksByOffsets(ctx context.Context, offsets ...uint64) ([]*core.Chunk, error) {
	result := make([]*core.Chunk, 0, len(offsets))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, offset := range offsets {
			chunk, err := readChunk(tx, makeChunkKey(offset))
			if err != nil {
				return err
			}
			if chunk == nil {
				return fmt.Errorf("%w: no chunk row for offset %d", storage.ErrNotFound, offset)
			}
			result = append(result, chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetChunksByDocument retrieves a document's chunks ordered by offset.
func (s *MetadataStore) GetChunksByDocument(ctx context.Context, docID core.ID) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkDocumentKey(docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			offset := offsetFromChunkDocumentKey(iter.Item().Key())
			chunk, err := readChunk(tx, makeChunkKey(offset))
			if err != nil {
				return err
			}
			if chunk == nil {
				return fmt.Errorf("%w: no chunk row for offset %d", storage.ErrNotFound, offset)
			}
			result = append(result, chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChunksInOffsetOrder iterates every chunk row ordered by offset.
func (s *MetadataStore) ChunksInOffsetOrder(ctx context.Context, fn func(*core.Chunk) error) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountDocuments returns the number of document rows.
func (s *MetadataStore) CountDocuments(ctx context.Context) (uint64, error) {
	return s.countPrefix(documentRecordPrefix + ":")
}

// CountChunks returns the number of chunk rows.
func (s *MetadataStore) CountChunks(ctx context.Context) (uint64, error) {
	return s.countPrefix(chunkRecordPrefix + ":")
}

func (s *MetadataStore) countPrefix(prefix string) (uint64, error) {
	var count uint64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// offsetFromChunkDocumentKey extracts the offset from a document index key.
func offsetFromChunkDocumentKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}

// readDocument reads and unmarshals a document record.
// Returns nil (no error) if the key doesn't exist.
func readDocument(tx *badger.Txn, key []byte) (*core.DocumentFile, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *core.DocumentFile
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocumentFile(val)
		return err
	})
	return doc, err
}

// readChunk reads and unmarshals a chunk record.
// Returns nil (no error) if the key doesn't exist.
func readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}
