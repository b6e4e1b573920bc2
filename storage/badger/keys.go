package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/corpus/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
	documentHashPrefix   = "dochash"
	documentIDSeq        = "docrecseq"
	chunkRecordPrefix    = "chkrec"
	chunkContentPrefix   = "chkcont"
	chunkDocumentPrefix  = "chkdoc"
	chunkIDSeq           = "chkrecseq"
	domainRecordPrefix   = "domrec"
	domainNamePrefix     = "domname"
	domainIDSeq          = "domrecseq"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentHashKey generates a key for the document hash uniqueness index.
func makeDocumentHashKey(hash string) []byte {
	return []byte(documentHashPrefix + ":" + hash)
}

// makeChunkKey generates a key for a chunk record by vector offset.
// Offsets are written in BigEndian order so lexicographic iteration
// visits chunks in offset order.
func makeChunkKey(offset uint64) []byte {
	prefix := chunkRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	n := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[n:], offset)
	return buf
}

// makeChunkContentKey generates a key for the chunk content uniqueness
// index. The content itself is too large to embed in the key, so the key
// carries a content-derived ID instead.
func makeChunkContentKey(content string) []byte {
	prefix := chunkContentPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	n := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[n:], uint64(core.IDFromContent(content)))
	return buf
}

// makeChunkDocumentKey generates a composite key for the document index.
// Format: prefix:documentID:offset
func makeChunkDocumentKey(docID core.ID, offset uint64) []byte {
	prefix := chunkDocumentPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	n := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[n:], uint64(docID))
	n += 8
	binary.BigEndian.PutUint64(buf[n:], offset)
	return buf
}

// makePartialChunkDocumentKey generates a partial key for per-document
// chunk iteration.
func makePartialChunkDocumentKey(docID core.ID) []byte {
	prefix := chunkDocumentPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	n := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[n:], uint64(docID))
	return buf
}

// makeDomainKey generates a key for a domain record by ID.
func makeDomainKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", domainRecordPrefix, id))
}

// makeDomainNameKey generates a key for the case-insensitive domain name
// index.
func makeDomainNameKey(name string) []byte {
	return []byte(domainNamePrefix + ":" + strings.ToLower(name))
}
