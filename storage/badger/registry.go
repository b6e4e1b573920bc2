package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// DomainRegistry implements storage.DomainRegistry for BadgerDB.
// The registry lives in the control database, separate from any
// per-domain store.
type DomainRegistry struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DomainRegistry = (*DomainRegistry)(nil)

// NewDomainRegistry creates a new DomainRegistry on the given backend.
func NewDomainRegistry(backend *Backend) (*DomainRegistry, error) {
	idSeq, err := backend.GetSequence(domainIDSeq)
	if err != nil {
		return nil, err
	}

	return &DomainRegistry{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DomainRegistry) Close() error {
	return r.idSeq.Release()
}

// CreateDomain registers a new domain. Names are unique case-insensitively.
func (r *DomainRegistry) CreateDomain(ctx context.Context, domain *core.Domain) (*core.Domain, error) {
	if err := core.ValidateDomain(domain); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nameKey := makeDomainNameKey(domain.Name)
		if _, err := tx.Get(nameKey); err == nil {
			return fmt.Errorf("%w: domain %s", storage.ErrDuplicateKey, domain.Name)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		id, err := nextID(r.idSeq)
		if err != nil {
			return err
		}
		domain.Id = id
		domain.CreatedAt = time.Now().UTC()
		domain.UpdatedAt = domain.CreatedAt

		if err := tx.Set(makeDomainKey(domain.Id), storage.MarshalDomain(domain)); err != nil {
			return err
		}
		if err := tx.Set(nameKey, storage.MarshalID(domain.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return domain, nil
}

// GetDomain retrieves a domain by name, compared case-insensitively.
func (r *DomainRegistry) GetDomain(ctx context.Context, name string) (*core.Domain, error) {
	var result *core.Domain
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDomainByName(tx, name)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListDomains retrieves all registered domains ordered by name.
func (r *DomainRegistry) ListDomains(ctx context.Context) ([]*core.Domain, error) {
	var result []*core.Domain
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(domainRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var domain *core.Domain
			err := iter.Item().Value(func(val []byte) error {
				var err error
				domain, err = storage.UnmarshalDomain(val)
				return err
			})
			if err != nil {
				return err
			}
			result = append(result, domain)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// AddDocumentCount adjusts a domain's total document counter.
func (r *DomainRegistry) AddDocumentCount(ctx context.Context, name string, delta int) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		domain, err := readDomainByName(tx, name)
		if err != nil {
			return err
		}

		if delta < 0 && uint64(-delta) > domain.TotalDocuments {
			domain.TotalDocuments = 0
		} else {
			domain.TotalDocuments = uint64(int64(domain.TotalDocuments) + int64(delta))
		}
		domain.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeDomainKey(domain.Id), storage.MarshalDomain(domain)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// DeleteDomain removes a domain's catalog entry. The domain's store files
// on disk are the caller's responsibility.
func (r *DomainRegistry) DeleteDomain(ctx context.Context, name string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		domain, err := readDomainByName(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Delete(makeDomainKey(domain.Id)); err != nil {
			return err
		}
		if err := tx.Delete(makeDomainNameKey(name)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// readDomainByName resolves the name index and reads the domain record.
func readDomainByName(tx *badger.Txn, name string) (*core.Domain, error) {
	item, err := tx.Get(makeDomainNameKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: domain %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	item, err = tx.Get(makeDomainKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: domain %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	var domain *core.Domain
	err = item.Value(func(val []byte) error {
		var err error
		domain, err = storage.UnmarshalDomain(val)
		return err
	})
	return domain, err
}
