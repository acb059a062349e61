package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"

	"atelier/internal/domain/content"
)

// ErrNotFound is the single-item miss: the page layer turns it into a 404.
var ErrNotFound = errors.New("not found")

// Get looks one record up by slug within its collection.
func (s *Store) Get(col content.Collection, slug string) (content.Record, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Record{}, ErrNotFound
	}
	var rec content.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket([]byte(col))
		if parent == nil {
			return ErrNotFound
		}
		b := parent.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		r, err := decodeRecord(v)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	return rec, err
}

// ListAll returns the collection's full record set, newest first with slug
// ascending on equal timestamps. This ordered slice is the input the pure
// query functions operate on.
func (s *Store) ListAll(col content.Collection) ([]content.Record, error) {
	var out []content.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket([]byte(col))
		if parent == nil {
			return nil
		}
		idx := parent.Bucket(bIdxPublished)
		metaB := parent.Bucket(bMeta)
		if idx == nil || metaB == nil {
			return nil
		}
		return collectOrdered(idx, metaB, &out)
	})
	return out, err
}

// ListByTag returns the ordered records carrying the tag. Tags are stored
// lowercased, so the lookup folds case too.
func (s *Store) ListByTag(col content.Collection, tag string) ([]content.Record, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, nil
	}
	return s.listSub(col, bIdxTag, tag)
}

// ListByCategory matches the stored category label exactly; pass
// content.Uncategorized for records without one.
func (s *Store) ListByCategory(col content.Collection, category string) ([]content.Record, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, nil
	}
	return s.listSub(col, bIdxCat, category)
}

func (s *Store) listSub(col content.Collection, parentIdx []byte, key string) ([]content.Record, error) {
	var out []content.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket([]byte(col))
		if parent == nil {
			return nil
		}
		idxParent := parent.Bucket(parentIdx)
		metaB := parent.Bucket(bMeta)
		if idxParent == nil || metaB == nil {
			return nil
		}
		sb := idxParent.Bucket([]byte(key))
		if sb == nil {
			return nil
		}
		return collectOrdered(sb, metaB, &out)
	})
	return out, err
}

func collectOrdered(idx, metaB *bolt.Bucket, out *[]content.Record) error {
	cur := idx.Cursor()
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		slug := slugFromPublishedKey(k)
		if slug == "" {
			continue
		}
		v := metaB.Get([]byte(slug))
		if v == nil {
			continue
		}
		rec, err := decodeRecord(v)
		if err != nil {
			continue
		}
		*out = append(*out, rec)
	}
	return nil
}

func decodeRecord(v []byte) (content.Record, error) {
	var sr storedRecord
	if err := json.Unmarshal(v, &sr); err != nil {
		return content.Record{}, err
	}
	rec := sr.Record
	rec.Body = sr.Body
	return rec, nil
}
