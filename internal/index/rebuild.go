package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"atelier/internal/domain/content"
)

// Rebuild replaces one collection's bucket wholesale in a single write
// transaction, so readers either see the old snapshot or the new one.
func (s *Store) Rebuild(col content.Collection, records []content.Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket([]byte(col))
		parent, err := tx.CreateBucket([]byte(col))
		if err != nil {
			return err
		}

		metaB, _ := parent.CreateBucket(bMeta)
		pubB, _ := parent.CreateBucket(bIdxPublished)
		tagB, _ := parent.CreateBucket(bIdxTag)
		catB, _ := parent.CreateBucket(bIdxCat)

		for _, rec := range records {
			if strings.TrimSpace(rec.Slug) == "" {
				continue
			}
			data, err := json.Marshal(storedRecord{Record: rec, Body: rec.Body})
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(rec.Slug), data); err != nil {
				return err
			}

			key := makePublishedKey(rec.PublishedAt, rec.Slug)
			if err := pubB.Put(key, []byte{1}); err != nil {
				return err
			}

			for _, tag := range rec.Tags {
				if tag == "" {
					continue
				}
				sb, err := tagB.CreateBucketIfNotExists([]byte(tag))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			// Absent categories are indexed under the sentinel so the
			// category index agrees with the aggregates.
			sb, err := catB.CreateBucketIfNotExists([]byte(rec.CategoryLabel()))
			if err != nil {
				return err
			}
			if err := sb.Put(key, []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
}

// storedRecord re-attaches the body, which Record deliberately keeps out
// of its API JSON form.
type storedRecord struct {
	content.Record
	Body string `json:"body"`
}
