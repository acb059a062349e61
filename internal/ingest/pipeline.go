package ingest

import (
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"atelier/internal/domain/content"
)

// Warning reports a per-file problem that did not stop the load. One bad
// file never aborts a collection; it is skipped or patched up and reported.
type Warning struct {
	Path string
	Msg  string
}

type result struct {
	rec   loadedRecord
	warns []Warning
	skip  bool
	err   error
}

// loadedRecord keeps the source path next to the record until the dedupe
// pass is done, so slug-conflict warnings can name the skipped file.
type loadedRecord struct {
	rec  content.Record
	path string
}

// Load reads every content file in dir and returns one normalized record
// per file, sorted by published date descending with slug as the
// tie-break. Records with a duplicate slug keep the first occurrence.
func Load(col content.Collection, dir string) ([]content.Record, []Warning, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				results <- loadFile(col, sf)
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var out []loadedRecord
	var warns []Warning
	for r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
		warns = append(warns, r.warns...)
		if r.skip {
			continue
		}
		out = append(out, r.rec)
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].rec.PublishedAt, out[j].rec.PublishedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].rec.Slug < out[j].rec.Slug
	})

	seen := make(map[string]struct{}, len(out))
	filtered := make([]content.Record, 0, len(out))
	for _, lr := range out {
		if _, ok := seen[lr.rec.Slug]; ok {
			warns = append(warns, Warning{Path: lr.path, Msg: "duplicate slug skipped: " + lr.rec.Slug})
			continue
		}
		seen[lr.rec.Slug] = struct{}{}
		filtered = append(filtered, lr.rec)
	}
	return filtered, warns, nil
}

func loadFile(col content.Collection, sf SourceFile) result {
	st, err := os.Stat(sf.Path)
	if err != nil {
		return result{err: err}
	}
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return result{err: err}
	}

	fm, body, fmErr := parseSource(raw)
	if fmErr != nil {
		return result{
			warns: []Warning{{Path: sf.Path, Msg: "failed to parse front matter: " + fmErr.Error()}},
			skip:  true,
		}
	}

	rec, warns := buildRecord(col, sf.Path, fm, body, st.ModTime().In(time.Local))
	if rec.Slug == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "empty slug"})
		return result{warns: warns, skip: true}
	}
	return result{rec: loadedRecord{rec: rec, path: sf.Path}, warns: warns}
}

func buildRecord(col content.Collection, path string, fm frontMatter, body []byte, modTime time.Time) (content.Record, []Warning) {
	var warns []Warning

	rec := content.Record{
		Collection:  col,
		Slug:        resolveSlug(fm, path),
		Title:       fm.Title,
		Description: fm.Description,
		Tags:        parseTags(fm.Tags),
		Category:    fm.Category,
		Body:        string(body),
		Favorite:    fm.Favorite,
		Price:       priceString(fm.Price),
		Images:      fm.Images,
		Cover:       fm.Cover,
		Grid:        fm.Grid,
		Extra:       stringExtras(fm.Extra),
	}

	// publishedAt with date as the legacy alias. Absent or unparsable
	// falls back to the file's modification time so the sort invariant
	// holds and reloads stay stable; either way the file is kept.
	raw := fm.PublishedAt
	if raw == nil {
		raw = fm.Date
	}
	t, ok := normalizeDate(raw)
	if !ok {
		t = modTime
		if raw != nil {
			warns = append(warns, Warning{Path: path, Msg: "unparsable publishedAt, using file modification time"})
		} else {
			warns = append(warns, Warning{Path: path, Msg: "missing publishedAt, using file modification time"})
		}
	}
	rec.PublishedAt = t

	if rec.Title == "" {
		warns = append(warns, Warning{Path: path, Msg: "title is empty"})
	}
	rec.WordCount, rec.ReadMin = content.MeasureBody(rec.Body)
	rec.Normalize()
	return rec, warns
}
