package serve

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"atelier/internal/domain/content"
	"atelier/internal/index"
	"atelier/internal/query"
	"atelier/internal/render"
)

// itemView is a record plus the per-request presentation fields: the
// localized reading-time string and category label.
type itemView struct {
	content.Record
	Category    string `json:"category,omitempty"`
	ReadingTime string `json:"readingTime"`
}

func (s *Server) view(tag language.Tag, r content.Record) itemView {
	return itemView{
		Record:      r,
		Category:    categoryLabel(tag, r.CategoryLabel()),
		ReadingTime: readingLabel(tag, r.ReadMin),
	}
}

func (s *Server) views(tag language.Tag, records []content.Record) []itemView {
	out := make([]itemView, 0, len(records))
	for _, r := range records {
		out = append(out, s.view(tag, r))
	}
	return out
}

func (s *Server) lang(r *http.Request) language.Tag {
	return matchLanguage(r.Header.Get("Accept-Language"), s.cfg.Server.Language)
}

func (s *Server) collection(w http.ResponseWriter, r *http.Request) (content.Collection, bool) {
	col := content.Collection(chi.URLParam(r, "collection"))
	if !col.Valid() {
		s.writeError(w, http.StatusNotFound, "unknown collection")
		return "", false
	}
	return col, true
}

type listResponse struct {
	Items       []itemView `json:"items"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	HasNextPage bool       `json:"hasNextPage"`
	HasPrevPage bool       `json:"hasPrevPage"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collection(w, r)
	if !ok {
		return
	}
	records, err := s.idx.ListAll(col)
	if err != nil {
		s.internalError(w, "list", err)
		return
	}

	q := r.URL.Query()
	filtered := query.Filter(records, query.Options{
		Category:     q.Get("category"),
		Tag:          q.Get("tag"),
		FavoriteOnly: boolParam(q.Get("favorite")),
		PriceType:    priceParam(q.Get("price")),
		Search:       q.Get("q"),
	})

	page := intParam(q.Get("page"), 1)
	limit := intParam(q.Get("limit"), s.cfg.Query.PageSize)
	if limit <= 0 {
		limit = s.cfg.Query.PageSize
	}
	if limit > s.cfg.Query.MaxPageSize {
		limit = s.cfg.Query.MaxPageSize
	}
	var exclude []string
	if raw := strings.TrimSpace(q.Get("exclude")); raw != "" {
		exclude = strings.Split(raw, ",")
	}
	pg := query.Paginate(filtered, page, limit, exclude...)

	tag := s.lang(r)
	s.writeJSON(w, http.StatusOK, listResponse{
		Items:       s.views(tag, pg.Items),
		TotalPages:  pg.TotalPages,
		CurrentPage: pg.CurrentPage,
		HasNextPage: pg.HasNextPage,
		HasPrevPage: pg.HasPrevPage,
	})
}

type itemResponse struct {
	Item     itemView         `json:"item"`
	HTML     string           `json:"html"`
	Headings []render.Heading `json:"headings,omitempty"`
	Related  []itemView       `json:"related,omitempty"`
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collection(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	rec, err := s.idx.Get(col, slug)
	if errors.Is(err, index.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no such item")
		return
	}
	if err != nil {
		s.internalError(w, "get", err)
		return
	}

	rendered, err := s.md.Render([]byte(rec.Body))
	if err != nil {
		s.internalError(w, "render", err)
		return
	}

	relatedLimit := intParam(r.URL.Query().Get("related"), s.cfg.Query.RelatedLimit)
	all, err := s.idx.ListAll(col)
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	related := query.Related(all, rec.Slug, rec.Tags, relatedLimit)

	tag := s.lang(r)
	s.writeJSON(w, http.StatusOK, itemResponse{
		Item:     s.view(tag, rec),
		HTML:     string(rendered.HTML),
		Headings: rendered.Headings,
		Related:  s.views(tag, related),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collection(w, r)
	if !ok {
		return
	}
	records, err := s.idx.ListAll(col)
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	tag := s.lang(r)
	counts := query.Categories(records)
	for i := range counts {
		counts[i].Label = categoryLabel(tag, counts[i].Label)
	}
	s.writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collection(w, r)
	if !ok {
		return
	}
	records, err := s.idx.ListAll(col)
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	s.writeJSON(w, http.StatusOK, query.TagCounts(records))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	col := content.Collection(r.URL.Query().Get("collection"))
	if col == "" {
		col = content.CollectionBlog
	}
	if !col.Valid() {
		s.writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	records, err := s.idx.ListAll(col)
	if err != nil {
		s.internalError(w, "list", err)
		return
	}
	hits := query.Search(records, r.URL.Query().Get("q"))
	s.writeJSON(w, http.StatusOK, s.views(s.lang(r), hits))
}

func boolParam(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func priceParam(v string) content.PriceType {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "free":
		return content.PriceFree
	case "paid":
		return content.PricePaid
	}
	return ""
}

func intParam(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "internal error")
}
