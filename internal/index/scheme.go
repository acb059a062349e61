package index

// Each collection gets one parent bucket named after it, holding:
//
//	meta           slug -> record JSON
//	idx_published  ordered key (see encode.go) -> 1
//	idx_tag        tag -> sub-bucket of ordered keys
//	idx_cat        category label -> sub-bucket of ordered keys
//
// Slugs only have to be unique within their parent bucket, which is what
// gives blog/market/work their independent namespaces.
var (
	bMeta         = []byte("meta")
	bIdxPublished = []byte("idx_published")
	bIdxTag       = []byte("idx_tag")
	bIdxCat       = []byte("idx_cat")
)
