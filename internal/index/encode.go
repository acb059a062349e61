package index

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Ordered index keys: invTime(8) + 0x00 + slug. Inverting the timestamp
// makes a forward cursor walk newest-first; the slug suffix makes equal
// timestamps sort by slug ascending, so iteration order is deterministic
// regardless of directory listing order.
func makePublishedKey(publishedAt time.Time, slug string) []byte {
	buf := make([]byte, 0, 8+1+len(slug))

	tmp := make([]byte, 8)
	binary.BigEndian.PutUint64(tmp, ^uint64(publishedAt.UnixNano()))
	buf = append(buf, tmp...)

	buf = append(buf, 0x00)
	buf = append(buf, []byte(slug)...)
	return buf
}

func slugFromPublishedKey(k []byte) string {
	if len(k) < 8+2 {
		return ""
	}
	i := bytes.IndexByte(k[8:], 0x00)
	if i < 0 || 8+i+1 >= len(k) {
		return ""
	}
	return string(k[8+i+1:])
}
