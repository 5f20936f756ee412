package layers

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// ContentHash returns a short deterministic fingerprint of a layer's
// visually relevant fields. Two structurally identical layers hash equal;
// any change to geometry or style, including a single interior vertex of a
// points array, produces a different hash.
//
// The layer ID is excluded so that duplicating a layer under a new ID does
// not defeat change detection for either copy.
func ContentHash(l *Layer) string {
	cp := *l
	cp.ID = ""
	data, err := json.Marshal(&cp)
	if err != nil {
		// Marshal of a plain struct cannot fail; keep a distinct
		// sentinel anyway so a broken hash never matches a real one.
		return "err:" + err.Error()
	}
	return hashString(data)
}

// hashString digests the full serialized content with FNV-1a and folds the
// input length into the digest. The whole input participates: no prefix
// truncation, so long text runs differing only near the end still diverge,
// and the explicit length component separates inputs that happen to collide
// on content.
func hashString(data []byte) string {
	h := fnv.New64a()
	h.Write(data)
	var lenBytes [8]byte
	n := uint64(len(data))
	for i := range lenBytes {
		lenBytes[i] = byte(n >> (8 * i))
	}
	h.Write(lenBytes[:])
	return fmt.Sprintf("%016x:%d", h.Sum64(), len(data))
}
