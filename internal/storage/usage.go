package storage

import (
	"fmt"
	"sort"
	"strings"
)

// CategoryUsage summarizes disk consumption under one top-level prefix.
type CategoryUsage struct {
	Category string `json:"category"`
	Files    int    `json:"files"`
	Bytes    int64  `json:"bytes"`
	Human    string `json:"human"`
}

// Usage groups all stored objects by their first path segment.
func Usage(bs BlobStore) ([]CategoryUsage, error) {
	objs, err := bs.List("")
	if err != nil {
		return nil, err
	}

	byCat := map[string]*CategoryUsage{}
	for _, o := range objs {
		cat := o.Key
		if i := strings.IndexByte(o.Key, '/'); i >= 0 {
			cat = o.Key[:i]
		}
		u, ok := byCat[cat]
		if !ok {
			u = &CategoryUsage{Category: cat}
			byCat[cat] = u
		}
		u.Files++
		u.Bytes += o.Size
	}

	out := make([]CategoryUsage, 0, len(byCat))
	for _, u := range byCat {
		u.Human = HumanSize(u.Bytes)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// HumanSize renders a byte count the way the admin UI shows it.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
