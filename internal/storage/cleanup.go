package storage

import (
	"sort"
	"strings"
)

// CleanupResult reports what an orphan sweep found (and, unless it was
// a dry run, removed).
type CleanupResult struct {
	DryRun  bool     `json:"dry_run"`
	Orphans []string `json:"orphans"` // inspection ids with photos but no record
	Files   int      `json:"files"`
	Bytes   int64    `json:"bytes"`
	Human   string   `json:"human"`
}

// CleanupOrphans scans photos under inspections/ and drops directories
// whose inspection id is no longer in validIDs. With dryRun it only
// reports.
func CleanupOrphans(bs BlobStore, validIDs []string, dryRun bool) (CleanupResult, error) {
	valid := make(map[string]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}

	objs, err := bs.List("inspections/")
	if err != nil {
		return CleanupResult{}, err
	}

	res := CleanupResult{DryRun: dryRun}
	orphanSet := map[string]bool{}
	for _, o := range objs {
		rest := strings.TrimPrefix(o.Key, "inspections/")
		id, _, ok := strings.Cut(rest, "/")
		if !ok || valid[id] {
			continue
		}
		orphanSet[id] = true
		res.Files++
		res.Bytes += o.Size
		if !dryRun {
			if err := bs.Delete(o.Key); err != nil {
				return CleanupResult{}, err
			}
		}
	}

	for id := range orphanSet {
		res.Orphans = append(res.Orphans, id)
	}
	sort.Strings(res.Orphans)
	res.Human = HumanSize(res.Bytes)
	return res, nil
}
