package mirror

import (
	"fmt"
	"sort"
)

// buildGroups merges the per-root indices into one group per relative path,
// with variants in configured root order. The union of keys is sorted so the
// whole run processes paths in a reproducible order.
//
// A path that is a file in one root and a directory in another cannot be
// reconciled and is a fatal error.
func buildGroups(indexes []*rootIndex) (map[string]*Group, []string, error) {
	groups := make(map[string]*Group)

	for _, idx := range indexes {
		for rel, size := range idx.files {
			for _, other := range indexes {
				if _, ok := other.dirs[rel]; ok {
					return nil, nil, fmt.Errorf(
						"path is a file in %q but a directory in %q: %q",
						idx.root, other.root, rel)
				}
			}

			g, ok := groups[rel]
			if !ok {
				g = &Group{RelPath: rel}
				groups[rel] = g
			}
			g.Variants = append(g.Variants, Variant{
				Root:    idx.root,
				RelPath: rel,
				Size:    size,
			})
		}
	}

	rels := make([]string, 0, len(groups))
	for rel := range groups {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	return groups, rels, nil
}

// resolveGroup decides whether a group agrees on one canonical content or
// diverges into a read merge conflict, and returns the output items to write.
//
// A path present in exactly one root resolves trivially and is never hashed.
// For multi-root paths, sizes are compared first: a variant whose size is
// unique in the group is already known to be distinct, so only variants that
// share a size with another are hashed. If every variant turns out equal,
// the variant from the first configured root becomes the canonical copy.
// Otherwise every distinct content becomes its own conflict-named item, in
// stable root order, and a read conflict is recorded.
//
// A hash failure here means the group cannot be safely resolved; it is
// dropped from the run and escalates to Fail.
func resolveGroup(g *Group, rec *Recorder) []OutputItem {
	if len(g.Variants) == 1 {
		v := g.Variants[0]
		return []OutputItem{{RelPath: g.RelPath, SrcPath: v.AbsPath(), Size: v.Size}}
	}

	sizeCount := make(map[int64]int)
	for _, v := range g.Variants {
		sizeCount[v.Size]++
	}

	// Partition variants into distinct-content representatives,
	// preserving configured root order.
	var distinct []Variant
	seen := make(map[string]struct{})
	for i := range g.Variants {
		v := g.Variants[i]

		if sizeCount[v.Size] > 1 {
			digest, err := hashFile(v.AbsPath())
			if err != nil {
				rec.Fail(fmt.Errorf("cannot resolve %q: %w", g.RelPath, err))
				return nil
			}
			v.Digest = digest
		}

		key := fmt.Sprintf("%d:%s", v.Size, v.Digest)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, v)
	}

	if len(distinct) == 1 {
		// All variants agree; first configured root wins the tie-break.
		v := distinct[0]
		return []OutputItem{{RelPath: g.RelPath, SrcPath: v.AbsPath(), Size: v.Size}}
	}

	participants := make([]string, 0, len(distinct))
	for _, v := range distinct {
		participants = append(participants, v.AbsPath())
	}
	rec.Conflict(ConflictRecord{
		Kind:         ConflictRead,
		RelPath:      g.RelPath,
		Participants: participants,
	})

	items := make([]OutputItem, 0, len(distinct))
	for i, v := range distinct {
		items = append(items, OutputItem{
			RelPath:         ConflictName(g.RelPath, ConflictRead, i, len(distinct)),
			SrcPath:         v.AbsPath(),
			Size:            v.Size,
			ConflictVariant: true,
		})
	}

	return items
}
