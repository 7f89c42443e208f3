package mirror

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGroups(t *testing.T) {
	indexes := []*rootIndex{
		{
			root:  "/r1",
			files: map[string]int64{"a.txt": 1, "only1.txt": 5},
			dirs:  map[string]struct{}{"sub": {}},
		},
		{
			root:  "/r2",
			files: map[string]int64{"a.txt": 2, "sub/c.txt": 3},
			dirs:  map[string]struct{}{"sub": {}},
		},
	}

	groups, rels, err := buildGroups(indexes)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "only1.txt", "sub/c.txt"}, rels)

	a := groups["a.txt"]
	require.Len(t, a.Variants, 2)
	assert.Equal(t, "/r1", a.Variants[0].Root)
	assert.Equal(t, "/r2", a.Variants[1].Root)
	assert.Len(t, groups["only1.txt"].Variants, 1)
}

func TestBuildGroups_FileDirectoryCollision(t *testing.T) {
	indexes := []*rootIndex{
		{
			root:  "/r1",
			files: map[string]int64{"data": 1},
			dirs:  map[string]struct{}{},
		},
		{
			root:  "/r2",
			files: map[string]int64{"data/x.txt": 2},
			dirs:  map[string]struct{}{"data": {}},
		},
	}

	_, _, err := buildGroups(indexes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"data"`)
}

func TestResolveGroup_SingleVariant(t *testing.T) {
	rec := NewRecorder()
	g := &Group{
		RelPath:  "a.txt",
		Variants: []Variant{{Root: "/r1", RelPath: "a.txt", Size: 7}},
	}

	items := resolveGroup(g, rec)

	require.Len(t, items, 1)
	assert.Equal(t, "a.txt", items[0].RelPath)
	assert.Equal(t, filepath.Join("/r1", "a.txt"), items[0].SrcPath)
	assert.False(t, items[0].ConflictVariant)
	assert.Equal(t, StatusOK, rec.Status())
}

func TestResolveGroup_AgreementFirstRootWins(t *testing.T) {
	r1, r2 := t.TempDir(), t.TempDir()
	p1 := writeTestFile(t, r1, "a.txt", "same content")
	writeTestFile(t, r2, "a.txt", "same content")

	rec := NewRecorder()
	g := &Group{
		RelPath: "a.txt",
		Variants: []Variant{
			{Root: r1, RelPath: "a.txt", Size: 12},
			{Root: r2, RelPath: "a.txt", Size: 12},
		},
	}

	items := resolveGroup(g, rec)

	require.Len(t, items, 1)
	assert.Equal(t, p1, items[0].SrcPath)
	assert.Equal(t, "a.txt", items[0].RelPath)
	assert.Equal(t, StatusOK, rec.Status())
	assert.Empty(t, rec.Conflicts())
}

func TestResolveGroup_DifferentSizesConflictWithoutHashing(t *testing.T) {
	rec := NewRecorder()
	// Paths deliberately do not exist: unique sizes must never be hashed.
	g := &Group{
		RelPath: "a.txt",
		Variants: []Variant{
			{Root: "/gone1", RelPath: "a.txt", Size: 3},
			{Root: "/gone2", RelPath: "a.txt", Size: 9},
		},
	}

	items := resolveGroup(g, rec)

	require.Len(t, items, 2)
	assert.Equal(t, "a.read-conflict-00.txt", items[0].RelPath)
	assert.Equal(t, "a.read-conflict-01.txt", items[1].RelPath)
	assert.True(t, items[0].ConflictVariant)
	assert.Equal(t, StatusWarn, rec.Status())
}

func TestResolveGroup_DeduplicatesEqualContent(t *testing.T) {
	r1, r2, r3 := t.TempDir(), t.TempDir(), t.TempDir()
	writeTestFile(t, r1, "a.txt", "alpha")
	writeTestFile(t, r2, "a.txt", "bravo")
	writeTestFile(t, r3, "a.txt", "alpha")

	rec := NewRecorder()
	g := &Group{
		RelPath: "a.txt",
		Variants: []Variant{
			{Root: r1, RelPath: "a.txt", Size: 5},
			{Root: r2, RelPath: "a.txt", Size: 5},
			{Root: r3, RelPath: "a.txt", Size: 5},
		},
	}

	items := resolveGroup(g, rec)

	// Two distinct contents, the r3 duplicate folded into r1's class.
	require.Len(t, items, 2)
	assert.Equal(t, filepath.Join(r1, "a.txt"), items[0].SrcPath)
	assert.Equal(t, filepath.Join(r2, "a.txt"), items[1].SrcPath)

	conflicts := rec.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictRead, conflicts[0].Kind)
	assert.Len(t, conflicts[0].Participants, 2)
}

func TestResolveGroup_HashFailureIsFatal(t *testing.T) {
	rec := NewRecorder()
	g := &Group{
		RelPath: "a.txt",
		Variants: []Variant{
			{Root: "/gone1", RelPath: "a.txt", Size: 5},
			{Root: "/gone2", RelPath: "a.txt", Size: 5},
		},
	}

	items := resolveGroup(g, rec)

	assert.Nil(t, items)
	assert.Equal(t, StatusFail, rec.Status())
	require.Len(t, rec.Errors(), 1)
	assert.Contains(t, rec.Errors()[0], "a.txt")
}
