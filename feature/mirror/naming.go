package mirror

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// ConflictName derives the destination name for a conflicting variant.
//
// A zero-padded ordinal token is inserted immediately before the extension:
//
//	photo.jpg -> photo.read-conflict-00.jpg
//	photo.jpg -> photo.write-conflict-00.jpg
//
// The token width is fixed per group (minimum two digits, growing when a
// group has 100 or more variants), so listing the results alphabetically
// yields exactly the variant order, adjacent to the base name. The original
// extension is preserved so downstream tools still recognize the file type.
func ConflictName(rel string, kind ConflictKind, ordinal, total int) string {
	ext := path.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)

	width := len(strconv.Itoa(total - 1))
	if width < 2 {
		width = 2
	}

	return fmt.Sprintf("%s.%s-conflict-%0*d%s", stem, kind, width, ordinal, ext)
}
