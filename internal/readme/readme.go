// Package readme splices generated markup into marker-delimited regions of
// a README file.
package readme

import (
	"fmt"
	"os"
	"strings"
)

// Marker pairs delimiting the generated regions in the target document.
const (
	PRStartMarker = "<!--START_SECTION:recent_prs-->"
	PREndMarker   = "<!--END_SECTION:recent_prs-->"

	CommitStartMarker = "<!--START_SECTION:recent_commits-->"
	CommitEndMarker   = "<!--END_SECTION:recent_commits-->"
)

// Splice replaces the content strictly between the start and end markers
// with content, keeping the markers and everything around them. It returns
// the updated document and whether it differs from the input. Both markers
// must be present and in order.
func Splice(doc, start, end, content string) (string, bool, error) {
	si := strings.Index(doc, start)
	ei := strings.Index(doc, end)
	if si < 0 || ei < 0 || ei < si {
		return "", false, fmt.Errorf("markers %s / %s not found or out of order", start, end)
	}
	updated := doc[:si+len(start)] + "\n" + content + "\n" + doc[ei:]
	return updated, updated != doc, nil
}

// UpdateFile splices content into the marker region of the file at path,
// writing the file back only if the document actually changed. It reports
// whether a write happened.
func UpdateFile(path, start, end, content string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	updated, changed, err := Splice(string(data), start, end, content)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
