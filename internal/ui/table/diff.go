package table

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/imgajeed76/vgrid/internal/ui/styles"
)

// cellDiff computes a character diff between the old and new text of a cell,
// cleaned up so that edits read as whole words
func cellDiff(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// renderDiff renders a diff inline. Without colors, deletions are wrapped in
// [-...-] and insertions in {+...+}.
func renderDiff(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffInsert:
			if styles.NoColor() {
				sb.WriteString("{+" + d.Text + "+}")
			} else {
				sb.WriteString(styles.DiffInsert.Render(d.Text))
			}
		case diffmatchpatch.DiffDelete:
			if styles.NoColor() {
				sb.WriteString("[-" + d.Text + "-]")
			} else {
				sb.WriteString(styles.DiffDelete.Render(d.Text))
			}
		}
	}
	return sb.String()
}

// InlineDiff renders the change of a cell from oldText to newText
func InlineDiff(oldText, newText string) string {
	return renderDiff(cellDiff(oldText, newText))
}
