package compare

import (
	"strings"

	"csvalign/domain/table"
)

// promptTemplate is a product decision, not an implementation detail: the
// model's alignment behavior is sensitive to this phrasing, so the wording and
// line structure are kept as-is.
const promptTemplate = `I want to compare these two spreadsheets side-by-side.
  First collapse each spreadsheet into one column.
  Make an index from the row and cell data from First spreadsheet.
  Use the index to match rows and cells in Second spreadsheet.
  If there is no matching pair, use an empty cell.
  Double-check each row carefully.
  Show the result as a well-formed CSV with exactly two columns.
  Do not provide any commentary.

  First spreadsheet:
  {csv1}

  Second spreadsheet:
  {csv2}`

// BuildPrompt serializes both tables and embeds them in the fixed alignment
// instruction sent to the completion service.
func BuildPrompt(first, second table.Table) string {
	prompt := strings.Replace(promptTemplate, "{csv1}", table.Serialize(first), 1)
	return strings.Replace(prompt, "{csv2}", table.Serialize(second), 1)
}
