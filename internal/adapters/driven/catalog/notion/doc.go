// Package notion provides a catalog store backed by a Notion database.
//
// Each catalog record is one page in the database. Page properties map
// one-to-one onto catalog properties: titles, rich text, numbers, URLs,
// selects, multi-selects and dates. Each request is attempted once; a
// rate-limited write surfaces as a failed write.
package notion
