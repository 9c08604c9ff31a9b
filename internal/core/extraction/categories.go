package extraction

import "strings"

// Typed store table names. Every routed fragment lands in exactly one.
const (
	TableKnowledge = "knowledge"
	TableBugs      = "bugs"
	TableDecisions = "decisions"
	TableLessons   = "lessons"
)

// categoryTables is the fixed category -> destination-table lookup.
// Anything not listed (including an unset category) routes to the general
// knowledge store.
var categoryTables = map[string]string{
	"todo":     TableBugs,
	"bug":      TableBugs,
	"issue":    TableBugs,
	"decision": TableDecisions,
	"lesson":   TableLessons,
}

// TableFor returns the destination table for a category hint.
func TableFor(category string) string {
	if table, ok := categoryTables[strings.ToLower(strings.TrimSpace(category))]; ok {
		return table
	}
	return TableKnowledge
}

// TypedStores lists every destination table, in sweep order.
func TypedStores() []string {
	return []string{TableKnowledge, TableBugs, TableDecisions, TableLessons}
}

// IsTypedStore reports whether table names one of the typed stores.
// Used to validate purge and conflict references before any effect runs.
func IsTypedStore(table string) bool {
	switch table {
	case TableKnowledge, TableBugs, TableDecisions, TableLessons:
		return true
	}
	return false
}
