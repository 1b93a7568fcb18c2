// Package repository implements the key-value stores that hold encoded secret records.
// Stores are available in memory and on PostgreSQL, MySQL and SQLite. Every store
// reports a missing key with apperrors.ErrNotFound.
package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix returns a LIKE pattern matching every string that starts with prefix.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
