package repository

import (
	"fmt"
	"sort"
	"strings"
)

// buildUpdate renders an UPDATE for the allow-listed columns in fields.
// Columns are emitted in sorted order so equal inputs give equal SQL.
func buildUpdate(table, keyColumn string, key any, allowed map[string]bool, fields map[string]any) (string, []any, error) {
	columns := make([]string, 0, len(fields))
	for k := range fields {
		if !allowed[k] {
			return "", nil, fmt.Errorf("field %q cannot be updated", k)
		}
		columns = append(columns, k)
	}
	if len(columns) == 0 {
		return "", nil, nil
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+1)
	for _, c := range columns {
		setClauses = append(setClauses, c+" = ?")
		args = append(args, fields[c])
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(setClauses, ", "), keyColumn)
	return query, args, nil
}
