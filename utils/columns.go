package utils

import "reflect"

// ColumnList returns the list of "db" struct tags of T, used to build SELECT
// clauses that stay in sync with the dbmodel row struct.
func ColumnList[T any](prefixes ...string) []string {
	var value T
	structType := reflect.TypeOf(value)

	columns := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		tag, ok := structType.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		column := tag
		for _, prefix := range prefixes {
			column = prefix + "." + tag
		}
		columns = append(columns, column)
	}
	return columns
}
