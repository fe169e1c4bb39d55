package utils

import "strings"

// SplitFields splits every value on whitespace and flattens the result, dropping
// empty fields. It turns both `scope=a b` and `scope=a&scope=b` into [a b].
func SplitFields(values []string) []string {
	fields := make([]string, 0, len(values))
	for _, v := range values {
		fields = append(fields, strings.Fields(v)...)
	}
	return fields
}

// Contains reports whether s is in list.
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
