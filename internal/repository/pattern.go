package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern matches names starting with s.
func PrefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

// SuffixPattern matches names ending with s.
func SuffixPattern(s string) string {
	return "%" + likeEscaper.Replace(s)
}

// ContainsPattern matches names containing s.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// FixedLengthPattern matches names of exactly n characters.
func FixedLengthPattern(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("_", n)
}
