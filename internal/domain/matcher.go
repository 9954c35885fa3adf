package domain

import "strings"

// Matches reports whether label matches query, case-insensitively.
//
// A label matches when it equals the query, starts with it, contains it,
// or passes the lockstep prefix walk (see lockstepPrefix).
func Matches(label, query string) bool {
	l := strings.ToLower(label)
	q := strings.ToLower(query)

	if l == q {
		return true
	}
	if strings.HasPrefix(l, q) {
		return true
	}
	if strings.Contains(l, q) {
		return true
	}
	return lockstepPrefix(l, q)
}

// lockstepPrefix walks label and query together from position 0 and stops
// at the first mismatching character. It never skips label characters, so
// "oog" does not match "google" even though it is a subsequence.
func lockstepPrefix(label, query string) bool {
	l := []rune(label)
	q := []rune(query)

	j := 0
	for i := 0; i < len(l) && j < len(q); i++ {
		if l[i] != q[j] {
			break
		}
		j++
	}
	return j == len(q)
}
