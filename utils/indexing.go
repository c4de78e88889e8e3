package utils

import "sort"

// UniqueInts sorts s in place and compacts out repeated values
func UniqueInts(s []int) []int {
	if len(s) == 0 {
		return s
	}
	sort.Ints(s)
	j := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[j-1] {
			s[j] = s[i]
			j++
		}
	}
	return s[:j]
}
