// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package query normalizes raw URL query parameters into typed values.

Multi-valued parameters may arrive either as a repeated key
(?genre=a&genre=b) or as a single comma-separated value (?genre=a,b);
both forms collapse into the same string slice. Numeric parameters arrive
as strings and malformed input is treated as absent, never as an error —
the filter layer downstream must only ever see well-typed input.
*/
package query

import (
	"strconv"
	"strings"
)

// Strings normalizes a repeated query parameter into a flat slice.
//
// Each raw value may itself be comma-separated. Entries are trimmed and
// empties dropped, so a lone "?genre=" contributes nothing.
func Strings(vals []string) []string {
	var res []string
	for _, raw := range vals {
		for _, v := range strings.Split(raw, ",") {
			clean := strings.TrimSpace(v)
			if clean != "" {
				res = append(res, clean)
			}
		}
	}
	return res
}

// Ints parses a slice of string values into integers.
// Invalid entries are ignored safely.
func Ints(vals []string) []int {
	var res []int
	for _, v := range Strings(vals) {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// FloatPtr parses an optional float parameter.
// Empty or malformed input yields nil, meaning "filter not supplied".
func FloatPtr(val string) *float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// IntPtr parses an optional integer parameter.
// Empty or malformed input yields nil, meaning "filter not supplied".
func IntPtr(val string) *int {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &i
}
