// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import "strconv"

// sliceHandler implements Python-style string slicing: start and end
// are optional (empty argument means omitted) and may be negative
// (counted from the end); an optional fourth argument is the step.
// Grounded on BuiltinSlice.
func sliceHandler(args []string) (string, error) {
	if err := needArgs("slice", args, 3); err != nil {
		return "", err
	}
	runes := []rune(args[0])
	length := len(runes)

	step := 1
	if len(args) > 3 {
		stepF, err := toNumber(4, args[3])
		if err != nil {
			return "", err
		}
		step = int(stepF)
		if step == 0 {
			return "", userErr("cannot have a step length of 0")
		}
	}

	start, haveStart, err := sliceBound(2, args[1])
	if err != nil {
		return "", err
	}
	end, haveEnd, err := sliceBound(3, args[2])
	if err != nil {
		return "", err
	}

	lo, hi, ok := resolveSliceBounds(start, haveStart, end, haveEnd, step, length)
	if !ok {
		return "", userErr(
			"part of range %q is out of bounds for string of length %d",
			sliceRangeDescription(start, haveStart, end, haveEnd), length,
		)
	}

	selected := runes[lo:hi]
	switch {
	case step == 1:
		return string(selected), nil
	case step == -1:
		return string(reverseRunes(selected)), nil
	case step < 0:
		return string(strideRunes(reverseRunes(selected), -step)), nil
	default:
		return string(strideRunes(selected, step)), nil
	}
}

// sliceBound parses a possibly-empty bound argument. An empty string
// means the bound was omitted (Python's `a[:]`/`a[1:]` convention).
func sliceBound(argIdx int, s string) (value int, have bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	v, convErr := toNumber(argIdx, s)
	if convErr != nil {
		return 0, false, convErr
	}
	return int(v), true, nil
}

// resolveSliceBounds turns (possibly omitted) start/end into a
// validated [lo, hi) byte-index-free rune range.
func resolveSliceBounds(start int, haveStart bool, end int, haveEnd bool, step, length int) (lo, hi int, ok bool) {
	switch {
	case !haveStart && !haveEnd:
		return 0, length, true
	case haveStart && !haveEnd:
		lo = normalizeIndex(start, length)
		if lo < 0 || lo > length {
			return 0, 0, false
		}
		return lo, length, true
	case !haveStart && haveEnd:
		hi = normalizeIndex(end, length)
		if hi < 0 || hi > length {
			return 0, 0, false
		}
		return 0, hi, true
	default:
		lo = normalizeIndex(start, length)
		hi = normalizeIndex(end, length)
		if lo < 0 || lo > length || hi < 0 || hi > length || hi < lo {
			return 0, 0, false
		}
		return lo, hi, true
	}
}

// normalizeIndex turns a possibly-negative Python-style index into an
// absolute rune offset, without clamping — callers validate bounds.
func normalizeIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

func sliceRangeDescription(start int, haveStart bool, end int, haveEnd bool) string {
	s, e := "", ""
	if haveStart {
		s = strconv.Itoa(start)
	}
	if haveEnd {
		e = strconv.Itoa(end)
	}
	return s + ".." + e
}

func reverseRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return out
}

func strideRunes(r []rune, step int) []rune {
	var out []rune
	for i := 0; i < len(r); i += step {
		out = append(out, r[i])
	}
	return out
}
