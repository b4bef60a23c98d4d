// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import (
	"math"
	"strconv"
	"strings"
)

// truthy is the boolean convention shared by if/not/and/or/xor/assert:
// the literal strings "true"/"True", or any numeric string that parses
// to a non-zero, non-NaN float. Grounded on stdlib.rs's truthy().
func truthy(s string) bool {
	if s == "true" || s == "True" {
		return true
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v != 0 && !math.IsNaN(v)
}

// equal is string equality. Grounded on BuiltinEqual.
func equal(args []string) (string, error) {
	if err := needArgs("equal", args, 2); err != nil {
		return "", err
	}
	return strconv.FormatBool(args[0] == args[1]), nil
}

// numEqual is numeric equality (NaN is never equal to NaN, matching
// IEEE-754 and BuiltinNumEqual's doc example). Grounded on BuiltinNumEqual.
func numEqual(args []string) (string, error) {
	if err := needArgs("#equal", args, 2); err != nil {
		return "", err
	}
	a, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	b, err := toNumber(2, args[1])
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(a == b), nil
}

// numCompare adapts a numeric ordering test into a Handler. Shared by
// greater/less.
func numCompare(name string, op func(a, b float64) bool) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 2); err != nil {
			return "", err
		}
		a, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		b, err := toNumber(2, args[1])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(op(a, b)), nil
	}
}

var (
	greater = numCompare("greater", func(a, b float64) bool { return a > b })
	less    = numCompare("less", func(a, b float64) bool { return a < b })
)

// not negates every argument's truthiness, joining with "/". Grounded
// on BuiltinNot.
func not(args []string) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.FormatBool(!truthy(a))
	}
	return strings.Join(parts, "/"), nil
}

// boolReduce adapts a boolean reduction into a Handler, sharing
// and/or/xor's "false with no arguments" default. Grounded on
// BuiltinAnd/BuiltinOr/BuiltinXor.
func boolReduce(op func(a, b bool) bool) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if len(args) == 0 {
			return "false", nil
		}
		result := truthy(args[0])
		for _, a := range args[1:] {
			result = op(result, truthy(a))
		}
		return strconv.FormatBool(result), nil
	}
}

var (
	and = boolReduce(func(a, b bool) bool { return a && b })
	or  = boolReduce(func(a, b bool) bool { return a || b })
	xor = boolReduce(func(a, b bool) bool { return a != b })
)
