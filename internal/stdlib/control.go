// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import "github.com/nate-chandler/macroscript/internal/scanner"

// ifHandler chooses between condition/value pairs, with a trailing odd
// argument as the base case. Grounded on BuiltinIf.
func ifHandler(args []string) (string, error) {
	i := 0
	for ; i+1 < len(args); i += 2 {
		if truthy(args[i]) {
			return args[i+1], nil
		}
	}
	if i < len(args) {
		return args[i], nil
	}
	return "", userErr("all conditions exhausted without base case")
}

// errorHandler unconditionally raises a User error. Grounded on
// BuiltinError.
func errorHandler(args []string) (string, error) {
	if len(args) > 0 {
		return "", userErr("%s", args[0])
	}
	return "", userErr("no reason given")
}

// assertHandler raises a User error if its first argument isn't truthy.
// Grounded on BuiltinAssert.
func assertHandler(args []string) (string, error) {
	if err := needArgs("assert", args, 1); err != nil {
		return "", err
	}
	if truthy(args[0]) {
		return "", nil
	}
	if len(args) > 1 {
		return "", userErr("%s", args[1])
	}
	return "", userErr("no reason given")
}

// unescapeHandler unescapes its first argument, letting a script lazily
// defer evaluation of a bracketed sub-expression. Grounded on
// BuiltinUnescape.
func unescapeHandler(args []string) (string, error) {
	if err := needArgs("unescape", args, 1); err != nil {
		return "", err
	}
	return scanner.Unescape(args[0]), nil
}
