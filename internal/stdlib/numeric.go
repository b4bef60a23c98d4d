// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package stdlib is the helper handler library: the fixed, stateless
// arithmetic/trig/bitwise/string/hash handlers that spec.md treats as
// external collaborators to the core engine.
//
// Grounded on _examples/original_source/src/stdlib.rs, handler by
// handler (see each function's doc comment for its source macro).
package stdlib

import (
	"math"
	"strconv"

	"github.com/nate-chandler/macroscript/internal/handler"
)

// toNumber parses arg as a float64, raising the same "could not convert
// argument N "arg" to number" User error stdlib.rs's convert_to_number!
// macro raises, with idx as the 1-based argument position to report.
func toNumber(idx int, arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, handler.UserError("could not convert argument %d %q to number", idx, arg).Err()
	}
	return v, nil
}

// formatFloat renders a float64 the way the Rust original's f64 Display
// impl does: no scientific notation, no forced trailing ".0", and
// "inf"/"-inf"/"NaN" for the non-finite cases (spec.md §8 scenario 7).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func needArgs(name string, args []string, n int) error {
	if len(args) < n {
		return handler.NotEnoughArgs(n, len(args)).Err()
	}
	return nil
}

// userErr builds a User-kind error. The engine fills in the invoking
// macro's name when it wraps a handler's returned error, so handlers
// never name themselves here.
func userErr(format string, args ...any) error {
	return handler.UserError(format, args...).Err()
}

// add sums zero or more numeric arguments. Grounded on BuiltinAdd.
func add(args []string) (string, error) {
	var sum float64
	for i, a := range args {
		v, err := toNumber(i+1, a)
		if err != nil {
			return "", err
		}
		sum += v
	}
	return formatFloat(sum), nil
}

// multiply takes the product of zero or more numeric arguments.
// Grounded on BuiltinMultiply.
func multiply(args []string) (string, error) {
	product := 1.0
	for i, a := range args {
		v, err := toNumber(i+1, a)
		if err != nil {
			return "", err
		}
		product *= v
	}
	return formatFloat(product), nil
}

// binaryNumeric adapts a two-argument float64 operation into a Handler,
// sharing the arity check and argument-conversion error wording of the
// Rust subtract/divide/mod/pow handlers.
func binaryNumeric(name string, op func(a, b float64) float64) handler.Func {
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
		return formatFloat(op(a, b)), nil
	}
}

// subtract is grounded on BuiltinSub.
var subtract = binaryNumeric("subtract", func(a, b float64) float64 { return a - b })

// divide is grounded on BuiltinDiv; 1/0, -1/0, and 0/0 yield
// "inf"/"-inf"/"NaN" respectively (spec.md §8 scenario 7), which falls
// out of Go's IEEE-754 float division the same way it does in Rust.
var divide = binaryNumeric("divide", func(a, b float64) float64 { return a / b })

// mod takes the Euclidean remainder, grounded on BuiltinModulus's use of
// f64::rem_euclid.
var mod = binaryNumeric("mod", func(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}
	return r
})

// pow is grounded on BuiltinPow.
var pow = binaryNumeric("pow", math.Pow)

// log takes the logarithm of value, with an optional base (default e).
// Grounded on BuiltinLog.
func logHandler(args []string) (string, error) {
	if err := needArgs("log", args, 1); err != nil {
		return "", err
	}
	v, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	base := math.E
	if len(args) > 1 {
		base, err = toNumber(2, args[1])
		if err != nil {
			return "", err
		}
	}
	return formatFloat(math.Log(v) / math.Log(base)), nil
}

// unaryNumeric adapts a one-argument float64 operation into a Handler.
// Not present in the retrieved stdlib.rs snapshot; reconstructed as
// natural siblings of add/subtract/pow to round out the arithmetic
// surface spec.md §2's "≈50 built-in handlers" row implies.
func unaryNumeric(name string, op func(a float64) float64) handler.Func {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 1); err != nil {
			return "", err
		}
		v, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		return formatFloat(op(v)), nil
	}
}

var (
	sqrtHandler  = unaryNumeric("sqrt", math.Sqrt)
	absHandler   = unaryNumeric("abs", math.Abs)
	roundHandler = unaryNumeric("round", math.Round)
	floorHandler = unaryNumeric("floor", math.Floor)
	ceilHandler  = unaryNumeric("ceil", math.Ceil)
	negHandler   = unaryNumeric("neg", func(a float64) float64 { return -a })
)

// min and max reduce over one or more numeric arguments. Reconstructed
// siblings of add/multiply (same reduce-over-arguments shape).
func minMax(name string, pick func(a, b float64) float64) handler.Func {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 1); err != nil {
			return "", err
		}
		best, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		for i, a := range args[1:] {
			v, err := toNumber(i+2, a)
			if err != nil {
				return "", err
			}
			best = pick(best, v)
		}
		return formatFloat(best), nil
	}
}

var (
	minHandler = minMax("min", math.Min)
	maxHandler = minMax("max", math.Max)
)

// isNumber reports whether its first argument parses as a number.
// Grounded on BuiltinIsNumber.
func isNumber(args []string) (string, error) {
	if err := needArgs("is_number", args, 1); err != nil {
		return "", err
	}
	_, err := strconv.ParseFloat(args[0], 64)
	return strconv.FormatBool(err == nil), nil
}
