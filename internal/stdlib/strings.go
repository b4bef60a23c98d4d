// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import (
	"regexp"
	"strconv"
	"strings"
)

// lenHandler counts the runes of its first argument. Grounded on
// BuiltinLength.
func lenHandler(args []string) (string, error) {
	if err := needArgs("len", args, 1); err != nil {
		return "", err
	}
	return strconv.Itoa(len([]rune(args[0]))), nil
}

// splitHandler splits haystack on delimiter and returns the segment at
// index. Grounded on BuiltinSplit.
func splitHandler(args []string) (string, error) {
	if err := needArgs("split", args, 3); err != nil {
		return "", err
	}
	idxF, err := toNumber(3, args[2])
	if err != nil {
		return "", err
	}
	idx := int(idxF)
	parts := strings.Split(args[0], args[1])
	if idx < 0 || idx >= len(parts) {
		return "", userErr("index %d is out of bounds", idx)
	}
	return parts[idx], nil
}

// selectHandler indexes into its trailing arguments by the first.
// Index "#" returns the count of trailing arguments. Grounded on
// BuiltinSelect.
func selectHandler(args []string) (string, error) {
	if err := needArgs("select", args, 1); err != nil {
		return "", err
	}
	rest := args[1:]
	if args[0] == "#" {
		return strconv.Itoa(len(rest)), nil
	}
	idxF, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	idx := int(idxF)
	if idx < 0 || idx >= len(rest) {
		return "", userErr("index %d is out of bounds", idx)
	}
	return rest[idx], nil
}

// replaceHandler compiles pattern as a regex and replaces every match
// in haystack. The Rust original unescapes pattern and replacement a
// second time here because its engine hands handlers raw arguments;
// spec.md's engine unescapes every argument exactly once before a
// handler ever sees it, so that second pass is not repeated. Grounded
// on BuiltinReplace.
func replaceHandler(args []string) (string, error) {
	if err := needArgs("replace", args, 3); err != nil {
		return "", err
	}
	haystack, pattern, replacement := args[0], args[1], args[2]
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", userErr("failed to parse regex: %s", err.Error())
	}
	return re.ReplaceAllString(haystack, goReplacement(replacement)), nil
}

// goReplacement rewrites a $N-style replacement template (the spec's
// convention, shared with Perl/Rust's regex crate) into Go regexp's
// ${N} form, so a reference ends at its last digit: "$1a" means group 1
// followed by "a", not a group named "1a".
func goReplacement(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '$' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			b.WriteString("${")
			b.WriteString(s[i+1 : j])
			b.WriteString("}")
			i = j - 1
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func upper(args []string) (string, error) {
	if err := needArgs("upper", args, 1); err != nil {
		return "", err
	}
	return strings.ToUpper(args[0]), nil
}

func lower(args []string) (string, error) {
	if err := needArgs("lower", args, 1); err != nil {
		return "", err
	}
	return strings.ToLower(args[0]), nil
}

func trim(args []string) (string, error) {
	if err := needArgs("trim", args, 1); err != nil {
		return "", err
	}
	return strings.TrimSpace(args[0]), nil
}

func reverse(args []string) (string, error) {
	if err := needArgs("reverse", args, 1); err != nil {
		return "", err
	}
	r := []rune(args[0])
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r), nil
}

func concat(args []string) (string, error) {
	return strings.Join(args, ""), nil
}

// repeat concatenates N copies of its (already engine-unescaped) first
// argument with no separator, matching spec.md §8 scenario 10's
// description of the "repeat" helper. Not present in the retrieved
// stdlib.rs snapshot; reconstructed from that scenario's description.
// Each copy is identical text, so when the engine rescans the buffer it
// evaluates the same embedded invocations N times in sequence.
func repeat(args []string) (string, error) {
	if err := needArgs("repeat", args, 2); err != nil {
		return "", err
	}
	nF, err := toNumber(2, args[1])
	if err != nil {
		return "", err
	}
	n := int(nF)
	if n < 0 {
		return "", userErr("repeat count %d must not be negative", n)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(args[0])
	}
	return b.String(), nil
}

func contains(args []string) (string, error) {
	if err := needArgs("contains", args, 2); err != nil {
		return "", err
	}
	return strconv.FormatBool(strings.Contains(args[0], args[1])), nil
}

func startsWith(args []string) (string, error) {
	if err := needArgs("starts_with", args, 2); err != nil {
		return "", err
	}
	return strconv.FormatBool(strings.HasPrefix(args[0], args[1])), nil
}

func endsWith(args []string) (string, error) {
	if err := needArgs("ends_with", args, 2); err != nil {
		return "", err
	}
	return strconv.FormatBool(strings.HasSuffix(args[0], args[1])), nil
}

func pad(name string, left bool) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 2); err != nil {
			return "", err
		}
		widthF, err := toNumber(2, args[1])
		if err != nil {
			return "", err
		}
		width := int(widthF)
		r := []rune(args[0])
		if len(r) >= width {
			return args[0], nil
		}
		pad := strings.Repeat(" ", width-len(r))
		if left {
			return pad + args[0], nil
		}
		return args[0] + pad, nil
	}
}

// chrHandler converts a character to its Unicode codepoint. Note the
// name: in the Rust original "chr" goes char->number and "ord" goes
// number->char, the reverse of the common Python/C naming convention —
// preserved exactly here. Grounded on BuiltinChr.
func chrHandler(args []string) (string, error) {
	if err := needArgs("chr", args, 1); err != nil {
		return "", err
	}
	r := []rune(args[0])
	if len(r) == 0 {
		return "", userErr("no input")
	}
	return strconv.Itoa(int(r[0])), nil
}

// ordHandler converts a Unicode codepoint to a character. See
// chrHandler's note on the reversed naming. Grounded on BuiltinOrd.
func ordHandler(args []string) (string, error) {
	if err := needArgs("ord", args, 1); err != nil {
		return "", err
	}
	v, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	cp := int64(v)
	if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return "", userErr("invalid codepoint")
	}
	return string(rune(cp)), nil
}
