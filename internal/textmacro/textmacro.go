// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package textmacro implements the text-macro handler kind: a handler
// configured with a pattern string that substitutes $-tokens with
// positional arguments.
//
// Grounded on _examples/original_source/src/textmacro.rs (TextMacro::apply).
package textmacro

import (
	"strconv"
	"strings"
)

// sentinel stands in for an escaped dollar sign ("\$") while the
// pattern is being rescanned, per spec.md §4.3. It is restored to a
// literal "$" once the fixpoint is reached. Any pre-existing occurrence
// of this code point in the pattern is also mapped to "$" — an
// accepted, documented pitfall (spec.md §4.3's closing note).
const sentinel = '￿'

// Macro is a handler whose apply is template substitution of $-tokens
// into Pattern.
type Macro struct {
	Pattern string
}

// New builds a text-macro handler for pattern.
func New(pattern string) Macro {
	return Macro{Pattern: pattern}
}

// Apply performs the substitution described in spec.md §4.3: "$#" is the
// argument count, "$0" is every argument joined by "/", "$N" (N >= 1) is
// the Nth argument if it exists (left intact otherwise), and "\$" is a
// literal "$". Substitution re-scans until no new sites appear, so a
// substituted argument containing "$N" is itself expanded.
func (m Macro) Apply(args []string) (string, error) {
	buf := []rune(strings.ReplaceAll(m.Pattern, `\$`, string(sentinel)))
	joined := strings.Join(args, "/")

	for {
		sites := collectSites(buf, args, joined)
		if len(sites) == 0 {
			break
		}
		for _, s := range sites {
			buf = append(buf[:s.start:s.start], append([]rune(s.replace), buf[s.end:]...)...)
		}
	}

	return strings.ReplaceAll(string(buf), string(sentinel), "$"), nil
}

// site is one substitution location: [start, end) in buf and the text
// to splice in its place.
type site struct {
	start, end int
	replace    string
}

// collectSites scans buf right to left collecting $#, $0, and $N sites,
// per spec.md §4.3 step 1. Scanning right to left and returning sites in
// that order means applying one site never invalidates an earlier
// (smaller-index) site's indices, since every splice only touches
// positions at or after its own start.
func collectSites(buf []rune, args []string, joined string) []site {
	var sites []site
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] != '$' || i+1 >= len(buf) {
			continue
		}
		switch {
		case buf[i+1] == '#':
			sites = append(sites, site{start: i, end: i + 2, replace: strconv.Itoa(len(args))})
		case buf[i+1] == '0':
			sites = append(sites, site{start: i, end: i + 2, replace: joined})
		default:
			j := i + 1
			for j < len(buf) && buf[j] >= '0' && buf[j] <= '9' {
				j++
			}
			if j == i+1 {
				continue // no digits after '$'
			}
			n, err := strconv.Atoi(string(buf[i+1 : j]))
			if err != nil || n < 1 || n > len(args) {
				continue // out of range: token is left intact
			}
			sites = append(sites, site{start: i, end: j, replace: args[n-1]})
		}
	}
	return sites
}
