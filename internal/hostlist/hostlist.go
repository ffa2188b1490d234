// Package hostlist expands Slurm host list expressions.
//
//   list    ::= pattern ("," pattern)*
//   pattern ::= (literal | range)+
//   range   ::= "[" elt ("," elt)* "]"
//   elt     ::= number | number "-" number
//
// Numbers keep the width of the lower bound, so "n[08-10]" expands to n08,
// n09, n10.
package hostlist

import (
	"fmt"
	"strconv"
	"strings"
)

// Split breaks a list into patterns at commas outside brackets.
func Split(s string) ([]string, error) {
	var out []string
	if s == "" {
		return out, nil
	}
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			if depth > 0 {
				return nil, fmt.Errorf("nested '[' in %q", s)
			}
			depth++
		case ']':
			if depth == 0 {
				return nil, fmt.Errorf("unmatched ']' in %q", s)
			}
			depth--
		case ',':
			if depth == 0 {
				if i == start {
					return nil, fmt.Errorf("empty host pattern in %q", s)
				}
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("missing ']' in %q", s)
	}
	if start == len(s) {
		return nil, fmt.Errorf("empty host pattern in %q", s)
	}
	return append(out, s[start:]), nil
}

// Expand returns every host name of a list, in order.
func Expand(s string) ([]string, error) {
	patterns, err := Split(s)
	if err != nil {
		return nil, err
	}
	var hosts []string
	for _, p := range patterns {
		xs, err := expandPattern(p)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, xs...)
	}
	return hosts, nil
}

func expandPattern(p string) ([]string, error) {
	open := strings.IndexByte(p, '[')
	if open < 0 {
		return []string{p}, nil
	}
	end := strings.IndexByte(p[open:], ']')
	if end < 0 {
		return nil, fmt.Errorf("missing ']' in %q", p)
	}
	end += open
	prefix, body, suffix := p[:open], p[open+1:end], p[end+1:]

	nums, err := expandRange(body)
	if err != nil {
		return nil, fmt.Errorf("bad range in %q: %w", p, err)
	}
	tails, err := expandPattern(suffix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nums)*len(tails))
	for _, n := range nums {
		for _, t := range tails {
			out = append(out, prefix+n+t)
		}
	}
	return out, nil
}

func expandRange(body string) ([]string, error) {
	var out []string
	for _, elt := range strings.Split(body, ",") {
		lo, hi, found := strings.Cut(elt, "-")
		if !found {
			hi = lo
		}
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, err
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return nil, err
		}
		if a > b {
			return nil, fmt.Errorf("range %d-%d is descending", a, b)
		}
		for i := a; i <= b; i++ {
			out = append(out, fmt.Sprintf("%0*d", len(lo), i))
		}
	}
	return out, nil
}

// CountIDs counts the members of an id list such as "0-3,8,10-11".
func CountIDs(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n := 0
	for _, elt := range strings.Split(s, ",") {
		lo, hi, found := strings.Cut(elt, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return 0, err
		}
		if !found {
			n++
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return 0, err
		}
		if a > b {
			return 0, fmt.Errorf("range %d-%d is descending", a, b)
		}
		n += b - a + 1
	}
	return n, nil
}
