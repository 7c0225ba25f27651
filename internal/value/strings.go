package value

import (
	"hash/fnv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// StringGetProperty implements property read access on a String Value
// (spec.md §4.3's Proxy contract, specialised for String which is not
// itself a Proxy): "length" is the codepoint count; every other name
// resolves against stringMethods, wrapped as a StringMethod proxy bound
// to the receiver.
func StringGetProperty(receiver Value, name string) (Value, error) {
	if name == "length" {
		return IntFromInt64(int64(len(receiver.s))), nil
	}
	if m, ok := stringMethods[name]; ok {
		return FromProxy(&StringMethod{Name: name, Receiver: receiver, Fn: m}), nil
	}
	return Void, &UnknownPropertyError{Kind: "string", Name: name}
}

// StringGetIndex implements indexed read access on a String Value:
// indexing is by codepoint (spec.md §3), yielding a one-character string.
func StringGetIndex(receiver Value, i Value) (Value, error) {
	if i.Kind() != KindInt {
		return Void, &UnsupportedOperationError{Kind: "string", Operation: "non-int index"}
	}
	idx := int(i.AsInt().Int64())
	if idx < 0 || idx >= len(receiver.s) {
		return Void, &IndexOutOfRangeError{Kind: "string", Index: i}
	}
	return StringFromRunes([]rune{receiver.s[idx]}), nil
}

// displayWidth returns the visual column width of r runes, counting
// East-Asian Wide/Fullwidth runes as 2 columns and everything else as 1
// (SPEC_FULL.md §2: padStart/padEnd use golang.org/x/text/width without
// changing the codepoint-count contract that length/indexing rely on).
func displayWidth(rs []rune) int {
	n := 0
	for _, r := range rs {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func padRunes(pad []rune, need int) []rune {
	if len(pad) == 0 {
		pad = []rune{' '}
	}
	out := make([]rune, 0, need)
	for displayWidth(out) < need {
		out = append(out, pad...)
	}
	// Trim from the tail until the visual width no longer overshoots,
	// matching the truncated-repeat pattern of spec.md §8 scenario 5
	// ("egg[][][" padEnd(8, "[]")).
	for len(out) > 0 && displayWidth(out) > need {
		out = out[:len(out)-1]
	}
	return out
}

func padArg(args []Value, idx int) []rune {
	if len(args) > idx && args[idx].Kind() == KindString {
		return args[idx].AsRunes()
	}
	return nil
}

// stringMethods are the built-in methods of SPEC_FULL.md §3's "String
// method surface", grounded on the teacher's builtins_strings*.go,
// trimmed to egg's String-is-a-codepoint-array model.
var stringMethods = map[string]func(receiver Value, args []Value) (Value, error){
	"hash": func(receiver Value, args []Value) (Value, error) {
		h := fnv.New64a()
		h.Write([]byte(receiver.AsString()))
		return IntFromInt64(int64(h.Sum64())), nil
	},
	"slice": func(receiver Value, args []Value) (Value, error) {
		start, end := sliceBounds(len(receiver.s), args)
		if start >= end {
			return StringFromRunes(nil), nil
		}
		return StringFromRunes(receiver.s[start:end]), nil
	},
	"replace": func(receiver Value, args []Value) (Value, error) {
		if len(args) < 2 || args[0].Kind() != KindString || args[1].Kind() != KindString {
			return Void, &UnsupportedOperationError{Kind: "string", Operation: "replace requires (string, string[, int])"}
		}
		needle := args[0].s
		replacement := args[1].s
		limit, hasLimit := 0, false
		if len(args) > 2 && args[2].Kind() == KindInt {
			limit = int(args[2].AsInt().Int64())
			hasLimit = true
		}
		return StringFromRunes(replaceRunes(receiver.s, needle, replacement, limit, hasLimit)), nil
	},
	"padStart": func(receiver Value, args []Value) (Value, error) {
		target := 0
		if len(args) > 0 && args[0].Kind() == KindInt {
			target = int(args[0].AsInt().Int64())
		}
		need := target - displayWidth(receiver.s)
		if need <= 0 {
			return StringFromRunes(receiver.s), nil
		}
		pad := padRunes(padArg(args, 1), need)
		out := make([]rune, 0, len(pad)+len(receiver.s))
		out = append(out, pad...)
		out = append(out, receiver.s...)
		return StringFromRunes(out), nil
	},
	"padEnd": func(receiver Value, args []Value) (Value, error) {
		target := 0
		if len(args) > 0 && args[0].Kind() == KindInt {
			target = int(args[0].AsInt().Int64())
		}
		need := target - displayWidth(receiver.s)
		if need <= 0 {
			return StringFromRunes(receiver.s), nil
		}
		pad := padRunes(padArg(args, 1), need)
		out := make([]rune, 0, len(pad)+len(receiver.s))
		out = append(out, receiver.s...)
		out = append(out, pad...)
		return StringFromRunes(out), nil
	},
	"toUpper": func(receiver Value, args []Value) (Value, error) {
		return String(strings.ToUpper(receiver.AsString())), nil
	},
	"toLower": func(receiver Value, args []Value) (Value, error) {
		return String(strings.ToLower(receiver.AsString())), nil
	},
	"trim": func(receiver Value, args []Value) (Value, error) {
		return String(strings.TrimFunc(receiver.AsString(), unicode.IsSpace)), nil
	},
	"trimStart": func(receiver Value, args []Value) (Value, error) {
		return String(strings.TrimLeftFunc(receiver.AsString(), unicode.IsSpace)), nil
	},
	"trimEnd": func(receiver Value, args []Value) (Value, error) {
		return String(strings.TrimRightFunc(receiver.AsString(), unicode.IsSpace)), nil
	},
	"indexOf": func(receiver Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind() != KindString {
			return IntFromInt64(-1), nil
		}
		idx := runesIndex(receiver.s, args[0].s, 0)
		return IntFromInt64(int64(idx)), nil
	},
	"contains": func(receiver Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind() != KindString {
			return Bool(false), nil
		}
		return Bool(runesIndex(receiver.s, args[0].s, 0) >= 0), nil
	},
	"startsWith": func(receiver Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind() != KindString {
			return Bool(false), nil
		}
		needle := args[0].s
		if len(needle) > len(receiver.s) {
			return Bool(false), nil
		}
		return Bool(stringsCompareRunes(receiver.s[:len(needle)], needle) == 0), nil
	},
	"endsWith": func(receiver Value, args []Value) (Value, error) {
		if len(args) == 0 || args[0].Kind() != KindString {
			return Bool(false), nil
		}
		needle := args[0].s
		if len(needle) > len(receiver.s) {
			return Bool(false), nil
		}
		tail := receiver.s[len(receiver.s)-len(needle):]
		return Bool(stringsCompareRunes(tail, needle) == 0), nil
	},
	"split": func(receiver Value, args []Value) (Value, error) {
		sep := ""
		if len(args) > 0 && args[0].Kind() == KindString {
			sep = args[0].AsString()
		}
		var parts []string
		if sep == "" {
			for _, r := range receiver.s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(receiver.AsString(), sep)
		}
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return FromProxy(NewVanillaArray(out)), nil
	},
	"repeat": func(receiver Value, args []Value) (Value, error) {
		n := 0
		if len(args) > 0 && args[0].Kind() == KindInt {
			n = int(args[0].AsInt().Int64())
		}
		if n <= 0 {
			return StringFromRunes(nil), nil
		}
		out := make([]rune, 0, len(receiver.s)*n)
		for i := 0; i < n; i++ {
			out = append(out, receiver.s...)
		}
		return StringFromRunes(out), nil
	},
	"charAt": func(receiver Value, args []Value) (Value, error) {
		idx := 0
		if len(args) > 0 && args[0].Kind() == KindInt {
			idx = int(args[0].AsInt().Int64())
		}
		if idx < 0 || idx >= len(receiver.s) {
			return String(""), nil
		}
		return StringFromRunes([]rune{receiver.s[idx]}), nil
	},
	"codePointAt": func(receiver Value, args []Value) (Value, error) {
		idx := 0
		if len(args) > 0 && args[0].Kind() == KindInt {
			idx = int(args[0].AsInt().Int64())
		}
		if idx < 0 || idx >= len(receiver.s) {
			return Void, &IndexOutOfRangeError{Kind: "string", Index: IntFromInt64(int64(idx))}
		}
		return IntFromInt64(int64(receiver.s[idx])), nil
	},
}

// runesIndex finds the first occurrence of needle in s at or after from,
// returning -1 if absent. An empty needle matches at position from.
func runesIndex(s, needle []rune, from int) int {
	if len(needle) == 0 {
		if from > len(s) {
			return -1
		}
		return from
	}
	for i := from; i+len(needle) <= len(s); i++ {
		if stringsCompareRunes(s[i:i+len(needle)], needle) == 0 {
			return i
		}
	}
	return -1
}

// replaceRunes implements SPEC_FULL.md §3's replace(needle, replacement,
// limit): an empty needle matches the interior boundary between every
// pair of adjacent codepoints (spec.md §8 scenario 4: "banana".replace("",
// "-") yields "b-a-n-a-n-a", dashes only between letters, never at the
// ends); a non-empty needle matches left-to-right, non-overlapping. A
// positive limit keeps only the first `limit` matches, a negative limit
// keeps only the last `-limit` matches, zero replaces nothing, and an
// omitted limit replaces every match.
func replaceRunes(s, needle, replacement []rune, limit int, hasLimit bool) []rune {
	var matches []int
	if len(needle) == 0 {
		for i := 1; i < len(s); i++ {
			matches = append(matches, i)
		}
	} else {
		for i := 0; i+len(needle) <= len(s); {
			if stringsCompareRunes(s[i:i+len(needle)], needle) == 0 {
				matches = append(matches, i)
				i += len(needle)
				continue
			}
			i++
		}
	}
	selected := selectMatches(matches, limit, hasLimit)

	out := make([]rune, 0, len(s))
	if len(needle) == 0 {
		for i, r := range s {
			if i > 0 && selected[i] {
				out = append(out, replacement...)
			}
			out = append(out, r)
		}
		return out
	}
	i := 0
	for i < len(s) {
		if selected[i] {
			out = append(out, replacement...)
			i += len(needle)
			continue
		}
		out = append(out, s[i])
		i++
	}
	return out
}

// selectMatches applies the limit semantics shared by replaceRunes: keep
// the first `limit` match positions (positive), the last `-limit`
// (negative), none (zero), or all (no limit given).
func selectMatches(matches []int, limit int, hasLimit bool) map[int]bool {
	selected := make(map[int]bool, len(matches))
	switch {
	case !hasLimit:
		for _, m := range matches {
			selected[m] = true
		}
	case limit == 0:
		// nothing selected
	case limit > 0:
		for i, m := range matches {
			if i >= limit {
				break
			}
			selected[m] = true
		}
	default:
		keep := -limit
		start := len(matches) - keep
		if start < 0 {
			start = 0
		}
		for _, m := range matches[start:] {
			selected[m] = true
		}
	}
	return selected
}
