package core

import "strings"

func ParseEffort(s string) (Effort, bool) {
	return parseEnum(s, Efforts)
}

func ParseVerbosity(s string) (Verbosity, bool) {
	return parseEnum(s, Verbosities)
}

func ParseSearchContextSize(s string) (SearchContextSize, bool) {
	return parseEnum(s, SearchContextSizes)
}

// Values renders an enum set for error messages and tool schemas.
func Values[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}

func parseEnum[T ~string](s string, set []T) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range set {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}
