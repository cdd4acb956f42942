// Package wildmat implements the recursive wildcard matcher shared by the
// ADFS and DFS backends (spec.md §4.3, component 3). The ADFS variant
// returns 0 on match, a positive value meaning "the candidate sorts
// before anything this pattern could match — keep scanning a sorted
// directory", and a negative value meaning "after — stop scanning,
// insert/report not-found here".
package wildmat

// ADFSMaxName is the fixed candidate width ADFS directory entries use.
const ADFSMaxName = 10

// MatchADFS matches pattern against a raw ADFS directory-entry name field.
// candidate must be at least ADFSMaxName bytes (only the first ADFSMaxName
// are examined); its high bits are attribute flags and are masked off
// here, and a name terminates early at a 0 or 0x0D byte. isDir is the
// directory/not-directory hint read from the entry's own DIR attribute
// bit — `*` stops at the next `.` separator only when matching a
// directory name, which is what makes path-segmented globbing work
// (spec.md §4.3, original_source/acorn-adfs.c adfs_wildmat).
func MatchADFS(pattern string, candidate []byte, isDir bool) int {
	if len(candidate) > ADFSMaxName {
		candidate = candidate[:ADFSMaxName]
	}
	return matchADFS(pattern, candidate, isDir)
}

func matchADFS(pattern string, candidate []byte, isDir bool) int {
	if len(candidate) == 0 {
		return 0
	}

	var patCh byte
	rest := pattern
	if len(pattern) > 0 {
		patCh = pattern[0]
		rest = pattern[1:]
	}

	if patCh == '*' {
		var next byte
		if len(rest) > 0 {
			next = rest[0]
		}
		if next == 0 {
			return 0
		}
		if next == '.' {
			if isDir {
				return 0
			}
			return 1
		}
		for len(candidate) > 0 {
			if candidate[0]&0x7f == 0x0d {
				return 1
			}
			if matchADFS(rest, candidate, isDir) == 0 {
				return 0
			}
			candidate = candidate[1:]
		}
		return 1
	}

	canCh := candidate[0] & 0x7f
	candidate = candidate[1:]

	if patCh == 0 {
		if canCh == 0 || canCh == 0x0d {
			return 0
		}
		return 1
	}
	if canCh == 0 || canCh == 0x0d {
		if patCh == '.' {
			return 0
		}
		return 1
	}
	if patCh == '#' {
		// Once '#' has taken a character, a later mismatch says nothing
		// about where the candidate sorts, so it can only mean "keep
		// scanning".
		if matchADFS(rest, candidate, isDir) != 0 {
			return 1
		}
		return 0
	}
	if patCh != '#' {
		p, c := patCh, canCh
		if p >= 'a' && p <= 'z' {
			p &= 0x5f
		}
		if c >= 'a' && c <= 'z' {
			c &= 0x5f
		}
		if d := int(p) - int(c); d != 0 {
			return d
		}
	}
	return matchADFS(rest, candidate, isDir)
}

// MatchDFS matches pattern against a raw DFS entry: candidate[0:7] is the
// space-padded name, candidate[7] is the directory letter (high bit =
// locked, masked off here). A directory-letter prefix ("X.NAME") in
// pattern is checked against candidate[7] before the name itself is
// compared; an unprefixed pattern only matches entries in the default "$"
// directory (spec.md §4.6, original_source/acorn-dfs.c dfs_wildmat).
//
// Unlike MatchADFS, DFS catalogues are not required to be globally sorted
// across directory letters, so this returns a plain match/no-match bool
// rather than an ordered tri-state.
func MatchDFS(pattern string, candidate []byte) bool {
	if len(pattern) == 0 || len(candidate) < 8 {
		return false
	}
	patCh0 := pattern[0]
	var patCh1 byte
	if len(pattern) > 1 {
		patCh1 = pattern[1]
	}
	dirLetter := candidate[7] & 0x7f

	if patCh1 == '.' {
		if patCh0 == '*' || patCh0 == '#' || patCh0 == dirLetter {
			// Strip the "X." directory-letter prefix before matching the
			// 7-byte name field: the source passes the full pattern
			// (including the prefix) to its name-matcher, which would
			// never match since '.' can't appear in a DFS name — this is
			// the one place we deviate from a literal port (see
			// DESIGN.md's Open Question decisions).
			return matchDFSName(pattern[2:], candidate[:7]) == 0
		}
		return false
	}
	if dirLetter == '$' {
		return matchDFSName(pattern, candidate[:7]) == 0
	}
	return false
}

func matchDFSName(pattern string, candidate []byte) int {
	if len(candidate) == 0 {
		if len(pattern) > 0 {
			return int(pattern[0])
		}
		return 0
	}

	var patCh byte
	rest := pattern
	if len(pattern) > 0 {
		patCh = pattern[0]
		rest = pattern[1:]
	}

	if patCh == '*' {
		var next byte
		if len(rest) > 0 {
			next = rest[0]
		}
		if next == 0 {
			return 0
		}
		for len(candidate) > 0 {
			if matchDFSName(rest, candidate) == 0 {
				return 0
			}
			candidate = candidate[1:]
		}
		return 1
	}

	canCh := candidate[0] & 0x5f
	candidate = candidate[1:]

	if patCh == 0 {
		return int(canCh)
	}
	if patCh != '#' {
		p := patCh & 0x5f
		if d := int(p) - int(canCh); d != 0 {
			return d
		}
	}
	return matchDFSName(rest, candidate)
}
