// Package white removes white space from sequence lines.
package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// IsWhite reports whether c is ASCII white space.
func IsWhite(c byte) bool { return asciiSpace[c] }

// Remove acts on a byte slice, in place, and removes all the white
// space. The length is adjusted, but the capacity is unchanged.
// Lines without white space, which is almost all of them, are not
// written to.
func Remove(ps *[]byte) {
	s := *ps
	i := 0
	for i < len(s) && !asciiSpace[s[i]] {
		i++
	}
	if i == len(s) {
		return
	}
	n := i
	for ; i < len(s); i++ {
		if c := s[i]; !asciiSpace[c] {
			s[n] = c
			n++
		}
	}
	*ps = s[:n]
}
