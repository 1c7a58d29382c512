package agg

// LogSet is a set of formatted log lines.
type LogSet map[string]struct{}

// NewLogSet returns a set holding lines.
func NewLogSet(lines ...string) LogSet {
	s := make(LogSet, len(lines))
	for _, line := range lines {
		s.Add(line)
	}
	return s
}

// Add inserts line and reports whether it was new.
func (s LogSet) Add(line string) bool {
	if _, ok := s[line]; ok {
		return false
	}
	s[line] = struct{}{}
	return true
}

// Union adds every line of other to s.
func (s LogSet) Union(other LogSet) {
	for line := range other {
		s[line] = struct{}{}
	}
}

// Contains reports whether line is in the set.
func (s LogSet) Contains(line string) bool {
	_, ok := s[line]
	return ok
}

// Len returns the number of unique lines.
func (s LogSet) Len() int {
	return len(s)
}

// Lines returns the members in no particular order.
func (s LogSet) Lines() []string {
	out := make([]string, 0, len(s))
	for line := range s {
		out = append(out, line)
	}
	return out
}
