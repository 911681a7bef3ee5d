package analysis

// Selection is the set of category values a user picked for one axis.
// It remembers insertion order so controls render stably.
type Selection struct {
	set   map[string]struct{}
	order []string
}

// NewSelection builds a Selection; duplicate values are kept once.
func NewSelection(values ...string) Selection {
	s := Selection{set: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if _, ok := s.set[v]; ok {
			continue
		}
		s.set[v] = struct{}{}
		s.order = append(s.order, v)
	}
	return s
}

func (s Selection) Contains(v string) bool {
	_, ok := s.set[v]
	return ok
}

func (s Selection) Len() int      { return len(s.order) }
func (s Selection) IsEmpty() bool { return len(s.order) == 0 }

// Values returns a copy of the selected values in insertion order.
func (s Selection) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Restrict drops every value not in allowed.
func (s Selection) Restrict(allowed []string) Selection {
	ok := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		ok[v] = struct{}{}
	}
	var kept []string
	for _, v := range s.order {
		if _, in := ok[v]; in {
			kept = append(kept, v)
		}
	}
	return NewSelection(kept...)
}
