package schema

import "iter"

// fieldSet keeps fields in declaration order with a name index.
type fieldSet struct {
	index map[string]int // name → position
	items []Field
}

func newFieldSet(capacity int) *fieldSet {
	return &fieldSet{
		index: make(map[string]int, capacity),
		items: make([]Field, 0, capacity),
	}
}

// add appends f unless its name is taken, in which case it returns the
// position of the earlier field and false.
func (s *fieldSet) add(f Field) (int, bool) {
	if pos, exists := s.index[f.Name]; exists {
		return pos, false
	}
	s.index[f.Name] = len(s.items)
	s.items = append(s.items, f)
	return len(s.items) - 1, true
}

func (s *fieldSet) get(name string) (Field, int, bool) {
	pos, ok := s.index[name]
	if !ok {
		return Field{}, -1, false
	}
	return s.items[pos], pos, true
}

func (s *fieldSet) len() int {
	return len(s.items)
}

func (s *fieldSet) at(pos int) Field {
	return s.items[pos]
}

// values returns a copy of the fields in order
func (s *fieldSet) values() []Field {
	out := make([]Field, len(s.items))
	copy(out, s.items)
	return out
}

func (s *fieldSet) names() []string {
	out := make([]string, len(s.items))
	for i, f := range s.items {
		out[i] = f.Name
	}
	return out
}

func (s *fieldSet) all() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for i, f := range s.items {
			if !yield(i, f) {
				return
			}
		}
	}
}
