package stringset

import "sort"

type StringSet map[string]struct{}

func (ss StringSet) Add(s string) StringSet {
	ss[s] = struct{}{}
	return ss
}

func (ss StringSet) Contains(s string) bool {
	_, ok := ss[s]
	return ok
}

// Sorted returns the members in lexical order.
func (ss StringSet) Sorted() []string {
	members := make([]string, 0, len(ss))
	for s := range ss {
		members = append(members, s)
	}
	sort.Strings(members)
	return members
}
