package ffi

import (
	"fmt"
	"sort"
)

// Disambiguate assigns unique Names to methods.
//
// Methods sharing a base name are captioned with the first strategy in
// AllMethodCaptionStrategies that succeeds for every method of the group
// and yields pairwise distinct captions. Groups no strategy can separate,
// and names that collide across groups, receive a numeric suffix in input
// order. It returns the number of methods that needed the suffix.
func Disambiguate(methods []*Method) int {
	groups := make(map[string][]*Method)
	var bases []string
	for _, m := range methods {
		if _, ok := groups[m.BaseName]; !ok {
			bases = append(bases, m.BaseName)
		}
		groups[m.BaseName] = append(groups[m.BaseName], m)
	}
	sort.Strings(bases)

	for _, base := range bases {
		group := groups[base]
		if len(group) == 1 {
			group[0].Name = base
			group[0].Strategy = nil
			continue
		}
		strategy, captions, ok := chooseStrategy(group)
		for i, m := range group {
			m.Name = base
			m.Strategy = nil
			if ok {
				s := strategy
				m.Strategy = &s
				if captions[i] != "" {
					m.Name = base + "_" + captions[i]
				}
			}
		}
	}
	return ensureUnique(methods)
}

func chooseStrategy(group []*Method) (MethodCaptionStrategy, []string, bool) {
	for _, strategy := range AllMethodCaptionStrategies() {
		captions := make([]string, len(group))
		seen := make(map[string]struct{}, len(group))
		ok := true
		for i, m := range group {
			c, err := m.Signature.Caption(strategy)
			if err != nil {
				ok = false
				break
			}
			if _, dup := seen[c]; dup {
				ok = false
				break
			}
			seen[c] = struct{}{}
			captions[i] = c
		}
		if ok {
			return strategy, captions, true
		}
	}
	return MethodCaptionStrategy{}, nil, false
}

// ensureUnique keeps the first holder of every name and suffixes the rest
// with the smallest free "_N", N >= 2.
func ensureUnique(methods []*Method) int {
	taken := make(map[string]struct{}, len(methods))
	var later []*Method
	for _, m := range methods {
		if _, dup := taken[m.Name]; dup {
			later = append(later, m)
			continue
		}
		taken[m.Name] = struct{}{}
	}
	for _, m := range later {
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s_%d", m.Name, n)
			if _, dup := taken[candidate]; !dup {
				m.Name = candidate
				taken[candidate] = struct{}{}
				break
			}
		}
	}
	return len(later)
}
