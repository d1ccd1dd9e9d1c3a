// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symbol

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Symbol is a named value produced by a plan node.
type Symbol struct {
	name string
}

// New creates a Symbol.
func New(name string) Symbol {
	return Symbol{name: name}
}

// Name returns the name of the symbol.
func (s Symbol) Name() string {
	return s.name
}

// String implements fmt.Stringer interface.
func (s Symbol) String() string {
	return s.name
}

// Names returns the names of symbols, in order.
func Names(symbols []Symbol) []string {
	names := make([]string, 0, len(symbols))
	for _, s := range symbols {
		names = append(names, s.name)
	}
	return names
}

// Set is an unordered set of symbols.
type Set map[Symbol]struct{}

// NewSet builds a Set from symbols.
func NewSet(symbols ...Symbol) Set {
	s := make(Set, len(symbols))
	for _, sym := range symbols {
		s[sym] = struct{}{}
	}
	return s
}

// Contains checks whether sym is in the set.
func (s Set) Contains(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Equal checks whether two sets hold exactly the same symbols.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for sym := range s {
		if !other.Contains(sym) {
			return false
		}
	}
	return true
}

// Sorted returns the symbols of the set sorted by name.
func (s Set) Sorted() []Symbol {
	return slices.SortedFunc(maps.Keys(s), func(a, b Symbol) int {
		return strings.Compare(a.name, b.name)
	})
}

// String implements fmt.Stringer interface.
func (s Set) String() string {
	return fmt.Sprintf("[%s]", strings.Join(Names(s.Sorted()), ", "))
}
