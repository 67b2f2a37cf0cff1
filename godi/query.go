package godi

import (
	"fmt"
	"reflect"
)

type (
	query interface {
		want(name Name) bool

		fmt.Stringer
	}

	queryByType struct {
		typ reflect.Type
	}

	queryByName struct {
		name Name
	}

	queryResult struct {
		name     Name
		provider Provider
	}
)

func (q queryByType) want(n Name) bool {
	return matchType(q.typ, n.typ)
}

func (q queryByType) String() string {
	return fmt.Sprintf("<type ~= %s>", q.typ.String())
}

func (q queryByName) want(n Name) bool {
	return n.name == q.name.name && matchType(q.name.typ, n.typ)
}

func (q queryByName) String() string {
	return fmt.Sprintf("<type ~= %s and name = %s>", q.name.typ.String(), q.name.name)
}

// find returns the providers able to serve the query, highest priority first.
// A name already served by a higher priority provider is shadowed.
func (r *Resolver) find(q query) []*queryResult {
	var (
		results []*queryResult
		seen    = make(map[Name]struct{})
	)
	for _, p := range r.providers.items() {
		for _, n := range p.ListProvidableNames() {
			if !q.want(n) {
				continue
			}
			if _, shadowed := seen[n]; shadowed {
				continue
			}
			if !p.CanProvide(n) {
				continue
			}
			seen[n] = struct{}{}
			results = append(results, &queryResult{name: n, provider: p})
		}
	}
	return results
}
