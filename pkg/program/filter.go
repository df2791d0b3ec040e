package program

import "strings"

// AllBrands is the brand filter value that matches every brand.
const AllBrands = "All"

// Filter returns the programs matching brandFilter and query, in input order.
//
// brandFilter is either AllBrands or an exact brand name. query is matched
// case-insensitively as a substring of the brand, description or id; an empty
// query matches everything.
func Filter(programs []Program, brandFilter, query string) []Program {
	query = strings.ToLower(query)

	matches := make([]Program, 0, len(programs))
	for _, p := range programs {
		if brandFilter != AllBrands && p.Brand != brandFilter {
			continue
		}
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

// matchesQuery expects query to be lower-cased already.
func matchesQuery(p *Program, query string) bool {
	return strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.ID), query)
}
