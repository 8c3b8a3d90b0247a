// Package facets builds the filter index for a record list: the distinct
// values of each filterable field with their occurrence counts, ordered the
// way selection controls present them (most frequent first).
package facets

import (
	"sort"

	"rematierra/internal/listing"
)

// Fields are the filterable Listing fields, in display order.
var Fields = []string{"tipo_bien", "tipo_bienes", "region", "comuna", "source", "moneda"}

// Count is one distinct value and the number of records carrying it.
type Count struct {
	Value string `json:"value"`
	N     int    `json:"n"`
}

// Index holds the per-field value counts for a dataset.
type Index struct {
	counts map[string][]Count
}

// Build derives the filter index from a record list. Empty field values
// are counted too; renderers label them, criteria builders skip them.
func Build(records []*listing.Listing) *Index {
	tallies := make(map[string]map[string]int, len(Fields))
	for _, field := range Fields {
		tallies[field] = make(map[string]int)
	}

	for _, rec := range records {
		tallies["tipo_bien"][rec.Categoria()]++
		tallies["tipo_bienes"][rec.TipoBienes]++
		tallies["region"][rec.Region]++
		tallies["comuna"][rec.Comuna]++
		tallies["source"][rec.Source]++
		tallies["moneda"][rec.Moneda]++
	}

	idx := &Index{counts: make(map[string][]Count, len(Fields))}
	for field, tally := range tallies {
		counts := make([]Count, 0, len(tally))
		for value, n := range tally {
			counts = append(counts, Count{Value: value, N: n})
		}
		// most_common ordering: count desc, then value asc for stability
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].N != counts[j].N {
				return counts[i].N > counts[j].N
			}
			return counts[i].Value < counts[j].Value
		})
		idx.counts[field] = counts
	}

	return idx
}

// Values returns the distinct values of a field with counts, most frequent
// first. Unknown fields return an empty slice.
func (idx *Index) Values(field string) []Count {
	if idx == nil || idx.counts == nil {
		return []Count{}
	}
	counts, ok := idx.counts[field]
	if !ok {
		return []Count{}
	}
	return counts
}

// Top returns the first n values of a field and how many distinct values
// were cut off. n <= 0 means no cut.
func (idx *Index) Top(field string, n int) ([]Count, int) {
	counts := idx.Values(field)
	if n <= 0 || len(counts) <= n {
		return counts, 0
	}
	return counts[:n], len(counts) - n
}

// MarshalFields exports the whole index as an ordered field → counts map
// for JSON output.
func (idx *Index) MarshalFields() map[string][]Count {
	out := make(map[string][]Count, len(Fields))
	for _, field := range Fields {
		out[field] = idx.Values(field)
	}
	return out
}
