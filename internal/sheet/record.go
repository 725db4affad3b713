package sheet

import "strings"

/*
LeadRecord is one spreadsheet row as an ordered normalized-header → value
mapping. There is no fixed schema: ad platforms and manual entry produce
dozens of spellings for the same concept, so lookups go through Extract
instead of direct indexing.
*/
type LeadRecord struct {
	keys   []string
	values map[string]string
}

func NewLeadRecord() *LeadRecord {
	return &LeadRecord{values: map[string]string{}}
}

// Set stores a value under its normalized header, preserving first-seen
// column order.
func (r *LeadRecord) Set(header, value string) {
	key := NormalizeHeader(header)
	if key == "" {
		return
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = strings.TrimSpace(value)
}

// Get returns the value for an already-normalized key.
func (r *LeadRecord) Get(key string) string {
	return r.values[key]
}

// Keys returns the record's normalized headers in column order.
func (r *LeadRecord) Keys() []string {
	return r.keys
}

// IsEmpty reports whether every cell is blank.
func (r *LeadRecord) IsEmpty() bool {
	for _, k := range r.keys {
		if r.values[k] != "" {
			return false
		}
	}
	return true
}

/*
Extract resolves a logical field against the record. Order, first non-empty
match wins:

 1. exact match against each alias (normalized),
 2. any record key that contains, or is contained by, one of the fuzzy
    substrings.

Never errors; no match yields "". The fuzzy pass is lossy on purpose: it is
what catches "@ do Instagram da sua empresa". Ambiguous headers may resolve
to the wrong column. Tests cover the adversarial cases we know about.
*/
func (r *LeadRecord) Extract(aliases []string, fuzzy []string) string {
	for _, alias := range aliases {
		if v := r.values[NormalizeHeader(alias)]; v != "" {
			return v
		}
	}

	for _, key := range r.keys {
		v := r.values[key]
		if v == "" {
			continue
		}
		for _, f := range fuzzy {
			if strings.Contains(key, f) || strings.Contains(f, key) {
				return v
			}
		}
	}

	return ""
}
