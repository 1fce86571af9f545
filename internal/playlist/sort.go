package playlist

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Sort reorders every group by the value paired with key and recomputes the
// group emission order.
//
// Records carrying key come first, ordered ascending; records without it
// follow in their original relative order. Values compare numerically only
// when every value in the group parses as a decimal number, otherwise the
// whole group compares as strings. Groups containing key at least once are
// emitted before groups that contain it nowhere.
func (p *Playlist) Sort(key string) {
	var withKey, withoutKey []Category

	for _, c := range Categories {
		present, absent := partition(p.groups[c], key)
		sortByValue(present, key)

		sorted := make([]AttributeList, 0, len(present)+len(absent))
		sorted = append(sorted, present...)
		sorted = append(sorted, absent...)
		p.groups[c] = sorted

		if len(present) > 0 {
			withKey = append(withKey, c)
		} else {
			withoutKey = append(withoutKey, c)
		}
	}

	p.order = append(withKey, withoutKey...)
}

// partition splits records by whether they carry key, keeping relative order.
func partition(records []AttributeList, key string) (present, absent []AttributeList) {
	for _, r := range records {
		if r.Has(key) {
			present = append(present, r)
		} else {
			absent = append(absent, r)
		}
	}
	return present, absent
}

// sortByValue stable-sorts records that all carry key.
func sortByValue(records []AttributeList, key string) {
	if len(records) < 2 {
		return
	}

	keyed := make([]keyedRecord, len(records))
	values := make([]string, len(records))
	for i, r := range records {
		values[i], _ = r.Get(key)
		keyed[i] = keyedRecord{record: r, value: values[i]}
	}

	if numbers, ok := parseNumbers(values); ok {
		for i := range keyed {
			keyed[i].number = numbers[i]
		}
		slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
			return cmp.Compare(a.number, b.number)
		})
	} else {
		slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
			return strings.Compare(a.value, b.value)
		})
	}

	for i, k := range keyed {
		records[i] = k.record
	}
}

// keyedRecord pairs a record with its sort value.
type keyedRecord struct {
	record AttributeList
	value  string
	number float64
}

// parseNumbers parses every value as a decimal number. ok is false if any
// value fails to parse.
func parseNumbers(values []string) ([]float64, bool) {
	numbers := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			return nil, false
		}
		numbers[i] = f
	}
	return numbers, true
}
