package citation

import "sort"

// Sort orders entries ascending by resolved publication date. Undated
// entries sort after every dated entry. The sort is stable, so ties and
// undated runs keep their input order rather than picking up an
// alphabetical bias from the keys.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].Date, entries[j].Date
		switch {
		case di.IsZero():
			return false
		case dj.IsZero():
			return true
		default:
			return di.SortKey().Before(dj.SortKey())
		}
	})
}
