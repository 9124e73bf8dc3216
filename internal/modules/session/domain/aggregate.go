package domain

// DateTotal is one bar of the per-date chart.
type DateTotal struct {
	Date    string
	Minutes int
}

func ByDate(h History) map[string]int {
	out := make(map[string]int)
	for _, r := range h {
		out[r.Date] += r.Duration
	}
	return out
}

func TotalForDate(h History, date string) int {
	total := 0
	for _, r := range h {
		if r.Date == date {
			total += r.Duration
		}
	}
	return total
}

// Series is ByDate ordered by first appearance in h.
func Series(h History) []DateTotal {
	index := make(map[string]int)
	var out []DateTotal
	for _, r := range h {
		i, ok := index[r.Date]
		if !ok {
			index[r.Date] = len(out)
			out = append(out, DateTotal{Date: r.Date, Minutes: r.Duration})
			continue
		}
		out[i].Minutes += r.Duration
	}
	return out
}
