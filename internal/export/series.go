package export

import "tubescout/internal/table"

// Series is a chart input. Labels[i] belongs to Values[i].
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int {
	return len(s.Labels)
}

// NewSeries builds an aligned series from rows in their given order.
func NewSeries[T any](rows []T, label func(T) string, value func(T) float64) Series {
	s := Series{
		Labels: make([]string, 0, len(rows)),
		Values: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		s.Labels = append(s.Labels, label(r))
		s.Values = append(s.Values, value(r))
	}
	return s
}

// ViewsSeries charts views per video title.
func ViewsSeries(rows []table.VideoRecord) Series {
	return NewSeries(rows,
		func(r table.VideoRecord) string { return r.Title },
		func(r table.VideoRecord) float64 { return float64(r.Views) },
	)
}

// Top returns the first n points, or all of them when n is not positive.
func (s Series) Top(n int) Series {
	if n <= 0 || n >= s.Len() {
		return s
	}
	return Series{Labels: s.Labels[:n], Values: s.Values[:n]}
}
