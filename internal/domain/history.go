package domain

// HistoryEntry is one locally remembered plan visit.
type HistoryEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// LastVisited is unix milliseconds; zero in files written without it.
	LastVisited int64 `json:"lastVisited,omitempty"`
}
