package domain

// DiaryEntry is one day of the work diary. Date uses the YYYY-MM-DD layout.
type DiaryEntry struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}
