package domain

type MatchType string

const (
	MatchTypeFilename MatchType = "filename"
	MatchTypeContent  MatchType = "content"
)

type SearchMatch struct {
	File      string    `json:"file"`
	Path      string    `json:"path"`
	MatchType MatchType `json:"match_type"`
	Snippet   string    `json:"snippet"`
}

type BrowseResult struct {
	CurrentPath string   `json:"current_path"`
	ParentPath  *string  `json:"parent_path"`
	Folders     []string `json:"folders"`
}
