package types

// Article is one recent entry pulled from a feed source.
type Article struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// Valid reports whether the entry carries enough text to be used as context.
func (a Article) Valid() bool {
	return trimmed(a.Title) != "" && trimmed(a.Summary) != ""
}
