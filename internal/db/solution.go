package db

// Solution describes an industry-facing bundle of services.
type Solution struct {
	Model
	Title      string   `gorm:"size:150;not null" json:"title"`
	Slug       string   `gorm:"size:170;uniqueIndex;not null" json:"slug"`
	Summary    string   `gorm:"size:500;not null" json:"summary"`
	Content    string   `gorm:"type:text" json:"content"`
	Image      string   `json:"image"`
	Industries []string `gorm:"serializer:json" json:"industries"`
	Benefits   []string `gorm:"serializer:json" json:"benefits"`
	SortOrder  int      `gorm:"index" json:"sortOrder"`
	Published  bool     `gorm:"index" json:"published"`
}
