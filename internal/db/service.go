package db

// Service is an entry in the agency's services catalogue.
type Service struct {
	Model
	Title     string   `gorm:"size:150;not null" json:"title"`
	Slug      string   `gorm:"size:170;uniqueIndex;not null" json:"slug"`
	Summary   string   `gorm:"size:500;not null" json:"summary"`
	Content   string   `gorm:"type:text" json:"content"`
	Icon      string   `gorm:"size:100" json:"icon"`
	Image     string   `json:"image"`
	Features  []string `gorm:"serializer:json" json:"features"`
	SortOrder int      `gorm:"index" json:"sortOrder"`
	Published bool     `gorm:"index" json:"published"`
}
