package db

// CaseStudy 定义客户案例模型
type CaseStudy struct {
	Model
	Title        string   `gorm:"size:200;not null" json:"title"`
	Slug         string   `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Client       string   `gorm:"size:150;not null" json:"client"`
	Industry     string   `gorm:"size:100;index" json:"industry"`
	Summary      string   `gorm:"size:500;not null" json:"summary"`
	Challenge    string   `gorm:"type:text" json:"challenge"`
	Solution     string   `gorm:"type:text" json:"solution"`
	Results      []string `gorm:"serializer:json" json:"results"`
	Technologies []string `gorm:"serializer:json" json:"technologies"`
	Content      string   `gorm:"type:text" json:"content"`
	CoverImage   string   `json:"coverImage"`
	Featured     bool     `gorm:"index" json:"featured"`
	Published    bool     `gorm:"index" json:"published"`
	SortOrder    int      `gorm:"index" json:"sortOrder"`
}

// TableName keeps the plural form readable.
func (CaseStudy) TableName() string {
	return "case_studies"
}
