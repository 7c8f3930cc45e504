package db

// Setting 存储后台可配置的站点级键值对。
type Setting struct {
	Model
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// TableName 自定义表名以保持命名一致。
func (Setting) TableName() string {
	return "site_settings"
}

const (
	SettingKeySiteName     = "site_name"
	SettingKeyTagline      = "tagline"
	SettingKeyContactEmail = "contact_email"
	SettingKeyContactPhone = "contact_phone"
	SettingKeyAddress      = "address"
	SettingKeyLinkedInURL  = "linkedin_url"
	SettingKeyTwitterURL   = "twitter_url"
	SettingKeyGitHubURL    = "github_url"
)
