package service

import (
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSiteName = "SiteCMS"

// SiteSettings 描述站点公开的联系方式与社交链接。
type SiteSettings struct {
	SiteName     string `json:"siteName"`
	Tagline      string `json:"tagline"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	LinkedInURL  string `json:"linkedinUrl"`
	TwitterURL   string `json:"twitterUrl"`
	GitHubURL    string `json:"githubUrl"`
}

// SiteSettingsInput 用于更新站点设置，nil 字段保持不变。
type SiteSettingsInput struct {
	SiteName     *string
	Tagline      *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	LinkedInURL  *string
	TwitterURL   *string
	GitHubURL    *string
}

// SettingService 提供站点设置的读取与更新能力。
type SettingService struct {
	db *gorm.DB
}

// NewSettingService 构造 SettingService。
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyTagline,
	db.SettingKeyContactEmail,
	db.SettingKeyContactPhone,
	db.SettingKeyAddress,
	db.SettingKeyLinkedInURL,
	db.SettingKeyTwitterURL,
	db.SettingKeyGitHubURL,
}

func (s *SiteSettings) field(key string) *string {
	switch key {
	case db.SettingKeySiteName:
		return &s.SiteName
	case db.SettingKeyTagline:
		return &s.Tagline
	case db.SettingKeyContactEmail:
		return &s.ContactEmail
	case db.SettingKeyContactPhone:
		return &s.ContactPhone
	case db.SettingKeyAddress:
		return &s.Address
	case db.SettingKeyLinkedInURL:
		return &s.LinkedInURL
	case db.SettingKeyTwitterURL:
		return &s.TwitterURL
	case db.SettingKeyGitHubURL:
		return &s.GitHubURL
	}
	return nil
}

func (in SiteSettingsInput) field(key string) *string {
	switch key {
	case db.SettingKeySiteName:
		return in.SiteName
	case db.SettingKeyTagline:
		return in.Tagline
	case db.SettingKeyContactEmail:
		return in.ContactEmail
	case db.SettingKeyContactPhone:
		return in.ContactPhone
	case db.SettingKeyAddress:
		return in.Address
	case db.SettingKeyLinkedInURL:
		return in.LinkedInURL
	case db.SettingKeyTwitterURL:
		return in.TwitterURL
	case db.SettingKeyGitHubURL:
		return in.GitHubURL
	}
	return nil
}

// GetSettings 读取站点设置，如未设置将返回默认值。
func (s *SettingService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{SiteName: defaultSiteName}

	var records []db.Setting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		target := result.field(record.Key)
		if target == nil {
			continue
		}
		if record.Key == db.SettingKeySiteName && strings.TrimSpace(record.Value) == "" {
			continue
		}
		*target = record.Value
	}
	return result, nil
}

// UpdateSettings 保存提交的字段，站点名称留空时回退默认值。
func (s *SettingService) UpdateSettings(input SiteSettingsInput) (SiteSettings, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			value := input.field(key)
			if value == nil {
				continue
			}
			trimmed := strings.TrimSpace(*value)
			if key == db.SettingKeySiteName && trimmed == "" {
				trimmed = defaultSiteName
			}
			if err := upsertSetting(tx, key, trimmed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return s.GetSettings()
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.Setting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
