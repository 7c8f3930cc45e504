package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sitecms/internal/db"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedFixture is the YAML document accepted by the seed command.
type SeedFixture struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Blogs []struct {
		Title      string   `yaml:"title"`
		Slug       string   `yaml:"slug"`
		Excerpt    string   `yaml:"excerpt"`
		Content    string   `yaml:"content"`
		CoverImage string   `yaml:"coverImage"`
		Category   string   `yaml:"category"`
		Tags       []string `yaml:"tags"`
		Status     string   `yaml:"status"`
		Author     string   `yaml:"author"`
	} `yaml:"blogs"`
	Services []struct {
		Title     string   `yaml:"title"`
		Slug      string   `yaml:"slug"`
		Summary   string   `yaml:"summary"`
		Content   string   `yaml:"content"`
		Icon      string   `yaml:"icon"`
		Image     string   `yaml:"image"`
		Features  []string `yaml:"features"`
		SortOrder *int     `yaml:"sortOrder"`
		Published bool     `yaml:"published"`
	} `yaml:"services"`
	Solutions []struct {
		Title      string   `yaml:"title"`
		Slug       string   `yaml:"slug"`
		Summary    string   `yaml:"summary"`
		Content    string   `yaml:"content"`
		Image      string   `yaml:"image"`
		Industries []string `yaml:"industries"`
		Benefits   []string `yaml:"benefits"`
		SortOrder  *int     `yaml:"sortOrder"`
		Published  bool     `yaml:"published"`
	} `yaml:"solutions"`
	CaseStudies []struct {
		Title        string   `yaml:"title"`
		Slug         string   `yaml:"slug"`
		Client       string   `yaml:"client"`
		Industry     string   `yaml:"industry"`
		Summary      string   `yaml:"summary"`
		Challenge    string   `yaml:"challenge"`
		Solution     string   `yaml:"solution"`
		Results      []string `yaml:"results"`
		Technologies []string `yaml:"technologies"`
		Content      string   `yaml:"content"`
		CoverImage   string   `yaml:"coverImage"`
		Featured     bool     `yaml:"featured"`
		Published    bool     `yaml:"published"`
		SortOrder    *int     `yaml:"sortOrder"`
	} `yaml:"caseStudies"`
	Settings map[string]string `yaml:"settings"`
}

// SeedReport counts the records created by a seed run. Records whose
// slug or email already exists are skipped.
type SeedReport struct {
	Users       int
	Blogs       int
	Services    int
	Solutions   int
	CaseStudies int
	Settings    int
	Skipped     int
}

// ParseSeedFixture decodes a YAML fixture, rejecting unknown keys.
func ParseSeedFixture(r io.Reader) (SeedFixture, error) {
	var fixture SeedFixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return fixture, fmt.Errorf("parse seed fixture: %w", err)
	}
	return fixture, nil
}

// Seed loads the fixture through the regular services so the same slug,
// excerpt and password rules apply.
func Seed(gdb *gorm.DB, fixture SeedFixture) (SeedReport, error) {
	var report SeedReport

	users := NewUserService(gdb)
	authors := map[string]uint{}
	for _, u := range fixture.Users {
		created, err := users.Create(UserInput{Name: u.Name, Email: u.Email, Password: u.Password, Role: u.Role})
		if errors.Is(err, ErrEmailTaken) {
			report.Skipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		authors[created.Email] = created.ID
		report.Users++
	}

	authorID := func(email string) (uint, error) {
		email = db.NormalizeEmail(email)
		if email == "" {
			return 0, nil
		}
		if id, ok := authors[email]; ok {
			return id, nil
		}
		var user db.User
		if err := gdb.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("unknown author %s", email)
			}
			return 0, err
		}
		authors[email] = user.ID
		return user.ID, nil
	}

	blogs := NewBlogService(gdb)
	for _, b := range fixture.Blogs {
		if seedSlugExists(gdb, &db.Blog{}, b.Slug, b.Title) {
			report.Skipped++
			continue
		}
		author, err := authorID(b.Author)
		if err != nil {
			return report, fmt.Errorf("seed blog %q: %w", b.Title, err)
		}
		if _, err := blogs.Create(BlogInput{
			Title: b.Title, Slug: b.Slug, Excerpt: b.Excerpt, Content: b.Content,
			CoverImage: b.CoverImage, Category: b.Category, Tags: b.Tags,
			Status: b.Status, AuthorID: author,
		}); err != nil {
			return report, fmt.Errorf("seed blog %q: %w", b.Title, err)
		}
		report.Blogs++
	}

	offerings := NewOfferingService(gdb)
	for _, o := range fixture.Services {
		if seedSlugExists(gdb, &db.Service{}, o.Slug, o.Title) {
			report.Skipped++
			continue
		}
		if _, err := offerings.Create(OfferingInput{
			Title: o.Title, Slug: o.Slug, Summary: o.Summary, Content: o.Content,
			Icon: o.Icon, Image: o.Image, Features: o.Features,
			SortOrder: o.SortOrder, Published: o.Published,
		}); err != nil {
			return report, fmt.Errorf("seed service %q: %w", o.Title, err)
		}
		report.Services++
	}

	solutions := NewSolutionService(gdb)
	for _, o := range fixture.Solutions {
		if seedSlugExists(gdb, &db.Solution{}, o.Slug, o.Title) {
			report.Skipped++
			continue
		}
		if _, err := solutions.Create(SolutionInput{
			Title: o.Title, Slug: o.Slug, Summary: o.Summary, Content: o.Content,
			Image: o.Image, Industries: o.Industries, Benefits: o.Benefits,
			SortOrder: o.SortOrder, Published: o.Published,
		}); err != nil {
			return report, fmt.Errorf("seed solution %q: %w", o.Title, err)
		}
		report.Solutions++
	}

	caseStudies := NewCaseStudyService(gdb)
	for _, c := range fixture.CaseStudies {
		if seedSlugExists(gdb, &db.CaseStudy{}, c.Slug, c.Title) {
			report.Skipped++
			continue
		}
		if _, err := caseStudies.Create(CaseStudyInput{
			Title: c.Title, Slug: c.Slug, Client: c.Client, Industry: c.Industry,
			Summary: c.Summary, Challenge: c.Challenge, Solution: c.Solution,
			Results: c.Results, Technologies: c.Technologies, Content: c.Content,
			CoverImage: c.CoverImage, Featured: c.Featured, Published: c.Published,
			SortOrder: c.SortOrder,
		}); err != nil {
			return report, fmt.Errorf("seed case study %q: %w", c.Title, err)
		}
		report.CaseStudies++
	}

	if len(fixture.Settings) > 0 {
		if err := gdb.Transaction(func(tx *gorm.DB) error {
			for key, value := range fixture.Settings {
				key = strings.TrimSpace(key)
				if key == "" {
					continue
				}
				if err := upsertSetting(tx, key, strings.TrimSpace(value)); err != nil {
					return err
				}
				report.Settings++
			}
			return nil
		}); err != nil {
			return report, err
		}
	}

	return report, nil
}

func seedSlugExists(gdb *gorm.DB, model interface{}, slug, title string) bool {
	source := slug
	if strings.TrimSpace(source) == "" {
		source = title
	}
	candidate := db.Slugify(source)
	if candidate == "" {
		return false
	}
	var count int64
	gdb.Model(model).Where("slug = ?", candidate).Count(&count)
	return count > 0
}
