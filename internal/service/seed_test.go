package service

import (
	"strings"
	"testing"

	"github.com/sitecms/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
users:
  - name: Site Admin
    email: admin@example.com
    password: password123
    role: admin
blogs:
  - title: Welcome
    content: "# Hello\n\nFirst post."
    category: News
    tags: [intro]
    status: published
    author: admin@example.com
services:
  - title: Web Design
    summary: Beautiful sites
    features: [Responsive, Accessible]
    published: true
solutions:
  - title: Retail
    summary: Retail bundle
caseStudies:
  - title: Shop Relaunch
    client: Corner Shop
    summary: Faster checkout
    featured: true
    published: true
settings:
  site_name: Acme
  contact_email: hello@acme.test
`

func TestSeed_CreatesAndSkipsExisting(t *testing.T) {
	gdb := setupServiceTestDB(t)

	fixture, err := ParseSeedFixture(strings.NewReader(seedYAML))
	require.NoError(t, err)

	report, err := Seed(gdb, fixture)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Users: 1, Blogs: 1, Services: 1, Solutions: 1, CaseStudies: 1, Settings: 2}, report)

	blog, err := NewBlogService(gdb).Get("welcome", true)
	require.NoError(t, err)
	require.NotNil(t, blog.Author)
	assert.Equal(t, "admin@example.com", blog.Author.Email)
	assert.Equal(t, db.RoleAdmin, blog.Author.Role)

	settings, err := NewSettingService(gdb).GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Acme", settings.SiteName)

	again, err := Seed(gdb, fixture)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Skipped)
	assert.Zero(t, again.Blogs)
}

func TestParseSeedFixture_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseSeedFixture(strings.NewReader("posts:\n  - title: nope\n"))
	assert.Error(t, err)
}
