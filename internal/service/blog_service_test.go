package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/sitecms/internal/db"
)

func TestBlogService_CreateGeneratesSlugAndExcerpt(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	author := createTestUser(t, gdb, "author@example.com", db.RoleEditor)

	blog, err := svc.Create(BlogInput{
		Title:    "Hello World",
		Content:  "# Heading\n\nSome **markdown** body text.",
		Tags:     []string{"Go", " go ", "", "Cloud"},
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	if blog.Slug != "hello-world" {
		t.Fatalf("expected slug hello-world, got %q", blog.Slug)
	}
	if blog.Status != db.StatusDraft {
		t.Fatalf("expected draft status, got %q", blog.Status)
	}
	if blog.PublishedAt != nil {
		t.Fatalf("draft should not have a publish date")
	}
	if blog.Excerpt != "Heading Some markdown body text." {
		t.Fatalf("unexpected excerpt %q", blog.Excerpt)
	}
	if len(blog.Tags) != 2 {
		t.Fatalf("expected 2 tags after cleanup, got %v", blog.Tags)
	}
	if blog.ReadingTime != 1 {
		t.Fatalf("expected reading time 1, got %d", blog.ReadingTime)
	}
	if blog.Author == nil || blog.Author.ID != author.ID {
		t.Fatalf("expected author to be preloaded")
	}

	second, err := svc.Create(BlogInput{Title: "Hello World", Content: "again"})
	if err != nil {
		t.Fatalf("create second blog: %v", err)
	}
	if second.Slug != "hello-world-2" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}
}

func TestBlogService_ExplicitSlugConflict(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	if _, err := svc.Create(BlogInput{Title: "First", Slug: "shared", Content: "body"}); err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if _, err := svc.Create(BlogInput{Title: "Second", Slug: "Shared", Content: "body"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if _, err := svc.Create(BlogInput{Title: "Third", Slug: "!!!", Content: "body"}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
	if _, err := svc.Create(BlogInput{Title: "Fourth", Content: "body", Status: "archived"}); !errors.Is(err, ErrBlogStatusInvalid) {
		t.Fatalf("expected ErrBlogStatusInvalid, got %v", err)
	}
}

func TestBlogService_UpdateKeepsOwnSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	blog, err := svc.Create(BlogInput{Title: "Original", Content: "body"})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	updated, err := svc.Update(blog.ID, BlogInput{Title: "Renamed", Content: "new body", Status: db.StatusPublished})
	if err != nil {
		t.Fatalf("update blog: %v", err)
	}
	if updated.Slug != "original" {
		t.Fatalf("expected slug to be kept, got %q", updated.Slug)
	}
	if updated.Title != "Renamed" || !updated.IsPublished() || updated.PublishedAt == nil {
		t.Fatalf("unexpected blog after update: %+v", updated)
	}

	if _, err := svc.Update(9999, BlogInput{Title: "Missing", Content: "x"}); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogService_PublishAndUnpublish(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	blog, err := svc.Create(BlogInput{Title: "Launch", Content: "body"})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	published, err := svc.Publish(blog.ID, nil)
	if err != nil {
		t.Fatalf("publish blog: %v", err)
	}
	if !published.IsPublished() || published.PublishedAt == nil || !published.PublishedAt.Equal(fixed) {
		t.Fatalf("unexpected published blog: %+v", published)
	}

	svc.now = func() time.Time { return fixed.Add(48 * time.Hour) }
	again, err := svc.Publish(blog.ID, nil)
	if err != nil {
		t.Fatalf("republish blog: %v", err)
	}
	if !again.PublishedAt.Equal(fixed) {
		t.Fatalf("republishing should keep original date, got %v", again.PublishedAt)
	}

	draft, err := svc.Unpublish(blog.ID)
	if err != nil {
		t.Fatalf("unpublish blog: %v", err)
	}
	if draft.IsPublished() || draft.PublishedAt != nil {
		t.Fatalf("expected draft without publish date, got %+v", draft)
	}

	if _, err := svc.Publish(9999, nil); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
	if _, err := svc.Unpublish(9999); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogService_ListFiltersAndGet(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	inputs := []BlogInput{
		{Title: "Go Concurrency", Content: "channels", Category: "Engineering", Tags: []string{"go"}, Status: db.StatusPublished},
		{Title: "Cloud Costs", Content: "billing", Category: "Business", Tags: []string{"cloud"}, Status: db.StatusPublished},
		{Title: "Secret Draft", Content: "hidden", Category: "Engineering", Tags: []string{"go"}},
	}
	var draftID uint
	for _, in := range inputs {
		blog, err := svc.Create(in)
		if err != nil {
			t.Fatalf("create %q: %v", in.Title, err)
		}
		if !blog.IsPublished() {
			draftID = blog.ID
		}
	}

	all, err := svc.List(BlogFilter{})
	if err != nil {
		t.Fatalf("list blogs: %v", err)
	}
	if all.Total != 3 || len(all.Items) != 3 {
		t.Fatalf("expected 3 blogs, got total=%d items=%d", all.Total, len(all.Items))
	}

	published, err := svc.List(BlogFilter{Status: db.StatusPublished, Category: "engineering"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if published.Total != 1 || published.Items[0].Title != "Go Concurrency" {
		t.Fatalf("unexpected category result: %+v", published)
	}

	tagged, err := svc.List(BlogFilter{Tag: "GO"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if tagged.Total != 2 {
		t.Fatalf("expected 2 blogs tagged go, got %d", tagged.Total)
	}

	searched, err := svc.List(BlogFilter{Search: "billing"})
	if err != nil {
		t.Fatalf("search blogs: %v", err)
	}
	if searched.Total != 1 {
		t.Fatalf("expected 1 search hit, got %d", searched.Total)
	}

	paged, err := svc.List(BlogFilter{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("page blogs: %v", err)
	}
	if len(paged.Items) != 1 || paged.TotalPages != 2 || paged.Page != 2 {
		t.Fatalf("unexpected paging result: %+v", paged)
	}

	if _, err := svc.Get(strconv.FormatUint(uint64(draftID), 10), true); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("drafts must be hidden from public lookups, got %v", err)
	}
	if _, err := svc.Get("secret-draft", false); err != nil {
		t.Fatalf("expected draft lookup by slug to succeed: %v", err)
	}
	if got, err := svc.Get("cloud-costs", true); err != nil || got.Title != "Cloud Costs" {
		t.Fatalf("expected published lookup by slug, got %v %v", got, err)
	}

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 published categories, got %+v", categories)
	}
	for _, c := range categories {
		if c.Count != 1 {
			t.Fatalf("expected each published category once, got %+v", c)
		}
	}
}

func TestBlogService_Delete(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	blog, err := svc.Create(BlogInput{Title: "Temporary", Content: "body"})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if err := svc.Delete(blog.ID); err != nil {
		t.Fatalf("delete blog: %v", err)
	}
	if err := svc.Delete(blog.ID); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound on second delete, got %v", err)
	}

	if _, err := svc.Create(BlogInput{Title: "Temporary", Content: "body"}); err != nil {
		t.Fatalf("slug should be reusable after delete: %v", err)
	}
}

func TestBlogService_UpdateWithoutStatusKeepsPublication(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	fixed := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	blog, err := svc.Create(BlogInput{Title: "Live Post", Content: "body", Status: db.StatusPublished})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	svc.now = func() time.Time { return fixed.Add(72 * time.Hour) }
	updated, err := svc.Update(blog.ID, BlogInput{Title: "Live Post", Content: "body with a typo fixed"})
	if err != nil {
		t.Fatalf("update blog: %v", err)
	}
	if !updated.IsPublished() {
		t.Fatalf("expected blog to stay published, got %q", updated.Status)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(fixed) {
		t.Fatalf("expected original publish date %v, got %v", fixed, updated.PublishedAt)
	}

	draft, err := svc.Update(blog.ID, BlogInput{Title: "Live Post", Content: "body", Status: db.StatusDraft})
	if err != nil {
		t.Fatalf("move to draft: %v", err)
	}
	if draft.IsPublished() || draft.PublishedAt != nil {
		t.Fatalf("explicit draft status should unpublish, got %+v", draft)
	}

	if _, err := svc.Update(blog.ID, BlogInput{Title: "Live Post", Content: "body", Status: "archived"}); !errors.Is(err, ErrBlogStatusInvalid) {
		t.Fatalf("expected ErrBlogStatusInvalid, got %v", err)
	}
}

func TestBlogService_TagFilterMatchesWholeTags(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	for _, in := range []BlogInput{
		{Title: "German Notes", Content: "body", Tags: []string{"Überblick"}},
		{Title: "Lab Report", Content: "body", Tags: []string{"R&D", "<html>"}},
		{Title: "Go Basics", Content: "body", Tags: []string{"go"}},
		{Title: "Gopher Life", Content: "body", Tags: []string{"gopher"}},
	} {
		if _, err := svc.Create(in); err != nil {
			t.Fatalf("create %q: %v", in.Title, err)
		}
	}

	cases := map[string]int64{
		"Überblick": 1,
		"überblick": 1,
		"R&D":       1,
		"r&d":       1,
		"<HTML>":    1,
		"go":        1,
		"%":         0,
		"go%":       0,
		"g_":        0,
	}
	for tag, want := range cases {
		result, err := svc.List(BlogFilter{Tag: tag})
		if err != nil {
			t.Fatalf("list by tag %q: %v", tag, err)
		}
		if result.Total != want {
			t.Fatalf("tag %q: expected %d blogs, got %d", tag, want, result.Total)
		}
	}
}

func TestBlogService_SearchTreatsWildcardsLiterally(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	for _, title := range []string{"Growth of 50% in a year", "Plain title", "snake_case naming"} {
		if _, err := svc.Create(BlogInput{Title: title, Content: "body"}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	cases := map[string]int64{
		"%":     1,
		"50%":   1,
		"_":     1,
		"e_c":   1,
		"title": 1,
		`\`:     0,
	}
	for search, want := range cases {
		result, err := svc.List(BlogFilter{Search: search})
		if err != nil {
			t.Fatalf("search %q: %v", search, err)
		}
		if result.Total != want {
			t.Fatalf("search %q: expected %d blogs, got %d", search, want, result.Total)
		}
	}
}

func TestBlogService_ListByAuthorAndCount(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	alice := createTestUser(t, gdb, "alice@example.com", db.RoleEditor)
	bob := createTestUser(t, gdb, "bob@example.com", db.RoleEditor)

	if _, err := svc.Create(BlogInput{Title: "Alice Writes", Content: "body", AuthorID: alice.ID, Status: db.StatusPublished}); err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if _, err := svc.Create(BlogInput{Title: "Bob Drafts", Content: "body", AuthorID: bob.ID}); err != nil {
		t.Fatalf("create blog: %v", err)
	}

	byAlice, err := svc.List(BlogFilter{AuthorID: alice.ID})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if byAlice.Total != 1 || byAlice.Items[0].Title != "Alice Writes" {
		t.Fatalf("unexpected author result: %+v", byAlice)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("count blogs: %v", err)
	}
	if count != (ContentCount{Total: 2, Published: 1, Drafts: 1}) {
		t.Fatalf("unexpected count %+v", count)
	}
}
