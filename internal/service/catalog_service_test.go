package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func TestOfferingService_SortOrderAndVisibility(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewOfferingService(gdb)

	first, err := svc.Create(OfferingInput{Title: "Web Development", Summary: "Sites", Features: []string{"SEO", "seo", "CMS"}, Published: true})
	require.NoError(t, err)
	second, err := svc.Create(OfferingInput{Title: "Cloud Migration", Summary: "Move to cloud"})
	require.NoError(t, err)
	pinned, err := svc.Create(OfferingInput{Title: "Strategy", Summary: "Advice", SortOrder: intPtr(0), Published: true})
	require.NoError(t, err)

	assert.Equal(t, 1, first.SortOrder)
	assert.Equal(t, 2, second.SortOrder)
	assert.Equal(t, 0, pinned.SortOrder)
	assert.Equal(t, []string{"SEO", "CMS"}, first.Features)
	assert.Equal(t, "web-development", first.Slug)

	all, err := svc.List(CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "Strategy", all.Items[0].Title)

	public, err := svc.List(CatalogFilter{Published: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, public.Total)

	_, err = svc.Get("cloud-migration", true)
	assert.ErrorIs(t, err, ErrOfferingNotFound)
	got, err := svc.Get("cloud-migration", false)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	updated, err := svc.Update(second.ID, OfferingInput{Title: "Cloud Migration", Summary: "Updated", Published: true})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SortOrder, "sort order is kept when not supplied")
	assert.True(t, updated.Published)

	_, err = svc.Update(second.ID, OfferingInput{Title: "Clash", Slug: "strategy", Summary: "x"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	require.NoError(t, svc.Delete(first.ID))
	assert.ErrorIs(t, svc.Delete(first.ID), ErrOfferingNotFound)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count.Total)
	assert.Equal(t, count.Total-count.Published, count.Drafts)
}

func TestSolutionService_CRUD(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSolutionService(gdb)

	item, err := svc.Create(SolutionInput{
		Title:      "Retail Platform",
		Summary:    "Commerce for retailers",
		Industries: []string{"Retail", "E-commerce"},
		Benefits:   []string{"Faster checkout"},
		Published:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "retail-platform", item.Slug)

	found, err := svc.List(CatalogFilter{Search: "commerce"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, found.Total)

	updated, err := svc.Update(item.ID, SolutionInput{Title: "Retail Suite", Slug: "retail-suite", Summary: "Commerce", SortOrder: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, "retail-suite", updated.Slug)
	assert.Equal(t, 5, updated.SortOrder)
	assert.False(t, updated.Published)

	_, err = svc.Get("retail-suite", true)
	assert.True(t, errors.Is(err, ErrSolutionNotFound))

	_, err = svc.Update(999, SolutionInput{Title: "Missing"})
	assert.ErrorIs(t, err, ErrSolutionNotFound)

	require.NoError(t, svc.Delete(item.ID))
}

func TestCaseStudyService_Filters(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCaseStudyService(gdb)

	inputs := []CaseStudyInput{
		{Title: "Bank Modernisation", Client: "Big Bank", Industry: "Finance", Summary: "Core banking", Published: true},
		{Title: "Clinic Portal", Client: "Health Co", Industry: "Healthcare", Summary: "Patient portal", Featured: true, Published: true},
		{Title: "Unreleased", Client: "Secret", Industry: "Finance", Summary: "Hidden"},
	}
	for _, in := range inputs {
		_, err := svc.Create(in)
		require.NoError(t, err)
	}

	public, err := svc.List(CaseStudyFilter{Published: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, public.Items, 2)
	assert.Equal(t, "Clinic Portal", public.Items[0].Title, "featured case studies come first")

	finance, err := svc.List(CaseStudyFilter{Industry: "finance"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, finance.Total)

	featured, err := svc.List(CaseStudyFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, featured.Total)

	byClient, err := svc.List(CaseStudyFilter{Search: "Big Bank"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byClient.Total)

	_, err = svc.Get("unreleased", true)
	assert.ErrorIs(t, err, ErrCaseStudyNotFound)

	item, err := svc.Get("bank-modernisation", true)
	require.NoError(t, err)
	assert.Equal(t, "Big Bank", item.Client)

	assert.ErrorIs(t, svc.Delete(12345), ErrCaseStudyNotFound)
}
