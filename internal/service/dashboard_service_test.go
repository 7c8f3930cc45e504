package service

import (
	"testing"

	"github.com/sitecms/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	gdb := setupServiceTestDB(t)
	createTestUser(t, gdb, "admin@example.com", db.RoleAdmin)

	blogs := NewBlogService(gdb)
	_, err := blogs.Create(BlogInput{Title: "Live", Content: "body", Status: db.StatusPublished})
	require.NoError(t, err)
	_, err = blogs.Create(BlogInput{Title: "Draft", Content: "body"})
	require.NoError(t, err)

	_, err = NewOfferingService(gdb).Create(OfferingInput{Title: "Consulting", Summary: "Advice", Published: true})
	require.NoError(t, err)

	enquiries := NewEnquiryService(gdb)
	for i := 0; i < 7; i++ {
		_, err := enquiries.Create(EnquiryInput{Name: "Visitor", Email: "v@example.com", Message: "Please call me back"})
		require.NoError(t, err)
	}

	summary, err := NewDashboardService(gdb).Summary()
	require.NoError(t, err)

	assert.Equal(t, ContentCount{Total: 2, Published: 1, Drafts: 1}, summary.Blogs)
	assert.Equal(t, ContentCount{Total: 1, Published: 1}, summary.Services)
	assert.Equal(t, ContentCount{}, summary.Solutions)
	assert.EqualValues(t, 1, summary.Users)
	assert.EqualValues(t, 7, summary.Enquiries)
	assert.Len(t, summary.LatestEnquiries, dashboardLatestEnquiries)
	assert.Len(t, summary.RecentBlogs, 2)
	require.NotEmpty(t, summary.EnquiryStatuses)
	assert.Equal(t, db.EnquiryStatusNew, summary.EnquiryStatuses[0].Status)
	assert.EqualValues(t, 7, summary.EnquiryStatuses[0].Count)
}
