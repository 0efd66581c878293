package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStatus("http://localhost:8000/api/", &types.APIStatus{
		Message:       "Welcome",
		Authenticated: true,
		Endpoints:     map[string]string{"jobs": "/api/jobs/", "bookmarks": "/api/bookmarks/"},
	}, true)
	output := buf.String()

	assert.Contains(t, output, "API STATUS")
	assert.Contains(t, output, "Authenticated: true")
	assert.Contains(t, output, "CSRF cookie:   true")
	assert.Less(t, strings.Index(output, "bookmarks"), strings.Index(output, "jobs"))
}

func TestPrintStatus_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStatus("x", nil, false)
	assert.Empty(t, buf.String())
}

func TestPrintAuth_NoToken(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAuth("LOGIN", &types.AuthResponse{Username: "ana", Email: "ana@example.com"})

	output := buf.String()
	assert.Contains(t, output, "Signed in as ana <ana@example.com>")
	assert.Contains(t, output, "No token was issued")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.User{
		Username:  "ana",
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Silva",
		Location:  "Lisbon",
		Bio:       "Backend engineer who likes distributed systems and writing small sharp tools in Go.",
		Stats:     &types.UserStats{ResumeCount: 2, BookmarkCount: 5},
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "Ana Silva")
	assert.Contains(t, output, "Lisbon")
	assert.Contains(t, output, "distributed")
	assert.Contains(t, output, "Resumes: 2   Bookmarks: 5")
}

func TestPrintResumes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumes([]types.Resume{
		{ID: 1, Name: "cv.pdf", UploadedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Skills: []string{"go", "sql"}},
		{ID: 2, Name: "cv-old.docx"},
	})
	output := buf.String()

	assert.Contains(t, output, "RESUMES (2)")
	assert.Contains(t, output, "[1] cv.pdf")
	assert.Contains(t, output, "Uploaded: 2024-03-01")
	assert.Contains(t, output, "Skills: go, sql")
	assert.Contains(t, output, "[2] cv-old.docx")
}

func TestPrintEmptyLists(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{name: "resumes", print: func(p *Printer) { p.PrintResumes(nil) }, want: "No resumes uploaded."},
		{name: "jobs", print: func(p *Printer) { p.PrintJobs(nil) }, want: "No jobs found."},
		{name: "matches", print: func(p *Printer) { p.PrintMatches([]types.JobMatch{}) }, want: "No matches found."},
		{name: "bookmarks", print: func(p *Printer) { p.PrintBookmarks(nil) }, want: "No bookmarks saved."},
		{name: "applications", print: func(p *Printer) { p.PrintApplications(nil) }, want: "No applications tracked."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintJobs_StripsHTML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobs([]types.Job{{
		ID:          "12",
		Title:       "Go Developer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "<p>Build <b>APIs</b></p><script>track()</script>",
	}})
	output := buf.String()

	assert.Contains(t, output, "[12] Go Developer")
	assert.Contains(t, output, "Acme · Remote")
	assert.Contains(t, output, "Build APIs")
	assert.NotContains(t, output, "<b>")
	assert.NotContains(t, output, "track()")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches([]types.JobMatch{{
		Job:           types.Job{Title: "SRE", Company: "Acme"},
		TFIDFScore:    0.731,
		SkillScore:    2,
		MatchedSkills: []string{"linux", "go"},
	}})
	output := buf.String()

	assert.Contains(t, output, "JOB MATCHES (1)")
	assert.Contains(t, output, "#1  SRE @ Acme")
	assert.Contains(t, output, "Similarity: 0.73")
	assert.Contains(t, output, "Skills: linux, go")
}

func TestPrintApplications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintApplications([]types.Application{{
		ID: 3, JobID: 4, ResumeID: 1, Status: types.StatusInterview,
		NextStep: "Onsite", NextStepDate: "2024-06-01", Notes: "bring laptop",
	}})
	output := buf.String()

	assert.Contains(t, output, "[3] job 4 with resume 1: Interview")
	assert.Contains(t, output, "Next: Onsite on 2024-06-01")
	assert.Contains(t, output, "Notes: bring laptop")
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resumes := make([]types.Resume, 7)
	for i := range resumes {
		resumes[i] = types.Resume{ID: i + 1, Name: "cv.pdf"}
	}

	p.PrintDashboard(&types.UserProfile{
		User:    types.User{Username: "ana", FirstName: "Ana"},
		Stats:   types.UserStats{ResumeCount: 7, BookmarkCount: 1},
		Resumes: resumes,
		RecentBookmarks: []types.Bookmark{
			{JobID: 9, JobTitle: "SRE", JobCompany: "Acme"},
		},
		Applications: []types.Application{
			{Status: types.StatusApplied},
			{Status: types.StatusApplied},
			{Status: types.StatusOffer},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "DASHBOARD")
	assert.Contains(t, output, "Ana (ana)")
	assert.Contains(t, output, "Applications: 3")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "[9] SRE @ Acme")
	assert.Contains(t, output, "Applied    2")
	assert.Contains(t, output, "Offer      1")
	assert.NotContains(t, output, "Rejected")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMessage("NOTE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Nil(t, wrap("   ", 10))
}
