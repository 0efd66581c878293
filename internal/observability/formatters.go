// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/cvmatch-client/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in summary lists
	maxItemsToShow = 5
	// descriptionPreview is the number of characters of a job description shown
	descriptionPreview = 110
	dateLayout         = "2006-01-02"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintMessage outputs a one-line confirmation in a box.
func (p *Printer) PrintMessage(title, message string) {
	p.printBox(title, message)
}

// PrintStatus outputs the API root response.
func (p *Printer) PrintStatus(baseURL string, status *types.APIStatus, csrfFound bool) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("API:           %s\n", baseURL))
	sb.WriteString(fmt.Sprintf("Message:       %s\n", orDash(status.Message)))
	sb.WriteString(fmt.Sprintf("Authenticated: %t\n", status.Authenticated))
	sb.WriteString(fmt.Sprintf("CSRF cookie:   %t", csrfFound))

	if len(status.Endpoints) > 0 {
		names := make([]string, 0, len(status.Endpoints))
		for name := range status.Endpoints {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString("\n\nEndpoints:")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("\n  • %-12s %s", name, status.Endpoints[name]))
		}
	}

	p.printBox("API STATUS", sb.String())
}

// PrintAuth outputs the result of a login or registration.
func (p *Printer) PrintAuth(title string, resp *types.AuthResponse) {
	if resp == nil {
		return
	}
	content := fmt.Sprintf("Signed in as %s", resp.Username)
	if resp.Email != "" {
		content += fmt.Sprintf(" <%s>", resp.Email)
	}
	if resp.Token == "" {
		content += "\nNo token was issued; later calls are unauthenticated."
	}
	p.printBox(title, content)
}

// PrintProfile outputs the user's profile.
func (p *Printer) PrintProfile(user *types.User) {
	if user == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", user.FullName()))
	sb.WriteString(fmt.Sprintf("Username: %s\n", user.Username))
	sb.WriteString(fmt.Sprintf("Email:    %s", orDash(user.Email)))
	if user.Phone != "" {
		sb.WriteString(fmt.Sprintf("\nPhone:    %s", user.Phone))
	}
	if user.Location != "" {
		sb.WriteString(fmt.Sprintf("\nLocation: %s", user.Location))
	}
	if user.Bio != "" {
		sb.WriteString("\n\nBio:")
		for _, line := range wrap(user.Bio, boxWidth-6) {
			sb.WriteString("\n  " + line)
		}
	}
	if user.Stats != nil {
		sb.WriteString(fmt.Sprintf("\n\nResumes: %d   Bookmarks: %d", user.Stats.ResumeCount, user.Stats.BookmarkCount))
	}

	p.printBox("PROFILE", sb.String())
}

// PrintResumes outputs uploaded resumes with their parsed skills.
func (p *Printer) PrintResumes(resumes []types.Resume) {
	if len(resumes) == 0 {
		p.printBox("RESUMES", "No resumes uploaded.")
		return
	}

	var sb strings.Builder
	for i, r := range resumes {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", r.ID, r.Name))
		if !r.UploadedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("    Uploaded: %s\n", r.UploadedAt.Format(dateLayout)))
		}
		if len(r.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(r.Skills, ", ")))
		}
		if i < len(resumes)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RESUMES (%d)", len(resumes)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs job postings with a plain-text description preview.
func (p *Printer) PrintJobs(jobs []types.Job) {
	if len(jobs) == 0 {
		p.printBox("JOBS", "No jobs found.")
		return
	}

	var sb strings.Builder
	for i, job := range jobs {
		writeJob(&sb, job)
		if i < len(jobs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("JOBS (%d)", len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

func writeJob(sb *strings.Builder, job types.Job) {
	id := job.ID
	if id == "" {
		id = "-"
	}
	sb.WriteString(fmt.Sprintf("[%s] %s\n", id, orDash(job.Title)))
	sb.WriteString(fmt.Sprintf("    %s · %s\n", orDash(job.Company), orDash(job.Location)))
	if job.Salary != "" {
		sb.WriteString(fmt.Sprintf("    Salary: %s\n", job.Salary))
	}
	if desc := job.PlainDescription(); desc != "" {
		for _, line := range wrap(truncate(desc, descriptionPreview), boxWidth-8) {
			sb.WriteString("    " + line + "\n")
		}
	}
}

// PrintMatches outputs job matches with their scores and matched skills.
func (p *Printer) PrintMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		p.printBox("JOB MATCHES", "No matches found.")
		return
	}

	var sb strings.Builder
	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("#%d  %s @ %s\n", i+1, orDash(m.Job.Title), orDash(m.Job.Company)))
		sb.WriteString(fmt.Sprintf("    Similarity: %.2f  Skills matched: %d\n", m.TFIDFScore, m.SkillScore))
		if len(m.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(m.MatchedSkills, ", ")))
		}
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("JOB MATCHES (%d)", len(matches)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBookmarks outputs saved jobs.
func (p *Printer) PrintBookmarks(bookmarks []types.Bookmark) {
	if len(bookmarks) == 0 {
		p.printBox("BOOKMARKS", "No bookmarks saved.")
		return
	}
	p.printBox(fmt.Sprintf("BOOKMARKS (%d)", len(bookmarks)), bookmarkLines(bookmarks))
}

func bookmarkLines(bookmarks []types.Bookmark) string {
	var sb strings.Builder
	for _, b := range bookmarks {
		title := b.JobTitle
		if title == "" {
			title = fmt.Sprintf("job %d", b.JobID)
		}
		sb.WriteString(fmt.Sprintf("• [%d] %s", b.JobID, title))
		if b.JobCompany != "" {
			sb.WriteString(" @ " + b.JobCompany)
		}
		if !b.CreatedAt.IsZero() {
			sb.WriteString(" (" + b.CreatedAt.Format(dateLayout) + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// PrintApplications outputs tracked applications.
func (p *Printer) PrintApplications(apps []types.Application) {
	if len(apps) == 0 {
		p.printBox("APPLICATIONS", "No applications tracked.")
		return
	}

	var sb strings.Builder
	for i, a := range apps {
		sb.WriteString(fmt.Sprintf("[%d] job %d with resume %d: %s\n", a.ID, a.JobID, a.ResumeID, orDash(string(a.Status))))
		if a.AppliedDate != "" {
			sb.WriteString(fmt.Sprintf("    Applied: %s\n", a.AppliedDate))
		}
		if a.NextStep != "" {
			next := a.NextStep
			if a.NextStepDate != "" {
				next += " on " + a.NextStepDate
			}
			sb.WriteString(fmt.Sprintf("    Next: %s\n", next))
		}
		if a.Notes != "" {
			sb.WriteString(fmt.Sprintf("    Notes: %s\n", a.Notes))
		}
		if i < len(apps)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(apps)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs the aggregated profile summary.
func (p *Printer) PrintDashboard(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)\n", profile.User.FullName(), profile.User.Username))
	sb.WriteString(fmt.Sprintf("Resumes: %d   Bookmarks: %d   Applications: %d\n",
		profile.Stats.ResumeCount, profile.Stats.BookmarkCount, len(profile.Applications)))

	if len(profile.Resumes) > 0 {
		sb.WriteString("\nResumes:\n")
		count := min(len(profile.Resumes), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Resumes[i].Name))
		}
		if len(profile.Resumes) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Resumes)-maxItemsToShow))
		}
	}

	if len(profile.RecentBookmarks) > 0 {
		sb.WriteString("\nRecent bookmarks:\n")
		for _, line := range strings.Split(bookmarkLines(profile.RecentBookmarks), "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	if len(profile.Applications) > 0 {
		byStatus := make(map[types.ApplicationStatus]int)
		for _, a := range profile.Applications {
			byStatus[a.Status]++
		}
		sb.WriteString("\nApplications:\n")
		for _, status := range types.ApplicationStatuses {
			if n := byStatus[status]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s %d\n", status, n))
			}
		}
	}

	p.printBox("DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}
