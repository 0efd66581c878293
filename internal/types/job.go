package types

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Job is a job posting as listed by the backend. ID is absent for postings
// that came straight from the scraped feed.
type Job struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	DatePosted  string   `json:"date_posted,omitempty"`
	Source      string   `json:"source,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Salary      string   `json:"salary,omitempty"`
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              flexString  `json:"id"`
		Title           string      `json:"title"`
		Company         string      `json:"company"`
		Location        string      `json:"location"`
		Description     string      `json:"description"`
		URL             string      `json:"url"`
		DatePosted      *flexString `json:"date_posted"`
		DatePostedCamel *flexString `json:"datePosted"`
		PostedDate      *flexString `json:"postedDate"`
		Source          string      `json:"source"`
		Skills          flexList    `json:"skills"`
		Salary          flexString  `json:"salary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*j = Job{
		ID:          string(raw.ID),
		Title:       raw.Title,
		Company:     raw.Company,
		Location:    raw.Location,
		Description: raw.Description,
		URL:         raw.URL,
		DatePosted:  string(first(raw.DatePosted, raw.DatePostedCamel, raw.PostedDate)),
		Source:      raw.Source,
		Skills:      []string(raw.Skills),
		Salary:      string(raw.Salary),
	}
	return nil
}

// PlainDescription returns the description with HTML markup removed and
// whitespace collapsed.
func (j Job) PlainDescription() string {
	if !strings.ContainsAny(j.Description, "<&") {
		return collapseSpace(j.Description)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(j.Description))
	if err != nil {
		return collapseSpace(j.Description)
	}
	doc.Find("script, style, noscript").Remove()
	// Block boundaries would otherwise glue adjacent words together
	doc.Find("p, div, li, br, tr, h1, h2, h3, h4, h5, h6").AfterHtml(" ")
	return collapseSpace(doc.Text())
}

// JobMatch is a backend-computed relevance score linking a resume to a job.
type JobMatch struct {
	Job           Job      `json:"job"`
	TFIDFScore    float64  `json:"tfidf_score"`
	SkillScore    int      `json:"skill_score"`
	MatchedSkills []string `json:"matched_skills"`
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
