package comments

import (
	"fmt"
	"strings"
)

// Record is a single GitHub comment from the input log.
type Record struct {
	Repository  string `json:"repository"`
	CreatedAt   string `json:"created_at"`
	CommentBody string `json:"comment_body"`
	IssueNumber *int64 `json:"issue_number"`
	IssueTitle  string `json:"issue_title"`
}

// Format renders the record into the fixed prompt template. Missing fields
// fall back to placeholder values rather than dropping the line.
func (r Record) Format() string {
	repo := r.Repository
	if repo == "" {
		repo = "unknown"
	}
	date := r.CreatedAt
	if date == "" {
		date = "unknown"
	}
	issue := "N/A"
	if r.IssueNumber != nil {
		issue = fmt.Sprintf("%d", *r.IssueNumber)
	}
	title := r.IssueTitle
	if title == "" {
		title = "N/A"
	}
	return fmt.Sprintf("Repository: %s\nDate: %s\nComment: %s\nContext: Issue #%s - %s\n---",
		repo, date, r.CommentBody, issue, title)
}

// FormatBatch renders every record and joins them with newlines, producing
// the comment section of an analysis prompt.
func FormatBatch(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, r.Format())
	}
	return strings.Join(parts, "\n")
}
