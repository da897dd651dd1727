package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// ExportHeaders is the column layout of the CSV export. Downstream tooling depends on it.
var ExportHeaders = []string{
	"Name",
	"Contact",
	"Date of Experience",
	"Date of Submission",
	"Overall Experience",
	"Quality of Service",
	"Timeliness",
	"Professionalism",
	"Communication Ease",
	"Liked Most",
	"Suggestions",
	"Would Recommend",
	"Permission to Publish",
	"Can Contact Again",
	"Before Image URL",
	"After Image URL",
}

const ExportContentType = "text/csv"

// RenderCSV writes a header line followed by one line per record.
// Free text is wrapped in quotes as-is: embedded quotes and commas are not escaped.
func RenderCSV(records []domain.Submission, mediaBaseURL string) []byte {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(ExportHeaders, ","))
	for _, r := range records {
		lines = append(lines, strings.Join(exportRow(r, mediaBaseURL), ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

func exportRow(r domain.Submission, mediaBaseURL string) []string {
	return []string{
		r.Name,
		r.Contact.String(),
		r.DateOfExperience.String(),
		r.DateOfSubmission.String(),
		strconv.Itoa(r.OverallExperience.Int()),
		r.QualityOfService.String(),
		r.Timeliness.String(),
		r.Professionalism.String(),
		r.CommunicationEase.String(),
		quote(r.LikedMost),
		quote(r.Suggestions),
		quote(r.WouldRecommend),
		yesNo(r.PermissionToPublish),
		yesNo(r.CanContactAgain),
		imageCell(mediaBaseURL, r.BeforeImageKey),
		imageCell(mediaBaseURL, r.AfterImageKey),
	}
}

// ExportFileName names the download after the export date.
func ExportFileName(now time.Time) string {
	return "feedback-export-" + now.Format(domain.DateLayout) + ".csv"
}

// BlobURL resolves a storage key against the public media base path.
func BlobURL(base string, key domain.BlobKey) string {
	if !key.Present() {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + key.String()
}

func imageCell(base string, key domain.BlobKey) string {
	if !key.Present() {
		return ""
	}
	return quote(BlobURL(base, key))
}

func quote(s string) string {
	return `"` + s + `"`
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
