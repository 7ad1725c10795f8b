package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const MimeText = "text/plain"

// ExamCategories is the known category set used by the browse screens; the
// parser accepts free-form categories, this list only drives UI grouping.
var ExamCategories = []string{
	"Current Affairs",
	"Static GK",
	"Indian Polity",
	"Geography",
	"History",
	"Economy",
	"Science",
	"Reasoning",
	"Quantitative Aptitude",
	"English",
}
