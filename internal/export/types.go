package export

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts the format names the export and import commands take.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), true
	default:
		return "", false
	}
}
