package constants

// RangeKind selects the span produced by the range generator
type RangeKind string

// CSVDialect selects how CSV fields are written and read
type CSVDialect string

const (
	// Cell defaults
	DefaultCellColor = "#ffffff"
	LightFontColor   = "#ffffff"
	DarkFontColor    = "#000000"

	// NoCategory is the bucket used for tagged hours without a category
	NoCategory = "no category"

	// CSV
	CSVHeader = "Date,Weekday,Hour,Color,Activity,Category"
	CSVBOM    = "\uFEFF"

	CSVDialectPlain  CSVDialect = "plain"
	CSVDialectQuoted CSVDialect = "quoted"

	// Range kinds
	RangeWeek  RangeKind = "week"
	RangeMonth RangeKind = "month"
)

// CSVColumns lists the expected header tokens in order.
var CSVColumns = []string{"Date", "Weekday", "Hour", "Color", "Activity", "Category"}

// Weekdays holds the abbreviations stored on day records, indexed by time.Weekday.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
