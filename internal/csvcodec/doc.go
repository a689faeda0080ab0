// Package csvcodec converts a time table to and from the flat CSV layout
//
//	Date,Weekday,Hour,Color,Activity,Category
//	2025-01-01,Wed,9:00,#ff0000,Write,Work
//
// The default "plain" dialect splits on every comma and never quotes, so a comma
// inside an activity or category corrupts its row. The "quoted" dialect reads and
// writes RFC 4180 quoting for those fields. Plain stays the default so files
// exported by older versions keep importing.
package csvcodec
