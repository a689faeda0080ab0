package validation

import (
	"fmt"
	"slices"

	"github.com/julianstephens/hourlog/internal/colors"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictKeyMismatch       ConflictType = "key_mismatch"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictWeekdayMismatch   ConflictType = "weekday_mismatch"
	ConflictInvalidColor      ConflictType = "invalid_color"
	ConflictUnknownCategory   ConflictType = "unknown_category"
	ConflictDuplicatePreset   ConflictType = "duplicate_preset"
	ConflictDuplicateCategory ConflictType = "duplicate_category"
	ConflictInvalidTimezone   ConflictType = "invalid_timezone"
)

// Severity separates data that breaks export or rendering from data that is merely untidy.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents one problem found in the table or settings
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Date        string // YYYY-MM-DD (if applicable)
	Hour        int    // -1 when not tied to a cell
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return report
}

// Validator checks a time table against its settings
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateTable checks every day record in date order. Categories are compared
// against settings.ActivityCategories.
func (v *Validator) ValidateTable(table models.TimeTable, settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, key := range table.Dates() {
		day := table[key]

		if day.Date != key {
			result.add(Conflict{
				Type:        ConflictKeyMismatch,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Day stored under %s claims date %s", key, day.Date),
				Date:        key,
				Hour:        -1,
			})
		}

		date, err := utils.ParseDate(key)
		if err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Day key %q is not a YYYY-MM-DD date", key),
				Date:        key,
				Hour:        -1,
			})
		} else if want := utils.WeekdayAbbrev(date); day.Weekday != want {
			result.add(Conflict{
				Type:        ConflictWeekdayMismatch,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("%s is stored as %q, calendar says %q", key, day.Weekday, want),
				Date:        key,
				Hour:        -1,
			})
		}

		for hour, cell := range day.Hours {
			if _, ok := colors.Normalize(cell.Color); !ok {
				result.add(Conflict{
					Type:        ConflictInvalidColor,
					Severity:    SeverityWarning,
					Description: fmt.Sprintf("%s %d:00 has invalid color %q", key, hour, cell.Color),
					Date:        key,
					Hour:        hour,
				})
			}
			if cell.Category != "" && !slices.Contains(settings.ActivityCategories, cell.Category) {
				result.add(Conflict{
					Type:        ConflictUnknownCategory,
					Severity:    SeverityWarning,
					Description: fmt.Sprintf("%s %d:00 uses category %q missing from the category list", key, hour, cell.Category),
					Date:        key,
					Hour:        hour,
				})
			}
		}
	}

	return result
}

// ValidateSettings checks the preset lists and timezone.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool)
	for _, preset := range settings.ColorPresets {
		if seen[preset] {
			result.add(Conflict{
				Type:        ConflictDuplicatePreset,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Color preset %q is listed more than once", preset),
				Hour:        -1,
			})
		}
		seen[preset] = true
		if _, ok := colors.Normalize(preset); !ok {
			result.add(Conflict{
				Type:        ConflictInvalidColor,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Color preset %q is not a hex color", preset),
				Hour:        -1,
			})
		}
	}

	seen = make(map[string]bool)
	for _, category := range settings.ActivityCategories {
		if seen[category] {
			result.add(Conflict{
				Type:        ConflictDuplicateCategory,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Category %q is listed more than once", category),
				Hour:        -1,
			})
		}
		seen[category] = true
	}

	if !utils.ValidateTimezone(settings.Timezone) {
		result.add(Conflict{
			Type:        ConflictInvalidTimezone,
			Severity:    SeverityError,
			Description: fmt.Sprintf("Timezone %q is not a known IANA zone", settings.Timezone),
			Hour:        -1,
		})
	}

	return result
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}
