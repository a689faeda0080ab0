package models

import "slices"

// Settings represents the user's persisted preference lists
type Settings struct {
	ColorPresets       []string `json:"colorPresets"`       // quick-pick colors, in insertion order
	ActivityCategories []string `json:"activityCategories"` // known categories, in insertion order
	Timezone           string   `json:"timezone"`           // IANA timezone name or "Local"
}

// AddColorPresets appends colors that are not yet present and returns how many were added.
func (s *Settings) AddColorPresets(colors ...string) int {
	var added int
	s.ColorPresets, added = appendUnique(s.ColorPresets, colors)
	return added
}

// AddCategories appends categories that are not yet present and returns how many were added.
func (s *Settings) AddCategories(categories ...string) int {
	var added int
	s.ActivityCategories, added = appendUnique(s.ActivityCategories, categories)
	return added
}

// RemoveColorPreset deletes the first matching preset.
func (s *Settings) RemoveColorPreset(color string) bool {
	var ok bool
	s.ColorPresets, ok = removeValue(s.ColorPresets, color)
	return ok
}

// RemoveCategory deletes the first matching category.
func (s *Settings) RemoveCategory(category string) bool {
	var ok bool
	s.ActivityCategories, ok = removeValue(s.ActivityCategories, category)
	return ok
}

// EditColorPreset replaces a preset in place. When the new color is already
// present the old entry is dropped instead.
func (s *Settings) EditColorPreset(from, to string) bool {
	var ok bool
	s.ColorPresets, ok = replaceValue(s.ColorPresets, from, to)
	return ok
}

// EditCategory renames a category in place.
func (s *Settings) EditCategory(from, to string) bool {
	var ok bool
	s.ActivityCategories, ok = replaceValue(s.ActivityCategories, from, to)
	return ok
}

func appendUnique(list []string, values []string) ([]string, int) {
	added := 0
	for _, v := range values {
		if v == "" || slices.Contains(list, v) {
			continue
		}
		list = append(list, v)
		added++
	}
	return list, added
}

func removeValue(list []string, value string) ([]string, bool) {
	i := slices.Index(list, value)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

func replaceValue(list []string, from, to string) ([]string, bool) {
	i := slices.Index(list, from)
	if i < 0 || to == "" {
		return list, false
	}
	if from != to && slices.Contains(list, to) {
		return slices.Delete(list, i, i+1), true
	}
	list[i] = to
	return list, true
}
