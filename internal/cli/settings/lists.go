package settings

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/colors"
	"github.com/julianstephens/hourlog/internal/timetable"
)

// list binds one editable string list in the settings.
type list struct {
	noun   string
	plural string
	get    func(s *timetable.Session) []string
	add    func(s *timetable.Session, values ...string) int
	remove func(s *timetable.Session, value string) bool
	edit   func(s *timetable.Session, from, to string) bool
}

var presetList = list{
	noun:   "color preset",
	plural: "color presets",
	get:    func(s *timetable.Session) []string { return s.Settings.ColorPresets },
	add:    func(s *timetable.Session, v ...string) int { return s.Settings.AddColorPresets(v...) },
	remove: func(s *timetable.Session, v string) bool { return s.Settings.RemoveColorPreset(v) },
	edit:   func(s *timetable.Session, from, to string) bool { return s.Settings.EditColorPreset(from, to) },
}

var categoryList = list{
	noun:   "category",
	plural: "categories",
	get:    func(s *timetable.Session) []string { return s.Settings.ActivityCategories },
	add:    func(s *timetable.Session, v ...string) int { return s.Settings.AddCategories(v...) },
	remove: func(s *timetable.Session, v string) bool { return s.Settings.RemoveCategory(v) },
	edit:   func(s *timetable.Session, from, to string) bool { return s.Settings.EditCategory(from, to) },
}

func (l list) print(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	values := l.get(s)
	if len(values) == 0 {
		ctx.Printf("No %s defined.\n", l.plural)
		return nil
	}
	for i, v := range values {
		ctx.Printf("  %2d. %s\n", i+1, v)
	}
	return nil
}

func (l list) addValues(ctx *cli.Context, values []string) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	added := l.add(s, values...)
	if added == 0 {
		ctx.Printf("No new %s to add.\n", l.plural)
		return nil
	}
	if err := s.SaveSettings(); err != nil {
		return err
	}
	ctx.Printf("✓ Added %d %s\n", added, l.plural)
	return nil
}

func (l list) removeValue(ctx *cli.Context, value string) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if !l.remove(s, value) {
		return fmt.Errorf("%s not found: %s", l.noun, value)
	}
	if err := s.SaveSettings(); err != nil {
		return err
	}
	ctx.Printf("✓ Removed %s %s\n", l.noun, value)
	return nil
}

func (l list) editValue(ctx *cli.Context, from, to string) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if !l.edit(s, from, to) {
		return fmt.Errorf("%s not found: %s", l.noun, from)
	}
	if err := s.SaveSettings(); err != nil {
		return err
	}
	ctx.Printf("✓ Changed %s %s to %s\n", l.noun, from, to)
	return nil
}

type PresetsCmd struct {
	List   PresetsListCmd   `cmd:"" help:"List color presets." default:"1"`
	Add    PresetsAddCmd    `cmd:"" help:"Add color presets."`
	Edit   PresetsEditCmd   `cmd:"" help:"Replace a color preset."`
	Remove PresetsRemoveCmd `cmd:"" help:"Remove a color preset."`
}

type PresetsListCmd struct{}

func (c *PresetsListCmd) Run(ctx *cli.Context) error {
	return presetList.print(ctx)
}

type PresetsAddCmd struct {
	Colors []string `arg:"" help:"Hex colors to add."`
}

func (c *PresetsAddCmd) Run(ctx *cli.Context) error {
	normalized := make([]string, 0, len(c.Colors))
	for _, raw := range c.Colors {
		color, ok := colors.Normalize(raw)
		if !ok {
			return fmt.Errorf("invalid color %q (expected #rrggbb)", raw)
		}
		normalized = append(normalized, color)
	}
	return presetList.addValues(ctx, normalized)
}

type PresetsEditCmd struct {
	From string `arg:"" help:"Color preset to replace."`
	To   string `arg:"" help:"New hex color."`
}

func (c *PresetsEditCmd) Run(ctx *cli.Context) error {
	to, ok := colors.Normalize(c.To)
	if !ok {
		return fmt.Errorf("invalid color %q (expected #rrggbb)", c.To)
	}
	if from, ok := colors.Normalize(c.From); ok {
		if err := presetList.editValue(ctx, from, to); err == nil {
			return nil
		}
	}
	return presetList.editValue(ctx, c.From, to)
}

type PresetsRemoveCmd struct {
	Color string `arg:"" help:"Color preset to remove."`
}

func (c *PresetsRemoveCmd) Run(ctx *cli.Context) error {
	color := c.Color
	if normalized, ok := colors.Normalize(color); ok {
		// presets added by hand are stored normalized; imported ones are stored as written
		if err := presetList.removeValue(ctx, normalized); err == nil {
			return nil
		}
	}
	return presetList.removeValue(ctx, color)
}

type CategoriesCmd struct {
	List   CategoriesListCmd   `cmd:"" help:"List activity categories." default:"1"`
	Add    CategoriesAddCmd    `cmd:"" help:"Add activity categories."`
	Edit   CategoriesEditCmd   `cmd:"" help:"Rename an activity category."`
	Remove CategoriesRemoveCmd `cmd:"" help:"Remove an activity category."`
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx *cli.Context) error {
	return categoryList.print(ctx)
}

type CategoriesAddCmd struct {
	Names []string `arg:"" help:"Categories to add."`
}

func (c *CategoriesAddCmd) Run(ctx *cli.Context) error {
	return categoryList.addValues(ctx, c.Names)
}

type CategoriesEditCmd struct {
	From string `arg:"" help:"Category to rename."`
	To   string `arg:"" help:"New category name."`
}

func (c *CategoriesEditCmd) Run(ctx *cli.Context) error {
	if c.To == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	return categoryList.editValue(ctx, c.From, c.To)
}

type CategoriesRemoveCmd struct {
	Name string `arg:"" help:"Category to remove."`
}

func (c *CategoriesRemoveCmd) Run(ctx *cli.Context) error {
	return categoryList.removeValue(ctx, c.Name)
}
