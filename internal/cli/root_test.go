package cli

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/hourlog/internal/config"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/utils"
)

func TestContextSession_UsesConfigTimezone(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	conf := config.Default()
	conf.Timezone = "Pacific/Kiritimati"
	ctx := &Context{Store: store, Config: conf}

	s, err := ctx.Session()
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	sessionToday, err := s.Today()
	if err != nil {
		t.Fatal(err)
	}
	ctxToday, err := ctx.Today()
	if err != nil {
		t.Fatal(err)
	}
	if !sessionToday.Equal(ctxToday) {
		t.Errorf("session today %s differs from context today %s", utils.FormatDate(sessionToday), utils.FormatDate(ctxToday))
	}
	if _, ok := s.Table[utils.FormatDate(ctxToday)]; !ok {
		t.Errorf("seeded week does not contain today %s: %v", utils.FormatDate(ctxToday), s.Table.Dates())
	}

	stored, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if stored.Timezone == conf.Timezone {
		t.Error("config timezone was written to the store")
	}
}
