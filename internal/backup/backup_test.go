package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hourlog/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hourlog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE days (date TEXT PRIMARY KEY, weekday TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO days (date, weekday) VALUES ('2025-01-01', 'Wed'), ('2025-01-02', 'Thu')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countDays(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM days").Scan(&n); err != nil {
		t.Fatalf("failed to count days: %v", err)
	}
	return n
}

// steppingClock advances one second per call so every backup gets its own name.
func steppingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), constants.BackupFilePrefix) || !strings.HasSuffix(path, ".db") {
		t.Errorf("unexpected backup name %s", path)
	}
	if got := countDays(t, path); got != 2 {
		t.Errorf("expected 2 days in backup, got %d", got)
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected an error backing up a missing store")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock()

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
}

func TestListBackups_NewestFirst(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups yet, got %d", len(backups))
	}

	// same second: names are disambiguated by a sequence suffix
	fixed := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }
	var created []string
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		created = append(created, path)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	if backups[0].Path != created[2] || backups[2].Path != created[0] {
		t.Errorf("expected newest first, got %s ... %s", backups[0].Path, backups[2].Path)
	}
	if backups[0].Size == 0 {
		t.Error("expected a non-zero size")
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "hourlog-garbage.db", "hourlog-20250101-090000.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected foreign files to be ignored, got %+v", backups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM days"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	preRestore, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countDays(t, dbPath); got != 2 {
		t.Errorf("expected 2 days after restore, got %d", got)
	}
	if preRestore == "" {
		t.Fatal("expected a pre-restore backup")
	}
	if got := countDays(t, preRestore); got != 0 {
		t.Errorf("expected the pre-restore backup to hold the emptied store, got %d days", got)
	}
}

func TestRestoreBackup_RejectsInvalid(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected an error for a corrupt backup")
	}
}

func TestJSONStoreBackup(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "hourlog.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1,"table":{}}`), 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(storePath)
	mgr.now = steppingClock()

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("expected a .json backup, got %s", path)
	}

	if err := os.WriteFile(storePath, []byte(`{"version":1,"table":{"2025-01-01":{}}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1,"table":{}}` {
		t.Errorf("unexpected restored content %s", data)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected the original and pre-restore backups, got %d", len(backups))
	}
}

func TestJSONStoreBackup_CorruptStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "hourlog.json")
	if err := os.WriteFile(storePath, []byte(`{"version":`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(storePath).CreateBackup(); err == nil {
		t.Error("expected an error backing up corrupt JSON")
	}
}
