package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codelabs/catalog-backend/pkg/migrate"
)

func TestCatalogMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS videos",
		"CREATE TABLE IF NOT EXISTS audio_video_media",
		"CREATE TABLE IF NOT EXISTS image_media",
		"CREATE TABLE IF NOT EXISTS video_categories",
		"CREATE TABLE IF NOT EXISTS video_genres",
		"CREATE TABLE IF NOT EXISTS video_cast_members",
		"FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE",
		"CHECK (status IN ('PENDING', 'PROCESSING', 'COMPLETED'))",
		"CHECK (type IN ('ACTOR', 'DIRECTOR'))",
		"DROP TABLE IF EXISTS videos",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
