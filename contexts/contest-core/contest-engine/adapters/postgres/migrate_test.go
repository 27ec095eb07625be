package postgresadapter

import "testing"

// The repository queries these tables by name; the migration set must create
// every one of them exactly once.
func TestMigrationCoversEveryRepositoryTable(t *testing.T) {
	want := map[string]bool{
		"contest_settings": false,
		"contests":         false,
		"contest_entries":  false,
		"contest_votes":    false,
		"contest_winners":  false,
		"contest_treasury": false,
		"contest_accounts": false,
		"contest_outbox":   false,
	}

	for _, model := range migrationModels() {
		named, ok := model.(interface{ TableName() string })
		if !ok {
			t.Fatalf("model %T does not declare a table name", model)
		}
		name := named.TableName()
		seen, tracked := want[name]
		if !tracked {
			t.Fatalf("unexpected table %q in migration set", name)
		}
		if seen {
			t.Fatalf("table %q migrated twice", name)
		}
		want[name] = true
	}

	for name, seen := range want {
		if !seen {
			t.Fatalf("table %q missing from migration set", name)
		}
	}
}
