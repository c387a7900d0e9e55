package store

import (
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"campusswap/internal/domain"
	"campusswap/internal/store/migrations"

	"gorm.io/gorm/schema"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)

// migrationColumns returns, per table, each column name mapped to its
// definition line from the goose migrations.
func migrationColumns(t *testing.T) map[string]map[string]string {
	t.Helper()
	data, err := fs.ReadFile(migrations.FS, "00001_users_items.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	tables := map[string]map[string]string{}
	for _, m := range createTableRe.FindAllStringSubmatch(string(data), -1) {
		cols := map[string]string{}
		for _, line := range strings.Split(m[2], "\n") {
			line = strings.TrimSuffix(strings.TrimSpace(line), ",")
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch strings.ToUpper(fields[0]) {
			case "PRIMARY", "CONSTRAINT", "UNIQUE", "FOREIGN", "CHECK":
				continue
			}
			cols[fields[0]] = line
		}
		tables[m[1]] = cols
	}
	return tables
}

func parseModel(t *testing.T, model any) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse %T: %v", model, err)
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestMigrationMatchesModels(t *testing.T) {
	tables := migrationColumns(t)

	for _, model := range []any{&domain.User{}, &domain.Item{}} {
		s := parseModel(t, model)
		cols, ok := tables[s.Table]
		if !ok {
			t.Fatalf("migration has no table %q", s.Table)
		}

		modelCols := append([]string(nil), s.DBNames...)
		sort.Strings(modelCols)
		sqlCols := sortedKeys(cols)
		if strings.Join(modelCols, ",") != strings.Join(sqlCols, ",") {
			t.Fatalf("%s columns differ:\nmodel: %v\nsql:   %v", s.Table, modelCols, sqlCols)
		}

		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			def := strings.ToUpper(cols[f.DBName])
			if f.NotNull != strings.Contains(def, "NOT NULL") && !f.PrimaryKey {
				t.Fatalf("%s.%s: model not null=%v, sql %q", s.Table, f.DBName, f.NotNull, cols[f.DBName])
			}
		}
	}
}

func TestMigrationCascadeMatchesModel(t *testing.T) {
	item := parseModel(t, &domain.Item{})
	rel, ok := item.Relationships.Relations["Owner"]
	if !ok {
		t.Fatalf("items has no Owner relationship")
	}
	c := rel.ParseConstraint()
	if c == nil {
		t.Fatalf("Owner relationship has no constraint")
	}
	if c.OnDelete != "CASCADE" {
		t.Fatalf("model OnDelete = %q, want CASCADE", c.OnDelete)
	}
	if len(c.ForeignKeys) != 1 || len(c.References) != 1 {
		t.Fatalf("unexpected constraint keys: %d -> %d", len(c.ForeignKeys), len(c.References))
	}
	fk, ref := c.ForeignKeys[0].DBName, c.References[0].DBName

	want := "REFERENCES " + c.ReferenceSchema.Table + " (" + ref + ") ON DELETE " + c.OnDelete
	got := migrationColumns(t)[item.Table][fk]
	if !strings.Contains(got, want) {
		t.Fatalf("sql %s.%s = %q, want it to contain %q", item.Table, fk, got, want)
	}
}
