package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"stockpile/internal/core/id"
)

func TestBaseCatalogRepo_SearchSQL(t *testing.T) {
	repo := NewBaseCatalogRepo[any]("test_table", []string{"id", "name", "short_code"}, func() any { return nil })

	q := repo.baseSelect().Where(squirrel.Or{
		squirrel.ILike{"name": "%wh%"},
		squirrel.ILike{"short_code": "%wh%"},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, short_code FROM test_table WHERE (name ILIKE $1 OR short_code ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 {
		t.Fatalf("Args count mismatch: %v", args)
	}
}

func TestBaseCatalogRepo_DeleteSQL(t *testing.T) {
	repo := NewBaseCatalogRepo[any]("test_table", []string{"id", "name"}, func() any { return nil })
	entityID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where("id = ?", entityID)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != entityID {
		t.Errorf("Args mismatch\nwant: [%v]\ngot:  %v", entityID, args)
	}
}

func TestBaseCatalogRepo_ParseOrderBy(t *testing.T) {
	repo := NewBaseCatalogRepo[any]("test_table", []string{"id", "name", "short_code"}, func() any { return nil })

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "name ASC"},
		{in: "name", want: "name ASC"},
		{in: "-created_at", want: "created_at DESC"},
		{in: "+short_code", want: "short_code ASC"},
		{in: "name; DROP TABLE users", wantErr: true},
		{in: "unknown_column", wantErr: true},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOrderBy(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrderBy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
