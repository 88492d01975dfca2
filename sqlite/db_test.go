package sqlite

import (
	"path/filepath"
	"strings"
	"testing"
)

const page = `<div id="main" class="container">
  <span class="item active"> one </span>
  <p id="note">two</p>
  <p class="item">three</p>
</div>`

func TestFuncs(t *testing.T) {
	db, err := New(":memory:", nil, map[string]any{"shout": strings.ToUpper})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var count int
	var first, all, shout string
	err = db.QueryRow(`SELECT css_count(?, 'p, .item'), css_first(?, 'span.active'), css_all(?, 'span.active, p#note', '|'), shout('x')`,
		page, page, page).Scan(&count, &first, &all, &shout)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 || first != "one" || all != "one|two" || shout != "X" {
		t.Errorf("got %d %q %q %q", count, first, all, shout)
	}
	if err := db.QueryRow(`SELECT css_first(?, 'section')`, page).Scan(&first); err != nil || first != "" {
		t.Errorf("expected empty string for no match, got %q (%v)", first, err)
	}
}

func TestPureFuncs(t *testing.T) {
	fs := map[string]any{
		"shout":      strings.ToUpper,
		"pure_shout": PureFunc{strings.ToUpper},
	}
	index := func(f string) []string {
		return []string{
			"CREATE TABLE pages (html TEXT)",
			"CREATE INDEX pages_idx ON pages (" + f + ")",
		}
	}
	for _, f := range []string{"css_count(html, 'p')", "pure_shout(html)"} {
		db, err := New(":memory:", index(f), fs)
		if err != nil {
			t.Errorf("%s: expected deterministic func to be usable in an index: %s", f, err)
			continue
		}
		db.Close()
	}
	if db, err := New(":memory:", index("shout(html)"), fs); err == nil {
		db.Close()
		t.Error("shout: expected plain func to be registered as non-deterministic")
	}
}

func TestMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	migrations := []string{
		"CREATE TABLE pages (url TEXT, html TEXT)",
		"ALTER TABLE pages ADD title TEXT",
	}
	db, err := New(path, migrations[:1], nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO pages VALUES (?, ?)", "a", page); err != nil {
		t.Fatal(err)
	}
	db.Close()
	db, err = New(path, migrations, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE pages SET title = css_first(html, '#note')"); err != nil {
		t.Fatal(err)
	}
	var title string
	if err := db.QueryRow("SELECT title FROM pages").Scan(&title); err != nil || title != "two" {
		t.Errorf("got %q (%v), expected two", title, err)
	}
	db.Close()
	if _, err := New(path, []string{"CREATE TABLE other (x)"}, nil); err == nil {
		t.Error("expected error for diverging migrations")
	}
}
