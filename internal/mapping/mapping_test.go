package mapping_test

import (
	"strings"
	"testing"

	"oxidize/internal/mapping"
)

func TestExpandPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []string
		kwargs   map[string]string
		self     string
		want     string
	}{
		{
			name:     "joined args",
			template: "f({args})",
			args:     []string{"a", "b"},
			want:     "f(a, b)",
		},
		{
			name:     "indexed args",
			template: "g({arg0}, {arg1})",
			args:     []string{"x", "y"},
			want:     "g(x, y)",
		},
		{
			name:     "self receiver",
			template: "{self}.format({args})",
			args:     []string{"fmt"},
			self:     "dt",
			want:     "dt.format(fmt)",
		},
		{
			name:     "named kwargs",
			template: "build({year}, {month})",
			kwargs:   map[string]string{"year": "2024", "month": "1"},
			want:     "build(2024, 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapping.Expand(tt.template, tt.args, tt.kwargs, tt.self)
			if got != tt.want {
				t.Errorf("Expand = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableLookup(t *testing.T) {
	tbl := mapping.NewTable("test")
	tbl.Add("os.getcwd", mapping.Entry{Template: "cwd()"})
	tbl.AddMember("datetime.year", mapping.Entry{Template: "{self}.year()"})

	if _, ok := tbl.Lookup("os", "getcwd"); !ok {
		t.Error("Lookup(os, getcwd) should hit")
	}
	if _, ok := tbl.Lookup("os", "missing"); ok {
		t.Error("Lookup(os, missing) should miss")
	}
	if _, ok := tbl.LookupTypedMember("datetime", "year"); !ok {
		t.Error("LookupTypedMember(datetime, year) should hit")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
}

func TestChainOrder(t *testing.T) {
	override := mapping.NewTable("override")
	override.Add("os.getcwd", mapping.Entry{Template: "custom()"})

	chain := mapping.Chain{override, mapping.Builtin()}

	entry, ok := chain.Lookup("os", "getcwd")
	if !ok {
		t.Fatal("chain lookup should hit")
	}
	if entry.Template != "custom()" {
		t.Errorf("first provider should win, got %q", entry.Template)
	}

	// Entries only in the later provider still resolve.
	if _, ok := chain.Lookup("sys", "argv"); !ok {
		t.Error("chain should fall through to the builtin table")
	}
}

func TestBuiltinCoverage(t *testing.T) {
	b := mapping.Builtin()

	for _, key := range []struct{ ns, member string }{
		{"os", "getcwd"},
		{"os.path", "exists"},
		{"sys", "exit"},
		{"json", "dumps"},
		{"pathlib", "Path"},
		{"tempfile", "TemporaryDirectory"},
		{"datetime.datetime", "now"},
		{"logging", "info"},
		{"random", "randint"},
		{"shutil", "which"},
	} {
		if _, ok := b.Lookup(key.ns, key.member); !ok {
			t.Errorf("builtin table missing %s.%s", key.ns, key.member)
		}
	}

	entry, ok := b.Lookup("json", "dumps")
	if !ok {
		t.Fatal("json.dumps missing")
	}
	if !entry.Fallible {
		t.Error("json.dumps should be fallible")
	}
	if len(entry.CargoDeps) == 0 || !strings.Contains(strings.Join(entry.CargoDeps, ","), "serde") {
		t.Errorf("json.dumps cargo deps = %v, want serde", entry.CargoDeps)
	}
}
