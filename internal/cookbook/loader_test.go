package cookbook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newLoaded(t *testing.T, dir string, opts ...Option) *Loader {
	t.Helper()
	l, err := NewLoader(dir, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func TestNewLoaderDoesNoIO(t *testing.T) {
	l, err := NewLoader(filepath.Join(t.TempDir(), "does-not-exist", "apache2"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "apache2" {
		t.Fatalf("Name = %q", l.Name)
	}
	if !l.Empty() {
		t.Fatal("unscanned loader must be empty")
	}
	if l.State() != nil {
		t.Fatal("unscanned loader must have no state")
	}
	md, err := l.Metadata()
	if err != nil || len(md.Fields) != 0 {
		t.Fatalf("Metadata() = %v, %v", md, err)
	}
}

func TestLoadCategorizesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "apache2")
	writeTree(t, dir, map[string]string{
		"attributes/default.rb":              "",
		"definitions/site.rb":                "",
		"recipes/default.rb":                 "",
		"libraries/helpers.rb":               "",
		"templates/default/apache2.conf.erb": "",
		"files/default/.htpasswd":            "",
		"resources/vhost/site.rb":            "",
		"providers/vhost.rb":                 "",
		"README.md":                          "",
		"metadata.json":                      `{"name":"apache2"}`,
	})

	l := newLoaded(t, dir)

	tests := []struct {
		cat  Category
		want []string
	}{
		{Attributes, []string{"attributes/default.rb"}},
		{Definitions, []string{"definitions/site.rb"}},
		{Recipes, []string{"recipes/default.rb"}},
		{Libraries, []string{"libraries/helpers.rb"}},
		{Templates, []string{"templates/default/apache2.conf.erb"}},
		{Files, []string{"files/default/.htpasswd"}},
		{Resources, []string{"resources/vhost/site.rb"}},
		{Providers, []string{"providers/vhost.rb"}},
		{RootFiles, []string{"README.md", "metadata.json"}},
	}
	for _, tt := range tests {
		if got := names(l.Files(tt.cat)); !equalStrings(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.cat, got, tt.want)
		}
	}

	if got := l.MetadataFiles(); len(got) != 1 || got[0] != filepath.Join(dir, "metadata.json") {
		t.Fatalf("MetadataFiles = %v", got)
	}
	if l.Empty() {
		t.Fatal("loader should not be empty")
	}
}

func TestLoadIgnoresMatchingRecipe(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mycookbook")
	writeTree(t, dir, map[string]string{
		"recipes/default.rb": "",
		"recipes/web.rb":     "",
		"ignore":             "web\\.rb$\n",
	})

	l := newLoaded(t, dir)
	if got := names(l.Files(Recipes)); !equalStrings(got, []string{"recipes/default.rb"}) {
		t.Fatalf("recipes = %v", got)
	}
}

func TestLoadIgnoreRulesSkipRootFilesAndMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mycookbook")
	writeTree(t, dir, map[string]string{
		"recipes/default.rb":     "",
		"templates/default.json": "",
		"metadata.json":          "{}",
		"ignore":                 "\\.json$\n",
	})

	l := newLoaded(t, dir)
	if l.Files(Templates).Len() != 0 {
		t.Fatalf("templates should be ignored, got %v", names(l.Files(Templates)))
	}
	if _, ok := l.Files(RootFiles).Get("metadata.json"); !ok {
		t.Fatal("root files must not be filtered by ignore rules")
	}
	if len(l.MetadataFiles()) != 1 {
		t.Fatal("metadata must not be filtered by ignore rules")
	}
}

func TestLoadEmptyCookbookWarns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "emptycookbook")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	l := newLoaded(t, dir, WithDiagnostics(rec))
	if !l.Empty() {
		t.Fatal("expected empty cookbook")
	}
	if rec.count("warn") != 1 {
		t.Fatalf("expected one warning, got %v", rec.records)
	}
	if l.State() != nil {
		t.Fatal("State() must be nil for an empty cookbook")
	}
}

func TestLoadOnlySubdirectoriesIsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hollow")
	for _, sub := range []string{"recipes", "templates/default"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if l := newLoaded(t, dir); !l.Empty() {
		t.Fatal("directories without files must count as empty")
	}
}

func TestLoadIgnoreFileResolution(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "mycookbook")
	writeTree(t, dir, map[string]string{
		"recipes/default.rb": "",
		"recipes/web.rb":     "",
		"ignore":             "web\\.rb$\n",
	})
	elsewhere := t.TempDir()

	tests := []struct {
		name string
		base IgnoreBase
		cwd  string
		want []string
	}{
		{"root from anywhere", IgnoreFromRoot, elsewhere, []string{"recipes/default.rb"}},
		{"name from parent", IgnoreFromName, parent, []string{"recipes/default.rb"}},
		// the name-relative lookup misses the file outside the parent directory
		{"name from elsewhere", IgnoreFromName, elsewhere, []string{"recipes/default.rb", "recipes/web.rb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(tt.cwd)
			l := newLoaded(t, dir, WithIgnoreBase(tt.base))
			if got := names(l.Files(Recipes)); !equalStrings(got, tt.want) {
				t.Fatalf("recipes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadTwiceProducesEqualState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repeat")
	writeTree(t, dir, map[string]string{
		"recipes/default.rb":       "",
		"templates/a/b.erb":        "",
		"files/default/x":          "",
		"files/default/.gitkeep":   "",
		"resources/nested/deep.rb": "",
		"README.md":                "",
	})

	a := newLoaded(t, dir)
	b := newLoaded(t, dir)
	for _, c := range Categories() {
		if !a.Files(c).Equal(b.Files(c)) {
			t.Errorf("%s differs between loads", c)
		}
	}
}

func TestMetadataMergesFilesInOrder(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "one", "ntp")
	second := filepath.Join(base, "two", "ntp")
	writeTree(t, first, map[string]string{"metadata.json": `{"name":"ntp","version":"1.0.0"}`})
	writeTree(t, second, map[string]string{"metadata.json": `{"version":"2.0.0","license":"Apache-2.0"}`})

	target := newLoaded(t, first)
	Merge(target, newLoaded(t, second))

	md, err := target.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if md.Name != "ntp" {
		t.Fatalf("metadata name = %q", md.Name)
	}
	var version string
	if ok, err := md.Get("version", &version); !ok || err != nil || version != "2.0.0" {
		t.Fatalf("version = %q (%v, %v)", version, ok, err)
	}
	if !equalStrings(md.Keys(), []string{"license", "name", "version"}) {
		t.Fatalf("keys = %v", md.Keys())
	}
}

func TestMetadataParseErrorIsReportedAndReturned(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "broken")
	writeTree(t, dir, map[string]string{"metadata.json": `{"name": `})

	rec := &recorder{}
	l := newLoaded(t, dir, WithDiagnostics(rec))
	_, err := l.Metadata()

	var perr *MetadataParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *MetadataParseError, got %v", err)
	}
	if perr.Path != filepath.Join(dir, "metadata.json") {
		t.Fatalf("Path = %q", perr.Path)
	}
	if rec.count("fatal") != 1 {
		t.Fatalf("expected one fatal report, got %v", rec.records)
	}
}

func TestStateSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snap")
	writeTree(t, dir, map[string]string{
		"recipes/default.rb": "",
		"metadata.json":      "{}",
	})

	l := newLoaded(t, dir)
	s := l.State()
	if s == nil {
		t.Fatal("expected state")
	}
	if s.Name != "snap" || s.Root != dir {
		t.Fatalf("state = %+v", s)
	}
	if got := s.Paths(Recipes); len(got) != 1 || got[0] != filepath.Join(dir, "recipes", "default.rb") {
		t.Fatalf("recipes = %v", got)
	}
	if got := s.Paths(MetadataFiles); len(got) != 1 {
		t.Fatalf("metadata = %v", got)
	}

	// the snapshot does not alias the loader
	s.MetadataFiles[0] = "changed"
	if l.MetadataFiles()[0] == "changed" {
		t.Fatal("state shares the metadata slice with the loader")
	}
}

func TestLoadCategoryNamesThatAreFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cb")
	writeTree(t, dir, map[string]string{
		"files":              "",
		"recipes":            "",
		"attributes/base.rb": "",
	})

	l := newLoaded(t, dir)
	if l.Files(Files).Len() != 0 || l.Files(Recipes).Len() != 0 {
		t.Fatalf("files = %v, recipes = %v, want both empty", names(l.Files(Files)), names(l.Files(Recipes)))
	}
	want := []string{"files", "recipes"}
	if got := names(l.Files(RootFiles)); !equalStrings(got, want) {
		t.Fatalf("root files = %v, want %v", got, want)
	}
}

func TestLoadPropagatesIOError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "looped")
	writeTree(t, dir, map[string]string{"attributes/default.rb": ""})
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		t.Fatal(err)
	}
	// a self-referencing link cannot be stat'ed, whatever the caller's privileges
	if err := os.Symlink("loop.rb", filepath.Join(dir, "recipes", "loop.rb")); err != nil {
		t.Skip("symlinks not supported:", err)
	}

	l, err := NewLoader(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Load(); err == nil {
		t.Fatal("expected Load to fail")
	}
	// attributes were scanned before the failure and stay behind
	if l.Files(Attributes).Len() != 1 {
		t.Fatalf("attributes = %v", names(l.Files(Attributes)))
	}
}
