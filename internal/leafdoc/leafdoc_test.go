package leafdoc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantmind-br/leafdoc-go/internal/cache"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const mapSource = `
/*
🍂class Map
🍂aka L.Map
The central class of the API.

🍂method setView(center: LatLng, zoom?: Number): this
Sets the view of the map.
🍂method broken(a: Number
🍂method getZoom(): Number
Returns the current zoom.
*/
`

func newSession(t *testing.T, opts Options) *Leafdoc {
	t.Helper()
	l, err := New(opts)
	require.NoError(t, err)
	return l
}

// path walks nested JSON objects
func path(t *testing.T, v any, keys ...string) any {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]any)
		require.True(t, ok, "not an object at %q", k)
		v, ok = m[k]
		require.True(t, ok, "missing key %q", k)
	}
	return v
}

// TestNew tests session creation
func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l := newSession(t, Options{})
		assert.Equal(t, "🍂", l.grammar.LeadingCharacter())
		assert.Equal(t, 0, l.Namespaces().Len())
		assert.Empty(t, l.Diagnostics())
	})

	t.Run("invalid leading character", func(t *testing.T) {
		_, err := New(Options{LeadingCharacter: " "})
		assert.ErrorIs(t, err, domain.ErrInvalidLeadingCharacter)
	})

	t.Run("custom documentables", func(t *testing.T) {
		l := newSession(t, Options{CustomDocumentables: []domain.Kind{{Name: "crs", Label: "CRSs"}}})
		assert.True(t, l.Kinds().IsKnown("crs"))
	})
}

// TestAddStr_NoDirectives tests that plain code yields an empty tree
func TestAddStr_NoDirectives(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), "// just a comment\nvar a = 1;", true))

	assert.Equal(t, 0, l.Namespaces().Len())

	out, err := l.OutputJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

// TestAddStr_MalformedSignatureIsIsolated tests that a bad signature only drops itself
func TestAddStr_MalformedSignatureIsIsolated(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), mapSource, true))

	ns, ok := l.Namespaces().Get("Map")
	require.True(t, ok)
	ss, ok := ns.Supersections.Get("method")
	require.True(t, ok)
	sec, ok := ss.Sections.Get(domain.DefaultName)
	require.True(t, ok)

	assert.Equal(t, []string{"setView", "getZoom"}, sec.Documentables.Keys())

	diags := l.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
	assert.Equal(t, "method", diags[0].Kind)
	assert.Equal(t, "broken(a: Number", diags[0].Content)
}

// TestOutputJSON tests the JSON dump of the resolved tree
func TestOutputJSON(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), mapSource, true))

	out, err := l.OutputJSON()
	require.NoError(t, err)
	assert.Contains(t, out, "\n \"Map\": {")

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))

	assert.Equal(t, "map", path(t, tree, "Map", "id"))
	assert.Equal(t, "map-method", path(t, tree, "Map", "supersections", "method", "id"))
	assert.Equal(t, "map-method", path(t, tree, "Map", "supersections", "method", "sections", "__default", "id"))

	setView := path(t, tree, "Map", "supersections", "method", "sections", "__default", "documentables", "setView")
	assert.Equal(t, "map-setview", path(t, setView, "id"))
	assert.Equal(t, "this", path(t, setView, "type"))
	assert.Equal(t, "LatLng", path(t, setView, "params", "center", "type"))
	assert.Equal(t, true, path(t, setView, "params", "zoom", "optional"))
}

// TestOutputYAML tests the YAML dump
func TestOutputYAML(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), mapSource, true))

	out, err := l.OutputYAML()
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "map", path(t, tree, "Map", "id"))
}

// TestAKAs tests alias resolution through the session
func TestAKAs(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), mapSource, true))

	akas := l.AKAs()
	assert.Equal(t, "map", akas["Map"])
	assert.Equal(t, "map", akas["L.Map"])
	assert.Equal(t, "map-method", akas["map-methods"])
	assert.Equal(t, akas, l.AKAs())

	for _, id := range []string{"map", "map-method", "map-setview", "map-getzoom"} {
		assert.Equal(t, id, akas[id], id)
	}
}

// TestAddStr_InlineComment tests prose after a directive on the same line
func TestAddStr_InlineComment(t *testing.T) {
	l := newSession(t, Options{})
	src := "// 🍂class Foo\n// 🍂method bar(): Number; Does bar things\n// 🍂option zoom: Number = 1; Initial zoom\n"
	require.NoError(t, l.AddStr(context.Background(), src, true))

	ns, _ := l.Namespaces().Get("Foo")

	methods, _ := ns.Supersections.Get("method")
	sec, _ := methods.Sections.Get(domain.DefaultName)
	bar, ok := sec.Documentables.Get("bar")
	require.True(t, ok)
	assert.Equal(t, []string{"Does bar things"}, bar.Comments)

	options, _ := ns.Supersections.Get("option")
	sec, _ = options.Sections.Get(domain.DefaultName)
	zoom, ok := sec.Documentables.Get("zoom")
	require.True(t, ok)
	assert.Equal(t, []string{"Initial zoom"}, zoom.Comments)

	html, err := l.OutputHTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "; Does bar things")
}

// TestOutputJSON_TypesUnescaped tests that type expressions are dumped verbatim
func TestOutputJSON_TypesUnescaped(t *testing.T) {
	l := newSession(t, Options{})
	src := "// 🍂class Foo\n// 🍂method map(fn: Function): Array<Number>\n"
	require.NoError(t, l.AddStr(context.Background(), src, true))

	out, err := l.OutputJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "Array<Number>"`)
	assert.NotContains(t, out, `\u003c`)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

// TestOutput_MissingAncestorReportedOnce tests repeated rendering of a broken hierarchy
func TestOutput_MissingAncestorReportedOnce(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), "// 🍂class B\n// 🍂inherits Ghost\n// 🍂method m()\n", true))

	for i := 0; i < 2; i++ {
		_, err := l.OutputHTML()
		require.NoError(t, err)
		_, err = l.OutputMarkdown()
		require.NoError(t, err)
	}

	var missing int
	for _, d := range l.Diagnostics() {
		if d.Kind == "inherits" {
			missing++
		}
	}
	assert.Equal(t, 1, missing)
	assert.Same(t, l.Inheritance(), l.Inheritance())
}

// TestAddStr_PlainMode tests .leafdoc style input
func TestAddStr_PlainMode(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), "🍂example\nSome example text.", false))

	ns, ok := l.Namespaces().Get(domain.DefaultName)
	require.True(t, ok)
	assert.True(t, ns.Supersections.Has("example"))
}

// TestAddStr_StructuralError tests directives before any namespace in source mode
func TestAddStr_StructuralError(t *testing.T) {
	l := newSession(t, Options{})
	err := l.AddStr(context.Background(), "// 🍂method foo()", true)

	require.Error(t, err)
	assert.True(t, domain.IsStructural(err))
	assert.ErrorIs(t, err, domain.ErrNoNamespace)
}

// TestAddStr_CRLF tests DOS line ending normalisation
func TestAddStr_CRLF(t *testing.T) {
	l := newSession(t, Options{})
	src := "// 🍂class Foo\r\n// 🍂method bar(): Number\r\n// Bars.\r\n"
	require.NoError(t, l.AddStr(context.Background(), src, true))

	ns, _ := l.Namespaces().Get("Foo")
	ss, _ := ns.Supersections.Get("method")
	sec, _ := ss.Sections.Get(domain.DefaultName)
	doc, ok := sec.Documentables.Get("bar")
	require.True(t, ok)
	assert.Equal(t, "Number", *doc.Type)
	assert.Equal(t, []string{"Bars."}, doc.Comments)
}

// TestAddStr_Accumulates tests that several inputs build one tree
func TestAddStr_Accumulates(t *testing.T) {
	l := newSession(t, Options{})
	ctx := context.Background()
	require.NoError(t, l.AddStr(ctx, "// 🍂class A\n// 🍂method one()", true))
	require.NoError(t, l.AddStr(ctx, "// 🍂class B\n// 🍂inherits A", true))
	require.NoError(t, l.AddStr(ctx, "// 🍂class A\n// 🍂method two()", true))

	assert.Equal(t, []string{"A", "B"}, l.Namespaces().Keys())

	b, _ := l.Namespaces().Get("B")
	inherited := l.Inheritance().MergeInherited(b, "method")
	require.Len(t, inherited, 1)
	assert.Len(t, inherited[0].Documentables, 2)
}

// TestSetLeadingCharacter tests switching the directive sentinel
func TestSetLeadingCharacter(t *testing.T) {
	l := newSession(t, Options{})
	ctx := context.Background()

	require.NoError(t, l.SetLeadingCharacter("@"))
	require.NoError(t, l.AddStr(ctx, "// @class Foo\n// 🍂class Bar", true))

	assert.Equal(t, []string{"Foo"}, l.Namespaces().Keys())
	assert.ErrorIs(t, l.SetLeadingCharacter(""), domain.ErrInvalidLeadingCharacter)
}

// TestRegisterDocumentable tests custom kinds
func TestRegisterDocumentable(t *testing.T) {
	l := newSession(t, Options{})
	l.RegisterDocumentable("crs", "Defined CRSs", true)
	require.NoError(t, l.AddStr(context.Background(), "// 🍂class CRS\n// 🍂crs EPSG3857", true))

	ns, _ := l.Namespaces().Get("CRS")
	assert.True(t, ns.Supersections.Has("crs"))

	out, err := l.OutputHTML()
	require.NoError(t, err)
	assert.Contains(t, out, "Defined CRSs")
}

// TestAddFileAndDir tests reading from disk
func TestAddFileAndDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.js":          "// 🍂class B",
		"a.js":          "// 🍂class A",
		"sub/c.leafdoc": "🍂class C\n🍂method c()",
		"sub/d.rb":      "# 🍂class D",
		"ignored.txt":   "// 🍂class Ignored",
		"sub/e.LEAFDOC": "🍂class E",
		"sub/deep/f.js": "// 🍂class F",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	t.Run("default extensions", func(t *testing.T) {
		l := newSession(t, Options{})
		require.NoError(t, l.AddDir(context.Background(), dir, nil))
		assert.Equal(t, []string{"A", "B", "C", "F", "E"}, l.Namespaces().Keys())
	})

	t.Run("custom extensions", func(t *testing.T) {
		l := newSession(t, Options{})
		require.NoError(t, l.AddDir(context.Background(), dir, []string{".rb"}))
		assert.Equal(t, []string{"D"}, l.Namespaces().Keys())
	})

	t.Run("single file", func(t *testing.T) {
		l := newSession(t, Options{})
		require.NoError(t, l.AddFile(context.Background(), filepath.Join(dir, "sub", "c.leafdoc")))
		assert.Equal(t, []string{"C"}, l.Namespaces().Keys())
	})

	t.Run("missing file", func(t *testing.T) {
		l := newSession(t, Options{})
		assert.Error(t, l.AddFile(context.Background(), filepath.Join(dir, "nope.js")))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := newSession(t, Options{})
		assert.ErrorIs(t, l.AddDir(ctx, dir, nil), context.Canceled)
	})
}

// TestAddStr_Cache tests that tokenized blocks are served from the cache
func TestAddStr_Cache(t *testing.T) {
	c, err := cache.NewBadgerCache(cache.Options{InMemory: true})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	src := "// 🍂class Foo\n// 🍂method bar()"

	first := newSession(t, Options{Cache: c})
	require.NoError(t, first.AddStr(ctx, src, true))
	assert.Equal(t, int64(1), c.Size())

	second := newSession(t, Options{Cache: c})
	require.NoError(t, second.AddStr(ctx, src, true))
	assert.Equal(t, int64(1), c.Size())

	firstJSON, err := first.OutputJSON()
	require.NoError(t, err)
	secondJSON, err := second.OutputJSON()
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

// TestOutput tests format dispatch
func TestOutput(t *testing.T) {
	l := newSession(t, Options{})
	require.NoError(t, l.AddStr(context.Background(), mapSource, true))

	tests := []struct {
		format   string
		contains string
		wantErr  bool
	}{
		{format: "html", contains: `<h2 id="map">Map</h2>`},
		{format: "", contains: "<!DOCTYPE html>"},
		{format: "json", contains: `"setView"`},
		{format: "yaml", contains: "setView:"},
		{format: "markdown", contains: "## Map"},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := l.Output(tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}
