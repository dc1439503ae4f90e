package formatter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/java-imports-group/pkg/config"
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
)

func imp(path string) grammar.Import {
	return grammar.Import{Path: grammar.NewPath(path)}
}

func TestFormatter_Classify(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		imp  grammar.Import
		want ImportGroup
	}{
		{"third party", imp("org.junit.Test"), MainGroup},
		{"project", imp("com.acme.Widget"), MainGroup},
		{"java prefix is not java", imp("javafx.scene.Node"), MainGroup},
		{"extension", imp("javax.inject.Inject"), ExtensionGroup},
		{"standard", imp("java.util.List"), StdGroup},
		{"standard wildcard", grammar.Import{Path: grammar.NewPath("java.util"), Star: true}, StdGroup},
		{"static", grammar.Import{Path: grammar.NewPath("org.junit.Assert.assertEquals"), Static: true}, StaticGroup},
		{"static standard", grammar.Import{Path: grammar.NewPath("java.lang.Math.max"), Static: true}, StaticGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, Classify(tt.imp), "Classify(%s)", tt.imp)
		})
	}
}

func TestFormatter_ImportGroupString(t *testing.T) {
	req := require.New(t)
	req.Equal("main", MainGroup.String())
	req.Equal("extension", ExtensionGroup.String())
	req.Equal("std", StdGroup.String())
	req.Equal("static", StaticGroup.String())
	req.Equal("unknown", ImportGroup(42).String())
}

func TestFormatter_groupImports(t *testing.T) {
	req := require.New(t)

	imports := []grammar.Import{
		imp("java.util.List"),
		imp("com.acme.B"),
		imp("javax.inject.Inject"),
		imp("com.acme.A"),
	}

	grouped := groupImports(imports)
	req.Equal([]grammar.Import{imp("com.acme.B"), imp("com.acme.A")}, grouped[MainGroup], "order inside a group is kept")
	req.Equal([]grammar.Import{imp("javax.inject.Inject")}, grouped[ExtensionGroup])
	req.Equal([]grammar.Import{imp("java.util.List")}, grouped[StdGroup])
	req.Empty(grouped[StaticGroup])
}

func TestFormatter_renderGroup(t *testing.T) {
	req := require.New(t)

	lines := renderGroup([]grammar.Import{
		imp("com.acme.b"),
		imp("com.acme.a"),
		imp("com.acme.b"),
		{Path: grammar.NewPath("com.acme"), Star: true},
	})
	req.Equal([]string{
		"import com.acme.*;",
		"import com.acme.a;",
		"import com.acme.b;",
	}, lines)
}

func TestFormatter_FormatImports(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		imports  []grammar.Import
		expected string
	}{
		{
			name:     "no imports",
			imports:  nil,
			expected: "",
		},
		{
			name: "main and static",
			imports: []grammar.Import{
				imp("b"),
				imp("a"),
				{Path: grammar.NewPath("x.y.z"), Static: true},
			},
			expected: "import a;\nimport b;\n\nimport static x.y.z;\n\n",
		},
		{
			name: "all groups in order",
			imports: []grammar.Import{
				{Path: grammar.NewPath("org.junit.Assert.assertTrue"), Static: true},
				imp("java.util.Map"),
				imp("javax.annotation.Nullable"),
				imp("java.util.List"),
				imp("org.slf4j.Logger"),
				imp("com.acme.Widget"),
			},
			expected: `import com.acme.Widget;
import org.slf4j.Logger;

import javax.annotation.Nullable;

import java.util.List;
import java.util.Map;

import static org.junit.Assert.assertTrue;

`,
		},
		{
			name: "duplicates collapse",
			imports: []grammar.Import{
				imp("java.util.List"),
				imp("java.util.List"),
			},
			expected: "import java.util.List;\n\n",
		},
		{
			name: "static and plain of the same path stay apart",
			imports: []grammar.Import{
				imp("com.acme.Util"),
				{Path: grammar.NewPath("com.acme.Util"), Static: true, Star: true},
			},
			expected: "import com.acme.Util;\n\nimport static com.acme.Util.*;\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, FormatImports(tt.imports))
		})
	}
}

func TestFormatter_Splice(t *testing.T) {
	req := require.New(t)

	source := "package a;\n\nimport b;\n\nclass A {}\n"
	span := grammar.Span{Start: strings.Index(source, "import"), End: strings.Index(source, "class")}

	req.Equal("package a;\n\nX\nclass A {}\n", Splice(source, span, "X\n"))
	req.Equal("package a;\n\nclass A {}\n", Splice(source, span, ""))
}

func TestFormatter_Format(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	g := New(FormatterConfig{})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sorts and separates static imports",
			input:    "package a;\n\nimport b;\nimport a;\nimport static x.y.z;\n\nclass Foo {}\n",
			expected: "package a;\n\nimport a;\nimport b;\n\nimport static x.y.z;\n\nclass Foo {}\n",
		},
		{
			name:     "no imports leaves the file alone",
			input:    "package a;\n\nclass Foo {}\n",
			expected: "package a;\n\nclass Foo {}\n",
		},
		{
			name:     "imports on one line",
			input:    "package a; import java.util.List; import com.acme.Widget; class Foo {}",
			expected: "package a; import com.acme.Widget;\n\nimport java.util.List;\n\nclass Foo {}",
		},
		{
			name: "comments around the block stay in place",
			input: `package a;

// imports follow
import java.util.List;
import com.acme.Widget;
// end of imports

public class Foo {}
`,
			expected: `package a;

// imports follow
import com.acme.Widget;

import java.util.List;

// end of imports

public class Foo {}
`,
		},
		{
			name:     "file without trailing content",
			input:    "package a;\nimport b;",
			expected: "package a;\nimport b;\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := g.Format(ctx, tt.input)
			req.NoError(err)
			req.Equal(tt.expected, output)

			// Formatting is idempotent
			again, err := g.Format(ctx, output)
			req.NoError(err)
			req.Equal(output, again, "second pass changed the output")
		})
	}

	t.Run("text outside the import block is untouched", func(t *testing.T) {
		input := "/* header */\npackage a;\n\nimport c;\nimport a;\n\n@Deprecated\nclass Foo { void f() { String s = \"import z;\"; } }\n"
		output, err := g.Format(ctx, input)
		req.NoError(err)
		req.True(strings.HasPrefix(output, "/* header */\npackage a;\n\n"))
		req.True(strings.HasSuffix(output, "@Deprecated\nclass Foo { void f() { String s = \"import z;\"; } }\n"))
	})

	t.Run("missing package declaration", func(t *testing.T) {
		_, err := g.Format(ctx, "import a;\nclass Foo {}\n")
		req.Error(err)
	})

	t.Run("unterminated import", func(t *testing.T) {
		_, err := g.Format(ctx, "package a;\nimport a.b\nclass Foo {}\n")
		req.Error(err)
	})
}

// writeProject lays out a small Maven project and returns its root
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	req := require.New(t)
	root := t.TempDir()
	req.NoError(os.WriteFile(filepath.Join(root, "pom.xml"), []byte("<project/>"), 0644))
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		req.NoError(os.MkdirAll(filepath.Dir(path), 0755))
		req.NoError(os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestFormatter_Format_fix(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	app := `package com.acme.app;

import com.acme.legacy.Unused;

public class App {
    private Helper helper;
    private Config config;
}
`
	root := writeProject(t, map[string]string{
		"src/com/acme/util/Helper.java":  "package com.acme.util;\n\npublic class Helper {}\n",
		"src/com/acme/app/App.java":      app,
		"src/com/acme/app/Config.java":   "package com.acme.app;\n\nclass Config {}\n",
		"src/com/acme/one/Widget.java":   "package com.acme.one;\n\npublic class Widget {}\n",
		"src/com/acme/two/Widget.java":   "package com.acme.two;\n\npublic class Widget {}\n",
		"target/com/acme/gen/Gone.java":  "package com.acme.gen;\n\npublic class Gone {}\n",
		"src/com/acme/app/Broken.java":   "package com.acme.app;\n\nclass Broken {\n",
		"src/com/acme/legacy/Other.java": "package com.acme.legacy;\n\npublic class Other {}\n",
	})

	t.Run("adds missing and drops unused", func(t *testing.T) {
		g := New(FormatterConfig{ProjectRoot: root, Fix: true})
		output, err := g.Format(ctx, app)
		req.NoError(err)
		req.Equal(`package com.acme.app;

import com.acme.util.Helper;

public class App {
    private Helper helper;
    private Config config;
}
`, output)
	})

	t.Run("ambiguous and unknown names are not imported", func(t *testing.T) {
		g := New(FormatterConfig{ProjectRoot: root, Fix: true})
		output, err := g.Format(ctx, "package com.acme.app;\n\nclass X {\n    Widget w;\n    Gone g;\n}\n")
		req.NoError(err)
		req.Equal("package com.acme.app;\n\nclass X {\n    Widget w;\n    Gone g;\n}\n", output)
	})

	t.Run("policy from settings", func(t *testing.T) {
		settings := config.Default()
		*settings.Resolve.RemoveUnused = false
		g := New(FormatterConfig{ProjectRoot: root, Fix: true, Settings: settings})
		output, err := g.Format(ctx, app)
		req.NoError(err)
		req.Contains(output, "import com.acme.legacy.Unused;\nimport com.acme.util.Helper;\n\n")
	})

	t.Run("project is loaded once", func(t *testing.T) {
		g := New(FormatterConfig{ProjectRoot: root, Fix: true})
		_, err := g.Format(ctx, app)
		req.NoError(err)
		first := g.resolver
		req.NotNil(first)
		_, err = g.Format(ctx, app)
		req.NoError(err)
		req.Same(first, g.resolver)
	})
}

func TestFormatter_ProcessFile(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	content := `package com.acme;

import java.util.List;
import static org.junit.Assert.assertTrue;
import com.acme.model.Widget;
import javax.inject.Inject;

public class Service {
}
`
	expected := `package com.acme;

import com.acme.model.Widget;

import javax.inject.Inject;

import java.util.List;

import static org.junit.Assert.assertTrue;

public class Service {
}
`
	tempDir := t.TempDir()

	t.Run("process file in place", func(t *testing.T) {
		testFile := filepath.Join(tempDir, "Service.java")
		req.NoError(os.WriteFile(testFile, []byte(content), 0644))

		g := New(FormatterConfig{FilePath: testFile, InPlace: true})
		req.NoError(g.ProcessFile(ctx))

		processed, err := os.ReadFile(testFile)
		req.NoError(err)
		req.Equal(expected, string(processed))
	})

	t.Run("process file to output", func(t *testing.T) {
		testFile := filepath.Join(tempDir, "Printed.java")
		req.NoError(os.WriteFile(testFile, []byte(content), 0644))

		var out bytes.Buffer
		g := New(FormatterConfig{FilePath: testFile, Out: &out})
		req.NoError(g.ProcessFile(ctx))
		req.Equal(expected, out.String())

		// The file itself is not modified
		unchanged, err := os.ReadFile(testFile)
		req.NoError(err)
		req.Equal(content, string(unchanged))
	})

	t.Run("process file without imports", func(t *testing.T) {
		noImportsFile := filepath.Join(tempDir, "Plain.java")
		req.NoError(os.WriteFile(noImportsFile, []byte("package com.acme;\n\nclass Plain {}\n"), 0644))

		g := New(FormatterConfig{FilePath: noImportsFile, InPlace: true})
		req.NoError(g.ProcessFile(ctx))
	})

	t.Run("process non-existent file", func(t *testing.T) {
		g := New(FormatterConfig{FilePath: "/non/existent/File.java", InPlace: true})
		req.Error(g.ProcessFile(ctx))
	})
}

func TestFormatter_ProcessReader(t *testing.T) {
	req := require.New(t)

	var out bytes.Buffer
	g := New(FormatterConfig{Out: &out})
	req.NoError(g.ProcessReader(context.Background(), strings.NewReader("package a;\nimport b;\nimport a;\nclass A {}\n")))
	req.Equal("package a;\nimport a;\nimport b;\n\nclass A {}\n", out.String())
}

func TestFormatter_ProcessPath(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	root := writeProject(t, map[string]string{
		"src/com/acme/A.java":         "package com.acme;\nimport z.Z;\nimport a.A;\nclass A {}\n",
		"src/com/acme/B.java":         "package com.acme;\nclass B {}\n",
		"src/com/acme/Bad.java":       "package com.acme\nclass Bad {}\n",
		"build/com/acme/Gen.java":     "package com.acme;\nimport z.Z;\nimport a.A;\nclass Gen {}\n",
		"src/module-info.java":        "module com.acme {}\n",
		"src/com/acme/notes/Readme":   "import me;",
		"src/com/acme/util/C.java":    "package com.acme.util;\nimport static q.Q.q;\nimport q.Q;\nclass C {}\n",
		"src/com/acme/util/D.java":    "package com.acme.util;\n\nimport q.Q;\n\nclass D {}\n",
		"src/com/acme/.hidden/E.java": "package com.acme;\nimport z.Z;\nimport a.A;\nclass E {}\n",
	})

	var out bytes.Buffer
	g := New(FormatterConfig{InPlace: true, Out: &out})
	err := g.ProcessPath(ctx, root)
	req.Error(err, "Bad.java does not parse")
	req.Contains(err.Error(), "1 files failed to process")

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		req.NoError(err)
		return string(data)
	}
	req.Equal("package com.acme;\nimport a.A;\nimport z.Z;\n\nclass A {}\n", read("src/com/acme/A.java"))
	req.Equal("package com.acme.util;\nimport q.Q;\n\nimport static q.Q.q;\n\nclass C {}\n", read("src/com/acme/util/C.java"))
	req.Equal("package com.acme;\nimport z.Z;\nimport a.A;\nclass Gen {}\n", read("build/com/acme/Gen.java"), "excluded directory")
	req.Equal("package com.acme;\nimport z.Z;\nimport a.A;\nclass E {}\n", read("src/com/acme/.hidden/E.java"), "hidden directory")

	req.Contains(out.String(), "Found 5 Java files")

	t.Run("directory without java files", func(t *testing.T) {
		var out bytes.Buffer
		g := New(FormatterConfig{InPlace: true, Out: &out})
		req.NoError(g.ProcessPath(ctx, t.TempDir()))
		req.Contains(out.String(), "No Java files found")
	})

	t.Run("missing path", func(t *testing.T) {
		g := New(FormatterConfig{Out: &bytes.Buffer{}})
		req.Error(g.ProcessPath(ctx, filepath.Join(root, "missing")))
	})
}
