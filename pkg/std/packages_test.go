package std

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
)

func TestIsStandardPackage(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name       string
		importPath string
		standard   bool
		extension  bool
	}{
		{"standard package - java.util", "java.util.List", true, false},
		{"standard package - java.io", "java.io", true, false},
		{"extension package - javax.inject", "javax.inject.Inject", false, true},
		{"non-standard package - com.google", "com.google.common.base.Strings", false, false},
		{"prefix is not enough", "javafx.scene.Node", false, false},
		{"jakarta is third party", "jakarta.inject.Inject", false, false},
		{"empty string", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := grammar.NewPath(tt.importPath)
			req.Equal(tt.standard, IsStandardPackage(path), "IsStandardPackage(%q)", tt.importPath)
			req.Equal(tt.extension, IsExtensionPackage(path), "IsExtensionPackage(%q)", tt.importPath)
		})
	}
}

func TestBuiltinsMapNotEmpty(t *testing.T) {
	req := require.New(t)
	req.NotEmpty(Builtins, "Builtins map should not be empty")

	expected := []string{"int", "boolean", "void", "String", "Object", "Integer", "Override", "RuntimeException"}
	for _, name := range expected {
		req.True(IsBuiltin(name), "Expected builtin %q not found in Builtins map", name)
	}

	req.False(IsBuiltin("List"), "java.util types need an import")
	req.False(IsBuiltin("string"), "builtins are case sensitive")
}
