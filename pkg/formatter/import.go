package formatter

import (
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
	"github.com/siyuan-infoblox/java-imports-group/pkg/std"
)

// ImportGroup represents the blocks an import list is rendered in, in
// output order
type ImportGroup int

const (
	MainGroup      ImportGroup = iota // everything outside java and javax
	ExtensionGroup                    // javax
	StdGroup                          // java
	StaticGroup                       // import static, whatever the root
	groupCount
)

var groupNames = [...]string{"main", "extension", "std", "static"}

func (g ImportGroup) String() string {
	if g >= 0 && g < groupCount {
		return groupNames[g]
	}
	return "unknown"
}

// Classify determines which group an import belongs to
func Classify(imp grammar.Import) ImportGroup {
	switch {
	case imp.Static:
		return StaticGroup
	case std.IsExtensionPackage(imp.Path):
		return ExtensionGroup
	case std.IsStandardPackage(imp.Path):
		return StdGroup
	default:
		return MainGroup
	}
}
