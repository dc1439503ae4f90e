package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/java-imports-group/pkg/resolver"
)

func TestReport_Render(t *testing.T) {
	req := require.New(t)

	var r Report
	r.Add("src/B.java", []resolver.Diagnostic{
		{Kind: resolver.KindUnusedImport, Symbol: "com.acme.Old", Detail: "import com.acme.Old;"},
	})
	r.Add("src/Clean.java", nil)
	r.Add("src/A.java", []resolver.Diagnostic{
		{Kind: resolver.KindMissingImport, Symbol: "Helper", Detail: "import com.acme.util.Helper;"},
		{Kind: resolver.KindUnknownSymbol, Symbol: "TimeoutException", Detail: "not declared in the project"},
	})

	req.Equal(3, r.Files)
	req.Equal(3, r.Len())
	req.Equal(map[resolver.Kind]int{
		resolver.KindMissingImport: 1,
		resolver.KindUnknownSymbol: 1,
		resolver.KindUnusedImport:  1,
	}, r.Counts())

	var buf bytes.Buffer
	req.NoError(r.Render(&buf))
	out := buf.String()

	req.Contains(out, "missing-import")
	req.Contains(out, "import com.acme.util.Helper;")
	req.Contains(out, "TimeoutException")
	req.Contains(out, "unused-import")
	req.NotContains(out, "Clean.java")
	req.Contains(strings.ToLower(out), "3 issues")

	// Rows are sorted by file
	req.Less(strings.Index(out, "src/A.java"), strings.Index(out, "src/B.java"))
}

func TestReport_Render_empty(t *testing.T) {
	req := require.New(t)

	r := Report{Files: 2}
	var buf bytes.Buffer
	req.NoError(r.Render(&buf))
	req.Equal("No import issues found (2 files)\n", buf.String())
}
