package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoof/source"
)

func TestReport_SetsClassFlagAndPanicsOnCodeMismatch(t *testing.T) {
	h := NewHandler(nil)
	h.SyntaxError("E1001", "bad token", Span{}, "")
	assert.True(t, h.HadSyntaxError)
	assert.False(t, h.HadAnalysisError)
	assert.False(t, h.HadRuntimeError)

	assert.Panics(t, func() {
		h.NameError("E1002", "wrong prefix for class", Span{}, "")
	})
}

func TestResetErrors_ClearsFlagsAndDiagnosticsKeepsSource(t *testing.T) {
	src := source.New("test.zf", 0, "x\n")
	h := NewHandler(src)
	h.RuntimeError("E8100", "boom", Span{}, "")
	require.True(t, h.HadRuntimeError)
	require.Len(t, h.Diagnostics, 1)

	h.ResetErrors()
	assert.False(t, h.HadError())
	assert.Empty(t, h.Diagnostics)
	assert.Same(t, src, h.Source)
}

func TestFormat_SingleLineSpan(t *testing.T) {
	src := source.New("test.zf", 0, "a = 1 +\n")
	h := NewHandler(src)
	d := Diagnostic{
		Class:   Syntax,
		Code:    "E1010",
		Message: "expected expression after '+'",
		Span: Span{
			Start: source.Pos{Line: 1, Column: 6},
			End:   source.Pos{Line: 1, Column: 7},
		},
		Explanation: "binary operators require a right-hand operand",
	}

	out := h.Format(d)
	lines := strings.Split(out, "\n")

	require.True(t, strings.HasPrefix(lines[0], "-- SyntaxError (E1010) "))
	assert.True(t, strings.HasSuffix(lines[0], " test.zf:1"))
	assert.Equal(t, "expected expression after '+'", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "1| a = 1 +", lines[3])
	assert.Equal(t, " |       ^", lines[4])
	assert.Equal(t, "binary operators require a right-hand operand", lines[5])
}

func TestFormat_HeaderPaddingMathAtLeastThreeDashes(t *testing.T) {
	src := source.New("a-very-long-descriptive-source-file-name-for-padding-math.zf", 0, "x\n")
	h := NewHandler(src)
	d := Diagnostic{
		Class:   Runtime,
		Code:    "E8999",
		Message: "m",
		Span:    Span{Start: source.Pos{Line: 1, Column: 0}, End: source.Pos{Line: 1, Column: 1}},
	}

	out := h.Format(d)
	header := strings.SplitN(out, "\n", 2)[0]

	dashStart := strings.Index(header, ") ") + 2
	dashEnd := strings.LastIndex(header, " ")
	dashes := header[dashStart:dashEnd]

	assert.Regexp(t, `^-+$`, dashes)
	assert.GreaterOrEqual(t, len(dashes), 3)
	assert.True(t, strings.HasSuffix(header, src.Name+":1"))
}

func TestFormat_MultiLineSpanCaretsEachLine(t *testing.T) {
	text := "if 1 ==\n    2 do\n    print 1\n"
	src := source.New("test.zf", 0, text)
	h := NewHandler(src)
	d := Diagnostic{
		Class:   Syntax,
		Code:    "E1020",
		Message: "malformed if condition",
		Span: Span{
			Start: source.Pos{Line: 1, Column: 3},
			End:   source.Pos{Line: 2, Column: 5},
		},
	}

	out := h.Format(d)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "1| if 1 ==", lines[3])
	assert.Equal(t, " |    ^^^^", lines[4])
	assert.Equal(t, "2|     2 do", lines[5])
	assert.Equal(t, " | ^^^^^", lines[6])
}

func TestFormat_ZeroWidthSpanStillDrawsOneCaret(t *testing.T) {
	src := source.New("test.zf", 0, "x\n")
	h := NewHandler(src)
	d := Diagnostic{
		Class: Runtime,
		Code:  "E8001",
		Span: Span{
			Start: source.Pos{Line: 1, Column: 0},
			End:   source.Pos{Line: 1, Column: 0},
		},
	}

	out := h.Format(d)
	lines := strings.Split(out, "\n")
	assert.Equal(t, " | ^", lines[4])
}

func TestFormat_NilSourceFallsBackToPlaceholderName(t *testing.T) {
	h := NewHandler(nil)
	d := Diagnostic{
		Class: Runtime,
		Code:  "E8001",
		Span:  Span{Start: source.Pos{Line: 1, Column: 0}, End: source.Pos{Line: 1, Column: 1}},
	}

	out := h.Format(d)
	assert.Contains(t, out, "<input>:1")
	lines := strings.Split(out, "\n")
	assert.Equal(t, "1| ", lines[3])
}

func TestReports_RendersEveryDiagnosticInOrder(t *testing.T) {
	src := source.New("test.zf", 0, "a\nb\n")
	h := NewHandler(src)
	h.SyntaxError("E1001", "first", Span{Start: source.Pos{Line: 1}, End: source.Pos{Line: 1}}, "")
	h.SyntaxError("E1002", "second", Span{Start: source.Pos{Line: 2}, End: source.Pos{Line: 2}}, "")

	reports := h.Reports()
	require.Len(t, reports, 2)
	assert.Contains(t, reports[0], "first")
	assert.Contains(t, reports[1], "second")
}

func TestSwapSource_ReturnsPreviousAndInstallsNew(t *testing.T) {
	first := source.New("first.zf", 0, "a\n")
	second := source.New("second.zf", 0, "b\n")
	h := NewHandler(first)

	prev := h.SwapSource(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, h.Source)
}
