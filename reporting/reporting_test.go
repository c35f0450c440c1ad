package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedRestoresPreviousReporter(t *testing.T) {
	var got []string
	restore := Scoped(func(msg any) { got = append(got, ToText(msg)) })
	Report("captured")
	restore()

	var buf bytes.Buffer
	prev := DefaultWriter
	DefaultWriter = &buf
	defer func() { DefaultWriter = prev }()

	Report("back to default")

	assert.Equal(t, []string{"captured"}, got)
	assert.Equal(t, "back to default\n", buf.String())
}

func TestScopedRestoresOnPanic(t *testing.T) {
	var got []string
	func() {
		defer func() { _ = recover() }()
		restore := Scoped(func(msg any) { got = append(got, ToText(msg)) })
		defer restore()
		Report("before panic")
		panic("boom")
	}()

	require.Equal(t, []string{"before panic"}, got)

	// The panicking scope must not leak its reporter.
	var after []string
	restore := Scoped(func(msg any) { after = append(after, ToText(msg)) })
	defer restore()
	Report("next test")
	assert.Equal(t, []string{"next test"}, after)
	assert.Equal(t, []string{"before panic"}, got)
}

func TestToText(t *testing.T) {
	assert.Equal(t, "plain", ToText("plain"))
	assert.Equal(t, "42", ToText(42))
	assert.Equal(t, "[1 2]", ToText([]int{1, 2}))
}

func TestNestedScopes(t *testing.T) {
	var outer, inner []string
	restoreOuter := Scoped(func(msg any) { outer = append(outer, ToText(msg)) })
	defer restoreOuter()

	Report("a")
	restoreInner := Scoped(func(msg any) { inner = append(inner, ToText(msg)) })
	Report("b")
	restoreInner()
	Report("c")

	assert.Equal(t, []string{"a", "c"}, outer)
	assert.Equal(t, []string{"b"}, inner)
}
