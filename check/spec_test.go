package check

import (
	"testing"

	tserrors "github.com/Grayjou/typesentinel/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapPositional(t *testing.T) {
	t.Parallel()

	c, err := FromMap(map[string]any{
		"key":  0,
		"type": "int",
	})
	require.NoError(t, err)

	assert.Equal(t, KindPositional, c.Kind())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "int", c.Expected().Name())
}

func TestFromMapKeywordWithUnion(t *testing.T) {
	t.Parallel()

	c, err := FromMap(map[string]any{
		"key":     "label",
		"kind":    "keyword",
		"type":    "int | string",
		"message": "label must be an int or a string",
	})
	require.NoError(t, err)

	assert.Equal(t, KindKeyword, c.Kind())
	assert.Equal(t, "label", c.Key())
	assert.Equal(t, "int | string", c.Expected().Name())
	assert.Equal(t, "label must be an int or a string", c.Message())
}

func TestFromMapDirectMatcher(t *testing.T) {
	t.Parallel()

	c, err := FromMap(map[string]any{
		"key":  "count",
		"type": Of[int](),
	})
	require.NoError(t, err)

	assert.True(t, c.Expected().Matches(1))
}

func TestFromMapOptional(t *testing.T) {
	t.Parallel()

	c, err := FromMap(map[string]any{
		"key":      "excited",
		"type":     "bool",
		"optional": true,
	})
	require.NoError(t, err)

	assert.True(t, c.Optional())
}

func TestFromMapErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		entry map[string]any
	}{
		{"missing type", map[string]any{"key": 0}},
		{"unknown type", map[string]any{"key": 0, "type": "gizmo"}},
		{"keyword kind with int key", map[string]any{"key": 0, "kind": "keyword", "type": "int"}},
		{"positional kind with string key", map[string]any{"key": "a", "kind": "positional", "type": "int"}},
		{"optional positional", map[string]any{"key": 0, "type": "int", "optional": true}},
		{"bad key type", map[string]any{"key": 1.5, "type": "int"}},
		{"bad kind", map[string]any{"key": "a", "kind": "sideways", "type": "int"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromMap(tc.entry)
			assert.ErrorIs(t, err, tserrors.ErrBadCheck)
		})
	}
}

func TestParseSpec(t *testing.T) {
	t.Parallel()

	doc := []byte(`
checks:
  - key: 0
    type: int
  - key: label
    kind: keyword
    type: int | string
    message: label must be an int or a string
  - key: excited
    type: bool
    optional: true
    name: excitement
`)

	checks, err := ParseSpec(doc)
	require.NoError(t, err)
	require.Len(t, checks, 3)

	assert.Equal(t, KindPositional, checks[0].Kind())
	assert.Equal(t, "int | string", checks[1].Expected().Name())
	assert.True(t, checks[2].Optional())
	assert.Equal(t, "excitement", checks[2].DisplayName())
}

func TestParseSpecRejectsMalformedEntries(t *testing.T) {
	t.Parallel()

	_, err := ParseSpec([]byte("checks:\n  - key: 0\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tserrors.ErrBadCheck)

	_, err = ParseSpec([]byte("checks: {not a list}"))
	assert.Error(t, err)
}

func TestRegisterType(t *testing.T) {
	t.Parallel()

	require.NoError(t, RegisterType("duration-ish", Satisfies("duration-ish", func(v any) bool {
		_, ok := v.(int64)

		return ok
	})))

	matcher, err := LookupType("duration-ish")
	require.NoError(t, err)
	assert.True(t, matcher.Matches(int64(5)))

	assert.ErrorIs(t, RegisterType("", Of[int]()), tserrors.ErrBadCheck)
	assert.ErrorIs(t, RegisterType("a|b", Of[int]()), tserrors.ErrBadCheck)
	assert.ErrorIs(t, RegisterType("x", nil), tserrors.ErrBadCheck)
}

func TestLookupTypeUnknown(t *testing.T) {
	t.Parallel()

	_, err := LookupType("gizmo")
	assert.ErrorIs(t, err, tserrors.ErrBadCheck)

	_, err = LookupType("int | gizmo")
	assert.ErrorIs(t, err, tserrors.ErrBadCheck)
}
