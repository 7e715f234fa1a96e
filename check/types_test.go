package check

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfMatchesExactType(t *testing.T) {
	t.Parallel()

	assert.True(t, Of[int]().Matches(42))
	assert.False(t, Of[int]().Matches("42"))
	assert.False(t, Of[int]().Matches(42.0))
	assert.True(t, Of[string]().Matches("hello"))
}

func TestOfInterfaceSatisfaction(t *testing.T) {
	t.Parallel()

	// A concrete type matching through interface satisfaction is the Go
	// rendering of "subclass counts as a match".
	reader := Of[io.Reader]()

	assert.True(t, reader.Matches(strings.NewReader("x")))
	assert.True(t, reader.Matches(&strings.Reader{}))
	assert.False(t, reader.Matches(42))
}

func TestOfAnyMatchesEverything(t *testing.T) {
	t.Parallel()

	anything := Of[any]()

	assert.True(t, anything.Matches(1))
	assert.True(t, anything.Matches("s"))
	assert.True(t, anything.Matches(nil))
}

func TestOfNilValues(t *testing.T) {
	t.Parallel()

	assert.False(t, Of[int]().Matches(nil))
	assert.False(t, Of[string]().Matches(nil))
	assert.True(t, Of[[]byte]().Matches(nil))
	assert.True(t, Of[*strings.Reader]().Matches(nil))
	assert.True(t, Of[io.Reader]().Matches(nil))
	assert.True(t, Of[map[string]int]().Matches(nil))
}

func TestTypeOfNil(t *testing.T) {
	t.Parallel()

	matcher := TypeOf(nil)

	assert.False(t, matcher.Matches(1))
	assert.False(t, matcher.Matches(nil))
	assert.Equal(t, "<nil>", matcher.Name())
}

func TestTypeNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int", Of[int]().Name())
	assert.Equal(t, "string", Of[string]().Name())
	assert.Equal(t, "float64", Of[float64]().Name())

	// Named types render without the package qualifier.
	assert.Equal(t, "Reader", Of[io.Reader]().Name())

	// Unnamed types use the full reflect rendering.
	assert.Equal(t, "[]byte", Of[[]byte]().Name())
	assert.Equal(t, "*strings.Reader", Of[*strings.Reader]().Name())
	assert.Equal(t, "map[string]int", Of[map[string]int]().Name())
}

func TestUnionMatchesAnyAlternative(t *testing.T) {
	t.Parallel()

	u := Union(Of[int](), Of[string]())

	assert.True(t, u.Matches(1))
	assert.True(t, u.Matches("one"))
	assert.False(t, u.Matches(1.0))
	assert.False(t, u.Matches(nil))
}

func TestUnionNamePreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int | string", Union(Of[int](), Of[string]()).Name())
	assert.Equal(t, "string | int", Union(Of[string](), Of[int]()).Name())

	// Overlapping alternatives are not deduplicated.
	assert.Equal(t, "int | int", Union(Of[int](), Of[int]()).Name())
}

func TestUnionEmpty(t *testing.T) {
	t.Parallel()

	u := Union()

	assert.False(t, u.Matches(1))
	assert.Equal(t, "", u.Name())
}

func TestSatisfies(t *testing.T) {
	t.Parallel()

	nonEmpty := Satisfies("non-empty string", func(v any) bool {
		s, ok := v.(string)

		return ok && s != ""
	})

	assert.True(t, nonEmpty.Matches("x"))
	assert.False(t, nonEmpty.Matches(""))
	assert.False(t, nonEmpty.Matches(1))
	assert.Equal(t, "non-empty string", nonEmpty.Name())
}

func TestSatisfiesNilPredicate(t *testing.T) {
	t.Parallel()

	assert.False(t, Satisfies("never", nil).Matches(1))
}

func TestValueTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nil", ValueTypeName(nil))
	assert.Equal(t, "int", ValueTypeName(1))
	assert.Equal(t, "float64", ValueTypeName(3.14))
	assert.Equal(t, "[]byte", ValueTypeName([]byte("x")))
}

func TestTypeOfMatchesReflectType(t *testing.T) {
	t.Parallel()

	matcher := TypeOf(reflect.TypeOf(int64(0)))

	require.Equal(t, "int64", matcher.Name())
	assert.True(t, matcher.Matches(int64(1)))
	assert.False(t, matcher.Matches(1))
}
