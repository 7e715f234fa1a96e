package signature

import (
	"testing"

	tserrors "github.com/Grayjou/typesentinel/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindPositional(t *testing.T) {
	t.Parallel()

	sig, err := Of(greet, "name", "excited")
	require.NoError(t, err)

	bound, err := sig.Bind([]any{"Alice", true}, nil)
	require.NoError(t, err)

	name, ok := bound.Value("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)

	assert.Equal(t, true, bound.ValueAt(1))
	assert.True(t, bound.Supplied("name"))
	assert.True(t, bound.Supplied("excited"))
	assert.Equal(t, []string{"name", "excited"}, bound.Names())
	assert.Equal(t, []any{"Alice", true}, bound.Positional())
}

func TestBindKeyword(t *testing.T) {
	t.Parallel()

	sig, err := Of(greet, "name", "excited")
	require.NoError(t, err)

	bound, err := sig.Bind([]any{"Alice"}, map[string]any{"excited": true})
	require.NoError(t, err)

	excited, ok := bound.Value("excited")
	require.True(t, ok)
	assert.Equal(t, true, excited)

	// Raw positionals reflect only what was passed positionally.
	assert.Equal(t, []any{"Alice"}, bound.Positional())
}

func TestBindAppliesDefaults(t *testing.T) {
	t.Parallel()

	sig, err := Of(greet, "name", "excited")
	require.NoError(t, err)

	sig, err = sig.WithDefault("excited", false)
	require.NoError(t, err)

	bound, err := sig.Bind([]any{"Alice"}, nil)
	require.NoError(t, err)

	excited, ok := bound.Value("excited")
	require.True(t, ok)
	assert.Equal(t, false, excited)

	// Defaulted parameters are bound but not "supplied".
	assert.False(t, bound.Supplied("excited"))

	args := bound.Arguments()
	assert.Equal(t, "Alice", args["name"])
	assert.Equal(t, false, args["excited"])
}

func TestBindErrors(t *testing.T) {
	t.Parallel()

	sig, err := Of(greet, "name", "excited")
	require.NoError(t, err)

	// Too many positionals.
	_, err = sig.Bind([]any{"a", true, "extra"}, nil)
	assert.ErrorIs(t, err, tserrors.ErrBind)

	// Unknown keyword.
	_, err = sig.Bind([]any{"a", true}, map[string]any{"nope": 1})
	assert.ErrorIs(t, err, tserrors.ErrBind)

	// Both positional and keyword for the same parameter.
	_, err = sig.Bind([]any{"a"}, map[string]any{"name": "b"})
	assert.ErrorIs(t, err, tserrors.ErrBind)

	// Missing required parameter.
	_, err = sig.Bind([]any{"a"}, nil)
	assert.ErrorIs(t, err, tserrors.ErrBind)
}

func TestBindVariadic(t *testing.T) {
	t.Parallel()

	sig, err := Of(sum, "base", "extra")
	require.NoError(t, err)

	t.Run("with tail", func(t *testing.T) {
		t.Parallel()

		bound, err := sig.Bind([]any{1, 2, 3}, nil)
		require.NoError(t, err)

		extra, ok := bound.Value("extra")
		require.True(t, ok)
		assert.Equal(t, []any{2, 3}, extra)
		assert.True(t, bound.Supplied("extra"))
	})

	t.Run("empty tail", func(t *testing.T) {
		t.Parallel()

		bound, err := sig.Bind([]any{1}, nil)
		require.NoError(t, err)

		extra, ok := bound.Value("extra")
		require.True(t, ok)
		assert.Equal(t, []any{}, extra)
		assert.False(t, bound.Supplied("extra"))
	})

	t.Run("element default fills tail", func(t *testing.T) {
		t.Parallel()

		withDefault, err := sig.WithDefault("extra", 10)
		require.NoError(t, err)

		bound, err := withDefault.Bind([]any{1}, nil)
		require.NoError(t, err)

		extra, _ := bound.Value("extra")
		assert.Equal(t, []any{10}, extra)
		assert.False(t, bound.Supplied("extra"))
	})

	t.Run("slice default used verbatim", func(t *testing.T) {
		t.Parallel()

		withDefault, err := sig.WithDefault("extra", []int{7, 8})
		require.NoError(t, err)

		bound, err := withDefault.Bind([]any{1}, nil)
		require.NoError(t, err)

		extra, _ := bound.Value("extra")
		assert.Equal(t, []int{7, 8}, extra)
	})
}
