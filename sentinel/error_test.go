package sentinel

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grayjou/typesentinel/errors"
	"github.com/Grayjou/typesentinel/tests"
)

func failingCall(t *testing.T) error {
	t.Helper()

	g, err := Wrap(describe, WithParams("name", "age"))
	require.NoError(t, err)

	_, err = g.Call(tests.Context(t), 42, "old")
	require.Error(t, err)

	return err
}

func TestError_UnwrapsToFailedCheck(t *testing.T) {
	t.Parallel()

	err := failingCall(t)

	assert.ErrorIs(t, err, errors.ErrFailedCheck)
	assert.NotErrorIs(t, err, errors.ErrBind)
}

func TestAsError(t *testing.T) {
	t.Parallel()

	err := failingCall(t)

	failure, ok := AsError(err)
	require.True(t, ok)
	require.NotNil(t, failure.Context)

	assert.Equal(t, []any{42, "old"}, failure.Context.Args)
	assert.Equal(t, []string{"name", "age"}, failure.Context.ArgNames)
	assert.NotEmpty(t, failure.Context.CallID)
	assert.NotNil(t, failure.Context.Signature)
	assert.NotNil(t, failure.Context.Bound)
}

func TestAsError_OtherError(t *testing.T) {
	t.Parallel()

	_, ok := AsError(stderrors.New("unrelated"))
	assert.False(t, ok)
}

func TestContext_PassedResults(t *testing.T) {
	t.Parallel()

	g, err := Wrap(describe, WithParams("name", "age"))
	require.NoError(t, err)

	_, err = g.Call(tests.Context(t), "bob", "old")
	require.Error(t, err)

	failure, ok := AsError(err)
	require.True(t, ok)

	require.Len(t, failure.Context.AllResults, 2)
	require.Len(t, failure.Context.FailedResults, 1)

	passed := failure.Context.PassedResults()
	require.Len(t, passed, 1)
	assert.Equal(t, "name", passed[0].Name)
	assert.Equal(t, "age", failure.Context.FailedResults[0].Name)
}

func TestError_DistinctCallIDs(t *testing.T) {
	t.Parallel()

	first, ok := AsError(failingCall(t))
	require.True(t, ok)

	second, ok := AsError(failingCall(t))
	require.True(t, ok)

	assert.NotEqual(t, first.Context.CallID, second.Context.CallID)
}
