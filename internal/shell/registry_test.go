package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Available(t *testing.T) {
	t.Parallel()
	connected := false
	r := NewRegistry()
	r.Register("cluster delete", func() bool { return connected })

	assert.True(t, r.Available("version"), "unregistered commands are available")
	assert.False(t, r.Available("cluster delete"))

	connected = true
	assert.True(t, r.Available("cluster delete"))
}

func TestRegistry_Check(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register("cluster create", func() bool { return false })

	err := r.Check("cluster create")
	require.Error(t, err)
	assert.Equal(t, "Command 'cluster create' is not available in the current context", err.Error())

	var unavailable *UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "cluster create", unavailable.Path)

	assert.NoError(t, r.Check("hint"))
}

func TestRegistry_Commands(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register("services list", func() bool { return true })
	r.Register("cluster create", func() bool { return false })
	r.Register("blueprint list", nil)

	assert.Equal(t, []string{"blueprint list", "services list"}, r.Commands())
}

func TestPredicateCombinators(t *testing.T) {
	t.Parallel()
	yes := func() bool { return true }
	no := func() bool { return false }

	assert.False(t, Not(yes)())
	assert.True(t, Not(no)())
	assert.True(t, All(yes, yes)())
	assert.False(t, All(yes, no)())
	assert.True(t, All()())
}
