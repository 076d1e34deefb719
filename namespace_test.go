package nsconf

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceDeclare(t *testing.T) {
	tests := []struct {
		name        string
		property    string
		expectError bool
	}{
		{"ValidSimple", "port", false},
		{"ValidUnderscore", "max_conns", false},
		{"ValidDigits", "retry2", false},
		{"Empty", "", true},
		{"LeadingUnderscore", "_private", true},
		{"Dotted", "server.port", true},
		{"LeadingDigit", "2port", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := newNamespace("test", zerolog.Nop())
			rec, err := ns.Declare(tt.property, PropertyOptions{})
			if tt.expectError {
				assert.ErrorIs(t, err, ErrBadPropertyName)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.property, rec.Name())
			}
		})
	}
}

func TestNamespaceDeclareIdempotent(t *testing.T) {
	ns := newNamespace("test", zerolog.Nop())

	first, err := ns.Declare("port", PropertyOptions{Default: 8080})
	require.NoError(t, err)

	// Redeclaring returns the same record; the new options are discarded.
	second, err := ns.Declare("port", PropertyOptions{Default: 9090})
	require.NoError(t, err)
	assert.Same(t, first, second)

	v, err := second.Value()
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	// State set between declarations survives redeclaration.
	require.NoError(t, first.Set(443))
	third, err := ns.Declare("port", PropertyOptions{})
	require.NoError(t, err)
	v, err = third.Value()
	require.NoError(t, err)
	assert.Equal(t, 443, v)
}

func TestNamespaceGet(t *testing.T) {
	ns := newNamespace("test", zerolog.Nop())
	_, err := ns.Declare("host", PropertyOptions{Default: "localhost"})
	require.NoError(t, err)

	rec, err := ns.Get("host")
	require.NoError(t, err)
	assert.Equal(t, "host", rec.Name())

	_, err = ns.Get("missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = ns.Get("_bad")
	assert.ErrorIs(t, err, ErrBadPropertyName)

	assert.True(t, ns.Has("host"))
	assert.False(t, ns.Has("missing"))
}

func TestNamespaceListOrder(t *testing.T) {
	ns := newNamespace("test", zerolog.Nop())
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := ns.Declare(name, PropertyOptions{})
		require.NoError(t, err)
	}

	// Enumeration preserves declaration order, not lexical order.
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ns.List())

	// Redeclaration does not move a property.
	_, err := ns.Declare("zeta", PropertyOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ns.List())
}

func TestNamespaceDeclareAll(t *testing.T) {
	t.Run("AllOrNothing", func(t *testing.T) {
		ns := newNamespace("test", zerolog.Nop())
		err := ns.DeclareAll(map[string]PropertyOptions{
			"good":     {Default: 1},
			"_invalid": {Default: 2},
		})
		assert.ErrorIs(t, err, ErrBadPropertyName)
		assert.False(t, ns.Has("good"))
	})

	t.Run("ExistingRecordsUntouched", func(t *testing.T) {
		ns := newNamespace("test", zerolog.Nop())
		_, err := ns.Declare("port", PropertyOptions{Default: 8080})
		require.NoError(t, err)

		require.NoError(t, ns.DeclareAll(map[string]PropertyOptions{
			"port": {Default: 9090},
			"host": {Default: "localhost"},
		}))

		rec, err := ns.Get("port")
		require.NoError(t, err)
		v, err := rec.Value()
		require.NoError(t, err)
		assert.Equal(t, 8080, v)
		assert.True(t, ns.Has("host"))
	})
}
