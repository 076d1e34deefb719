package nsconf

import (
	"os"
	"strconv"
	"testing"

	"github.com/go-ini/ini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atoi is the format function used wherever a string-typed source feeds an
// integer property.
func atoi(name string, raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return raw
	}
	return n
}

func newTestResolver(t *testing.T, opts PropertyOptions) *Resolver {
	t.Helper()
	m := NewManager()
	r, err := NewResolver(m, "myapp.port", false, map[string]PropertyOptions{
		"port": opts,
	})
	require.NoError(t, err)
	return r
}

func TestResolvePrecedence(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{Default: 30})

	args := map[string]any{"port": 10}
	t.Setenv("NSCONF_TEST_PORT", "20")

	r.SetArgAlias(args, "port", nil)
	r.SetEnvAlias([]string{"NSCONF_TEST_PORT"}, atoi)

	// Argument wins over environment and default.
	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	// Without the argument the environment wins.
	delete(args, "port")
	v, err = r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	// Without the environment the default wins.
	require.NoError(t, os.Unsetenv("NSCONF_TEST_PORT"))
	v, err = r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 30, v)
}

func TestResolveEnvCandidateOrder(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{})

	t.Setenv("NSCONF_TEST_SECOND", "two")
	r.SetEnvAlias([]string{"NSCONF_TEST_FIRST", "NSCONF_TEST_SECOND"}, nil)

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	// When an earlier candidate appears it wins, in list order.
	t.Setenv("NSCONF_TEST_FIRST", "one")
	v, err = r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

func TestResolveCfgSource(t *testing.T) {
	cfg, err := ini.Load([]byte("[server]\nport = 8443\n"))
	require.NoError(t, err)

	r := newTestResolver(t, PropertyOptions{})
	r.SetCfgAlias(cfg, "server", "port", atoi)

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 8443, v)

	// A missing key is absence, not an error.
	r2 := newTestResolver(t, PropertyOptions{}).
		SetCfgAlias(cfg, "server", "host", nil)
	_, err = r2.Resolve()
	assert.ErrorIs(t, err, ErrNoValueAvailable)
}

func TestResolveDictSource(t *testing.T) {
	dict := map[string]any{
		"A": map[string]any{
			"B": map[string]any{
				"C": 7,
			},
		},
	}

	t.Run("RoundTrip", func(t *testing.T) {
		r := newTestResolver(t, PropertyOptions{})
		r.SetDictAlias(dict, []string{"A", "B", "C"}, nil)

		// No format function: the stored value comes back exactly.
		v, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("MissingPathIsAbsent", func(t *testing.T) {
		r := newTestResolver(t, PropertyOptions{})
		r.SetDictAlias(dict, []string{"A", "X", "C"}, nil)
		_, err := r.Resolve()
		assert.ErrorIs(t, err, ErrNoValueAvailable)
	})

	t.Run("NonMapIntermediateIsAbsent", func(t *testing.T) {
		r := newTestResolver(t, PropertyOptions{})
		r.SetDictAlias(dict, []string{"A", "B", "C", "D"}, nil)
		_, err := r.Resolve()
		assert.ErrorIs(t, err, ErrNoValueAvailable)
	})
}

func TestResolveValidationGate(t *testing.T) {
	var callbacks int
	r := newTestResolver(t, PropertyOptions{
		Validate: func(name string, v any) bool {
			n, ok := v.(int)
			return ok && n >= 0 && n < 10
		},
		Callback: func(name string, v any) { callbacks++ },
	})

	// The winning source supplies an out-of-range value: resolution fails
	// and does not fall through to the valid lower-precedence source.
	r.SetArgAlias(map[string]any{"port": 15}, "port", nil)
	r.SetDictAlias(map[string]any{"port": 5}, []string{"port"}, nil)

	_, err := r.Resolve()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Zero(t, callbacks)

	_, err = r.Value()
	assert.ErrorIs(t, err, ErrNotResolved)
}

func TestResolveCallbackOnce(t *testing.T) {
	var callbacks int
	r := newTestResolver(t, PropertyOptions{
		Callback: func(name string, v any) { callbacks++ },
	})

	r.SetArgAlias(map[string]any{"port": 8080}, "port", nil)

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 8080, v)
	assert.Equal(t, 1, callbacks)

	// Unchanged sources: same value, no second callback.
	v, err = r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 8080, v)
	assert.Equal(t, 1, callbacks)
}

func TestResolveNoValueAvailable(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{})
	_, err := r.Resolve()
	assert.ErrorIs(t, err, ErrNoValueAvailable)

	// The record stays unset after a failed resolution.
	_, err = r.Value()
	assert.ErrorIs(t, err, ErrNotResolved)
}

func TestResolveResolverDefaultOverridesRecordDefault(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{Default: 30})
	r.SetDefault(99)

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 99, v)
}

func TestResolverAliasOverwrite(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{})

	r.SetArgAlias(map[string]any{"old": 1}, "old", nil)
	r.SetArgAlias(map[string]any{"new": 2}, "new", nil)

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestResolverFormatReceivesName(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{})

	var gotName string
	r.SetArgAlias(map[string]any{"port": "8080"}, "port", func(name string, raw any) any {
		gotName = name
		return atoi(name, raw)
	})

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 8080, v)
	assert.Equal(t, "port", gotName)
}

func TestResolverSetValue(t *testing.T) {
	r := newTestResolver(t, PropertyOptions{
		Validate: func(name string, v any) bool { _, ok := v.(int); return ok },
	})

	require.NoError(t, r.SetValue(42))
	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	assert.ErrorIs(t, r.SetValue("nope"), ErrValidationFailed)
}

func TestNewResolverPropertyNotFound(t *testing.T) {
	m := NewManager()
	_, err := NewResolver(m, "myapp.unknown", false, nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestResolverSharedRecord(t *testing.T) {
	m := NewManager()
	ns, err := m.GetOrCreate("myapp", map[string]PropertyOptions{
		"port": {Default: 30},
	})
	require.NoError(t, err)

	r1, err := NewResolver(m, "myapp.port", false, nil)
	require.NoError(t, err)
	r2, err := NewResolver(m, "myapp.port", false, nil)
	require.NoError(t, err)

	r1.SetArgAlias(map[string]any{"port": 10}, "port", nil)
	_, err = r1.Resolve()
	require.NoError(t, err)

	// Both resolvers and the namespace observe the committed value.
	v, err := r2.Value()
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	rec, err := ns.Get("port")
	require.NoError(t, err)
	v, err = rec.Value()
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}
