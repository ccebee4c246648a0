package typemap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-protogen/internal/typemap"
)

func TestResolve_BasePrimitives(t *testing.T) {
	cases := map[string]string{
		"boolean_t": "bool",
		"integer_t": "int32",
		"long_t":    "int64",
		"float_t":   "double",
		"string_t":  "string",
		"json_t":    "string",
	}
	for typeName, want := range cases {
		t.Run(typeName, func(t *testing.T) {
			scalar, err := typemap.Resolve(typeName)
			require.NoError(t, err)
			assert.Equal(t, want, scalar.Proto())
		})
	}
}

func TestResolve_StringDerivedTypes(t *testing.T) {
	// Every type derived from string_t in the OCSF spec.
	for _, typeName := range []string{
		"hostname_t", "ip_t", "mac_t", "url_t", "email_t", "uuid_t",
		"file_path_t", "file_name_t", "file_hash_t", "subnet_t",
		"username_t", "process_name_t", "resource_uid_t", "datetime_t",
		"bytestring_t", "reg_key_path_t",
	} {
		scalar, err := typemap.Resolve(typeName)
		require.NoError(t, err, typeName)
		assert.Equal(t, "string", scalar.Proto(), "expected string for %s", typeName)
	}
}

func TestResolve_TimestampIsInt64NotString(t *testing.T) {
	// timestamp_t is epoch milliseconds (base type long_t). The two-level
	// derivation must land on int64, not string and not an intermediate.
	scalar, err := typemap.Resolve("timestamp_t")
	require.NoError(t, err)
	assert.Equal(t, "int64", scalar.Proto())
}

func TestResolve_DatetimeIsString(t *testing.T) {
	// datetime_t is RFC 3339 text (base type string_t), unlike timestamp_t.
	scalar, err := typemap.Resolve("datetime_t")
	require.NoError(t, err)
	assert.Equal(t, "string", scalar.Proto())
}

func TestResolve_PortIsInt32(t *testing.T) {
	scalar, err := typemap.Resolve("port_t")
	require.NoError(t, err)
	assert.Equal(t, "int32", scalar.Proto())
}

func TestResolve_UnknownTypeIsHardError(t *testing.T) {
	_, err := typemap.Resolve("some_future_type")
	require.Error(t, err)

	var unknownErr *typemap.UnknownTypeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "some_future_type", unknownErr.TypeName)
}
