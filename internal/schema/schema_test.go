package schema_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
)

// minimalSchemaJSON is a tiny but structurally complete schema export.
const minimalSchemaJSON = `{
	"version": "1.7.0",
	"classes": {
		"authentication": {
			"name": "authentication",
			"uid": 3002,
			"caption": "Authentication",
			"category": "iam",
			"category_uid": 3,
			"attributes": {
				"activity_id": {
					"type": "integer_t",
					"caption": "Activity ID",
					"requirement": "required",
					"enum": {
						"0": {"caption": "Unknown"},
						"1": {"caption": "Logon"},
						"2": {"caption": "Logoff"}
					}
				},
				"src_endpoint": {
					"type": "object_t",
					"caption": "Source Endpoint",
					"object_type": "network_endpoint",
					"requirement": "recommended"
				},
				"message": {
					"type": "string_t",
					"caption": "Message",
					"requirement": "recommended"
				},
				"time": {
					"type": "timestamp_t",
					"caption": "Event Time",
					"requirement": "required"
				}
			}
		}
	},
	"objects": {
		"network_endpoint": {
			"name": "network_endpoint",
			"caption": "Network Endpoint",
			"attributes": {
				"ip": {"type": "ip_t", "caption": "IP Address"},
				"port": {"type": "port_t", "caption": "Port"},
				"hostname": {"type": "hostname_t", "caption": "Hostname"}
			}
		}
	}
}`

func TestParse_MinimalSchema(t *testing.T) {
	s, err := schema.Parse([]byte(minimalSchemaJSON))
	require.NoError(t, err)

	assert.Equal(t, "1.7.0", s.Version)
	assert.Len(t, s.Classes, 1)
	assert.Len(t, s.Objects, 1)
}

func TestParse_ClassAttributes(t *testing.T) {
	s, err := schema.Parse([]byte(minimalSchemaJSON))
	require.NoError(t, err)

	auth := s.Class("authentication")
	require.NotNil(t, auth)
	assert.Equal(t, uint32(3002), auth.UID)
	assert.Equal(t, "iam", auth.Category)
	assert.Len(t, auth.Attributes, 4)

	activityID := auth.Attributes["activity_id"]
	assert.Equal(t, "integer_t", activityID.Type)
	assert.NotNil(t, activityID.Enum)
	assert.Equal(t, "Logon", activityID.Enum["1"].Caption)

	srcEndpoint := auth.Attributes["src_endpoint"]
	assert.Equal(t, "object_t", srcEndpoint.Type)
	assert.Equal(t, "network_endpoint", srcEndpoint.ObjectType)
}

func TestParse_DeprecatedAttributes(t *testing.T) {
	const doc = `{
		"version": "1.7.0",
		"classes": {},
		"objects": {
			"test": {
				"name": "test",
				"caption": "Test",
				"attributes": {
					"old_field": {
						"type": "string_t",
						"caption": "Old",
						"@deprecated": {
							"message": "Use new_field instead.",
							"since": "1.4.0"
						}
					}
				}
			}
		}
	}`
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)

	attr := s.Objects["test"].Attributes["old_field"]
	require.NotNil(t, attr.Deprecated)
	assert.Equal(t, "1.4.0", attr.Deprecated.Since)
}

func TestParse_MissingRequiredKeys(t *testing.T) {
	cases := map[string]string{
		"missing version": `{"classes": {}, "objects": {}}`,
		"missing classes": `{"version": "1.7.0", "objects": {}}`,
		"missing objects": `{"version": "1.7.0", "classes": {}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schema.Parse([]byte(doc))
			var parseErr *schema.ParseError
			require.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParse_MalformedEnumValue(t *testing.T) {
	// An enum entry whose value is not a label object must fail, not be
	// silently dropped.
	const doc = `{
		"version": "1.7.0",
		"classes": {},
		"objects": {
			"test": {
				"name": "test",
				"caption": "Test",
				"attributes": {
					"state_id": {
						"type": "integer_t",
						"caption": "State",
						"enum": {"0": 42}
					}
				}
			}
		}
	}`
	_, err := schema.Parse([]byte(doc))
	var parseErr *schema.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalSchemaJSON), 0o644))

	s, err := schema.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.7.0", s.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := schema.Load(filepath.Join(t.TempDir(), "nope", "schema.json"))
	var loadErr *schema.LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestObject_ExtensionPrefixLookup(t *testing.T) {
	const doc = `{
		"version": "1.7.0",
		"classes": {},
		"objects": {
			"win/win_service": {
				"name": "win/win_service",
				"caption": "Windows Service",
				"attributes": {
					"name": {"type": "string_t", "caption": "Name"}
				}
			}
		}
	}`
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)

	t.Run("raw key", func(t *testing.T) {
		assert.NotNil(t, s.Object("win/win_service"))
	})
	t.Run("sanitized key", func(t *testing.T) {
		assert.NotNil(t, s.Object("win_service"))
	})
	t.Run("unknown key", func(t *testing.T) {
		assert.Nil(t, s.Object("linux_service"))
	})
}

func TestResolveObject_SpellingsYieldSameKey(t *testing.T) {
	const doc = `{
		"version": "1.7.0",
		"classes": {},
		"objects": {
			"win/win_service": {
				"name": "win/win_service",
				"caption": "Windows Service",
				"attributes": {
					"name": {"type": "string_t", "caption": "Name"}
				}
			}
		}
	}`
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)

	// Every spelling resolves to the object's own schema key, so closure
	// deduplication sees one identity regardless of how the reference is
	// written.
	rawKey, rawObj := s.ResolveObject("win/win_service")
	strippedKey, strippedObj := s.ResolveObject("win_service")

	require.NotNil(t, rawObj)
	require.NotNil(t, strippedObj)
	assert.Equal(t, "win/win_service", rawKey)
	assert.Equal(t, rawKey, strippedKey)
	assert.Same(t, rawObj, strippedObj)

	missingKey, missingObj := s.ResolveObject("linux_service")
	assert.Empty(t, missingKey)
	assert.Nil(t, missingObj)
}

func TestClassNames_Sorted(t *testing.T) {
	const doc = `{
		"version": "1.7.0",
		"classes": {
			"network_activity": {"name": "network_activity", "uid": 4001, "caption": "Network Activity", "attributes": {}},
			"authentication": {"name": "authentication", "uid": 3002, "caption": "Authentication", "attributes": {}}
		},
		"objects": {}
	}`
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"authentication", "network_activity"}, s.ClassNames())
}
