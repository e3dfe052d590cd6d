package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    map[string]any
		overlay map[string]any
		want    map[string]any
	}{
		{
			name: "scalar overlay wins",
			base: map[string]any{
				"domain":      "acme.example.com",
				"description": "Cloud Foundry",
			},
			overlay: map[string]any{
				"description": "Acme Cloud",
				"support":     "help@acme.example.com",
			},
			want: map[string]any{
				"domain":      "acme.example.com",
				"description": "Acme Cloud",
				"support":     "help@acme.example.com",
			},
		},
		{
			name: "nested map merge recursive",
			base: map[string]any{
				"nats": map[string]any{
					"user":     "nats",
					"password": "secret",
				},
			},
			overlay: map[string]any{
				"nats": map[string]any{
					"password": "rotated",
					"port":     4222,
				},
			},
			want: map[string]any{
				"nats": map[string]any{
					"user":     "nats",
					"password": "rotated",
					"port":     4222,
				},
			},
		},
		{
			name: "list replace default",
			base: map[string]any{
				"dns": []string{"10.0.0.2"},
			},
			overlay: map[string]any{
				"dns": []any{"8.8.8.8"},
			},
			want: map[string]any{
				"dns": []any{"8.8.8.8"},
			},
		},
		{
			name: "list union admins",
			base: map[string]any{
				"admins": []string{"ops@acme.com", "dev@acme.com"},
			},
			overlay: map[string]any{
				"admins": []any{"dev@acme.com", "sre@acme.com"},
			},
			want: map[string]any{
				"admins": []any{"ops@acme.com", "dev@acme.com", "sre@acme.com"},
			},
		},
		{
			name: "list union supported_versions",
			base: map[string]any{
				"supported_versions": []string{"9.0"},
			},
			overlay: map[string]any{
				"supported_versions": []string{"9.0", "9.1"},
			},
			want: map[string]any{
				"supported_versions": []string{"9.0", "9.1"},
			},
		},
		{
			name: "list extend queues",
			base: map[string]any{
				"queues": []any{"default"},
			},
			overlay: map[string]any{
				"queues": []any{"staging", "default"},
			},
			want: map[string]any{
				"queues": []any{"default", "staging", "default"},
			},
		},
		{
			name: "list extend keeps item types",
			base: map[string]any{
				"queues": []any{1, 2},
			},
			overlay: map[string]any{
				"queues": []any{3, nil},
			},
			want: map[string]any{
				"queues": []any{1, 2, 3, nil},
			},
		},
		{
			name: "list union treats numeric versions as equal",
			base: map[string]any{
				"supported_versions": []any{9.0},
			},
			overlay: map[string]any{
				"supported_versions": []any{"9.0", 9.1},
			},
			want: map[string]any{
				"supported_versions": []any{9.0, 9.1},
			},
		},
		{
			name: "typed properties overlay merges into map",
			base: map[string]any{
				"router": map[string]any{
					"local_route":               "10.0.0.5",
					"client_inactivity_timeout": 600,
					"status":                    map[string]any{"port": 8080, "user": "router"},
				},
			},
			overlay: map[string]any{
				"router": Properties{"status": map[string]any{"port": 9090}},
			},
			want: map[string]any{
				"router": map[string]any{
					"local_route":               "10.0.0.5",
					"client_inactivity_timeout": 600,
					"status":                    map[string]any{"port": 9090, "user": "router"},
				},
			},
		},
		{
			name: "cloud properties overlay merges into map",
			base: map[string]any{
				"cloud_properties": map[string]any{"instance_type": "m1.large"},
			},
			overlay: map[string]any{
				"cloud_properties": CloudProperties{"availability_zone": "us-east-1a"},
			},
			want: map[string]any{
				"cloud_properties": map[string]any{
					"instance_type":     "m1.large",
					"availability_zone": "us-east-1a",
				},
			},
		},
		{
			name: "list of maps is replaced even under union key",
			base: map[string]any{
				"admins": []any{map[string]any{"name": "ops"}},
			},
			overlay: map[string]any{
				"admins": []any{map[string]any{"name": "sre"}},
			},
			want: map[string]any{
				"admins": []any{map[string]any{"name": "sre"}},
			},
		},
		{
			name: "map replaced by scalar",
			base: map[string]any{
				"uaa": map[string]any{"port": 8080},
			},
			overlay: map[string]any{
				"uaa": "disabled",
			},
			want: map[string]any{
				"uaa": "disabled",
			},
		},
		{
			name: "empty base",
			base: map[string]any{},
			overlay: map[string]any{
				"key": "value",
			},
			want: map[string]any{
				"key": "value",
			},
		},
		{
			name: "empty overlay",
			base: map[string]any{
				"key": "value",
			},
			overlay: map[string]any{},
			want: map[string]any{
				"key": "value",
			},
		},
		{
			name:    "nil base",
			base:    nil,
			overlay: map[string]any{"key": "value"},
			want:    map[string]any{"key": "value"},
		},
		{
			name: "deeply nested merge",
			base: map[string]any{
				"uaa": map[string]any{
					"clients": map[string]any{
						"vmc": map[string]any{"secret": "old"},
					},
				},
			},
			overlay: map[string]any{
				"uaa": map[string]any{
					"clients": map[string]any{
						"vmc": map[string]any{"secret": "new", "scope": "read"},
					},
				},
			},
			want: map[string]any{
				"uaa": map[string]any{
					"clients": map[string]any{
						"vmc": map[string]any{"secret": "new", "scope": "read"},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMerge(tt.base, tt.overlay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeProperties(t *testing.T) {
	doc := &Document{
		Properties: Properties{
			"cc": map[string]any{"admins": []string{"ops@acme.com"}},
		},
	}

	MergeProperties(doc, map[string]any{
		"cc":  map[string]any{"admins": []string{"sre@acme.com"}},
		"dea": map[string]any{"max_memory": 2816},
	})

	admins, ok := doc.Properties.Lookup("cc.admins")
	require.True(t, ok)
	assert.Equal(t, []string{"ops@acme.com", "sre@acme.com"}, admins)

	maxMemory, ok := doc.Properties.Lookup("dea.max_memory")
	require.True(t, ok)
	assert.Equal(t, 2816, maxMemory)
}

func TestMergeProperties_NilProperties(t *testing.T) {
	doc := &Document{}

	MergeProperties(doc, map[string]any{"domain": "acme.example.com"})

	assert.Equal(t, Properties{"domain": "acme.example.com"}, doc.Properties)
}

func TestDeepCopy(t *testing.T) {
	t.Run("property tree", func(t *testing.T) {
		original := map[string]any{
			"domain": "acme.io",
			"router": map[string]any{
				"status": map[string]any{"port": 8080},
			},
			"stager": map[string]any{
				"queues": []any{"staging"},
			},
		}

		copied := deepCopy(original).(map[string]any)
		copied["domain"] = "other.io"
		copied["router"].(map[string]any)["status"].(map[string]any)["port"] = 9090
		copied["stager"].(map[string]any)["queues"].([]any)[0] = "changed"

		assert.Equal(t, "acme.io", original["domain"])
		assert.Equal(t, 8080, original["router"].(map[string]any)["status"].(map[string]any)["port"])
		assert.Equal(t, []any{"staging"}, original["stager"].(map[string]any)["queues"])
	})

	t.Run("admin list", func(t *testing.T) {
		original := []string{"ops@acme.io", "sre@acme.io"}

		copied, ok := deepCopy(original).([]string)
		require.True(t, ok)
		copied[0] = "changed"

		assert.Equal(t, "ops@acme.io", original[0])
	})

	t.Run("typed maps become plain maps", func(t *testing.T) {
		cloud := CloudProperties{"instance_type": "m1.large"}
		props := Properties{"domain": "acme.io"}

		copiedCloud, ok := deepCopy(cloud).(map[string]any)
		require.True(t, ok)
		copiedCloud["instance_type"] = "m1.small"
		assert.Equal(t, "m1.large", cloud["instance_type"])

		copiedProps, ok := deepCopy(props).(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"domain": "acme.io"}, copiedProps)
	})

	t.Run("scalars", func(t *testing.T) {
		assert.Nil(t, deepCopy(nil))
		assert.Equal(t, 4096, deepCopy(4096))
		assert.Equal(t, "c1oudc0w", deepCopy("c1oudc0w"))
		assert.Equal(t, true, deepCopy(true))
	})
}

func TestScalarList(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   []any
		wantOK bool
	}{
		{
			name:   "admin emails",
			input:  []string{"ops@acme.io", "sre@acme.io"},
			want:   []any{"ops@acme.io", "sre@acme.io"},
			wantOK: true,
		},
		{
			name:   "decoded yaml list",
			input:  []any{"staging", "default"},
			want:   []any{"staging", "default"},
			wantOK: true,
		},
		{
			name:   "values keep their types",
			input:  []any{9.0, 10, nil, true},
			want:   []any{9.0, 10, nil, true},
			wantOK: true,
		},
		{
			name:   "list of maps",
			input:  []any{map[string]any{"name": "ccadmin"}},
			wantOK: false,
		},
		{
			name:   "nested lists",
			input:  []any{[]any{"a"}},
			wantOK: false,
		},
		{
			name:   "not a list",
			input:  "string",
			wantOK: false,
		},
		{
			name:   "nil",
			input:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scalarList(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a    []any
		b    []any
		want []any
	}{
		{
			name: "no overlap",
			a:    []any{"ops@acme.io"},
			b:    []any{"sre@acme.io"},
			want: []any{"ops@acme.io", "sre@acme.io"},
		},
		{
			name: "with overlap",
			a:    []any{"ops@acme.io", "dev@acme.io"},
			b:    []any{"dev@acme.io", "sre@acme.io"},
			want: []any{"ops@acme.io", "dev@acme.io", "sre@acme.io"},
		},
		{
			name: "duplicates in first",
			a:    []any{"ops@acme.io", "ops@acme.io"},
			b:    []any{},
			want: []any{"ops@acme.io"},
		},
		{
			name: "numbers and numeric strings are one value",
			a:    []any{9.0, 2},
			b:    []any{"9.0", "9", 2.0, "2"},
			want: []any{9.0, 2},
		},
		{
			name: "nil is kept once and not stringified",
			a:    []any{nil},
			b:    []any{nil, "<nil>"},
			want: []any{nil, "<nil>"},
		},
		{
			name: "bool and string differ",
			a:    []any{true},
			b:    []any{"true"},
			want: []any{true, "true"},
		},
		{
			name: "both empty",
			a:    []any{},
			b:    []any{},
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, union(tt.a, tt.b))
		})
	}
}

func TestMergeProperties_TypedOverlayKeepsSubtree(t *testing.T) {
	doc := BaseManifest(acmeParams())

	MergeProperties(doc, map[string]any{
		"router": Properties{"status": map[string]any{"port": 9090}},
	})

	localRoute, ok := doc.Properties.Lookup("router.local_route")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.5", localRoute)

	port, ok := doc.Properties.Lookup("router.status.port")
	require.True(t, ok)
	assert.Equal(t, 9090, port)
}

func TestDeepMerge_StringListsStayStrings(t *testing.T) {
	got := DeepMerge(
		map[string]any{"admins": []string{"ops@acme.io"}, "queues": []string{"staging"}},
		map[string]any{"admins": []string{"sre@acme.io"}, "queues": []string{"default"}},
	)

	assert.Equal(t, []string{"ops@acme.io", "sre@acme.io"}, got["admins"])
	assert.Equal(t, []string{"staging", "default"}, got["queues"])
}

func TestDeepMerge_InputsUntouched(t *testing.T) {
	base := map[string]any{
		"domain": "acme.io",
		"cc": map[string]any{
			"srv_api_uri": "http://api.acme.io",
			"admins":      []string{"ops@acme.io"},
		},
	}
	overlay := map[string]any{
		"domain": "acme.example.com",
		"cc": map[string]any{
			"srv_api_uri": "http://api.acme.example.com",
			"admins":      []string{"sre@acme.io"},
		},
	}

	result := DeepMerge(base, overlay)
	result["domain"] = "changed"
	cc := result["cc"].(map[string]any)
	cc["srv_api_uri"] = "changed"
	cc["admins"].([]string)[0] = "changed"

	assert.Equal(t, "acme.io", base["domain"])
	assert.Equal(t, "http://api.acme.io", base["cc"].(map[string]any)["srv_api_uri"])
	assert.Equal(t, []string{"ops@acme.io"}, base["cc"].(map[string]any)["admins"])
	assert.Equal(t, []string{"sre@acme.io"}, overlay["cc"].(map[string]any)["admins"])
}

func TestDeepMerge_ResultSharesNothingWithBase(t *testing.T) {
	base := map[string]any{
		"nats": map[string]any{"address": "10.0.0.5"},
	}

	result := DeepMerge(base, map[string]any{"domain": "acme.io"})
	result["nats"].(map[string]any)["address"] = "10.0.0.6"

	assert.Equal(t, "10.0.0.5", base["nats"].(map[string]any)["address"])
}

func TestDeepMerge_ListMergesOnlyApplyToTheirKeys(t *testing.T) {
	saved := ListMerges
	t.Cleanup(func() { ListMerges = saved })
	ListMerges = map[string]ListMerge{"dns": ListAppend}

	got := DeepMerge(
		map[string]any{"dns": []string{"10.0.0.2"}, "admins": []string{"ops@acme.com"}},
		map[string]any{"dns": []string{"8.8.8.8"}, "admins": []string{"sre@acme.com"}},
	)

	assert.Equal(t, []string{"10.0.0.2", "8.8.8.8"}, got["dns"])
	assert.Equal(t, []string{"sre@acme.com"}, got["admins"])
}

func TestCloneTree_Nil(t *testing.T) {
	result := cloneTree(nil)
	require.NotNil(t, result)
	assert.Empty(t, result)
}
