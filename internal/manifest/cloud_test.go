package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudPropertiesForServerFlavor(t *testing.T) {
	tests := []struct {
		name     string
		flavor   string
		provider string
		want     CloudProperties
		wantErr  bool
	}{
		{
			name:     "aws large",
			flavor:   "m1.large",
			provider: "aws",
			want:     CloudProperties{"instance_type": "m1.large"},
		},
		{
			name:     "upper case provider",
			flavor:   "m1.small",
			provider: "AWS",
			wantErr:  true,
		},
		{
			name:     "padded provider",
			flavor:   "m1.small",
			provider: " aws ",
			wantErr:  true,
		},
		{
			name:     "unsupported provider",
			flavor:   "m1.large",
			provider: "openstack",
			wantErr:  true,
		},
		{
			name:     "empty provider",
			flavor:   "m1.large",
			provider: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CloudPropertiesForServerFlavor(tt.flavor, tt.provider)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedProvider)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloudPropertiesForServerFlavor_FreshMap(t *testing.T) {
	first, err := CloudPropertiesForServerFlavor("m1.large", "aws")
	require.NoError(t, err)
	first["instance_type"] = "changed"

	second, err := CloudPropertiesForServerFlavor("m1.large", "aws")
	require.NoError(t, err)
	assert.Equal(t, "m1.large", second["instance_type"])
}

func TestUnsupportedProviderError_Message(t *testing.T) {
	_, err := CloudPropertiesForServerFlavor("m1.large", "vsphere")

	var upe *UnsupportedProviderError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "vsphere", upe.Provider)
	assert.Equal(t, `unsupported provider "vsphere" (supported: [aws])`, err.Error())
}

func TestSupportedProviders(t *testing.T) {
	assert.Equal(t, []string{"aws"}, SupportedProviders())
	assert.True(t, IsSupportedProvider("aws"))
	assert.False(t, IsSupportedProvider("Aws"))
	assert.False(t, IsSupportedProvider(" aws"))
	assert.False(t, IsSupportedProvider("openstack"))
}
