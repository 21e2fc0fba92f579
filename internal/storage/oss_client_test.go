package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyFromURL(t *testing.T) {
	key, err := objectKeyFromURL("https://staff-photos.oss-ap-southeast-1.aliyuncs.com/janedoe_1700000000000.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "janedoe_1700000000000.jpg", key)
}

func TestObjectKeyFromURL_NestedPath(t *testing.T) {
	key, err := objectKeyFromURL("https://staff-photos.oss-ap-southeast-1.aliyuncs.com/photos/2024/janedoe.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "photos/2024/janedoe.jpg", key)
}

func TestObjectKeyFromURL_CDNBase(t *testing.T) {
	key, err := objectKeyFromURL("https://assets.example.com/janedoe_1.jpg", "https://assets.example.com")
	require.NoError(t, err)
	assert.Equal(t, "janedoe_1.jpg", key)
}

func TestObjectKeyFromURL_NoKey(t *testing.T) {
	_, err := objectKeyFromURL("https://staff-photos.oss-ap-southeast-1.aliyuncs.com/", "")
	assert.Error(t, err)

	_, err = objectKeyFromURL("https://staff-photos.oss-ap-southeast-1.aliyuncs.com", "")
	assert.Error(t, err)
}
