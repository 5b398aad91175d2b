package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
)

func TestS3Storage_KeyMapping(t *testing.T) {
	s := newS3Storage(nil, "bucket", "/uploads/")

	assert.Equal(t, "uploads/notes.txt", s.key("notes.txt"))
	assert.Equal(t, "uploads/", s.listPrefix())

	name, ok := s.nameFromKey("uploads/notes.txt")
	assert.True(t, ok)
	assert.Equal(t, "notes.txt", name)

	_, ok = s.nameFromKey("other/notes.txt")
	assert.False(t, ok)

	_, ok = s.nameFromKey("uploads/nested/notes.txt")
	assert.False(t, ok)
}

func TestS3Storage_KeyMappingWithoutPrefix(t *testing.T) {
	s := newS3Storage(nil, "bucket", "")

	assert.Equal(t, "notes.txt", s.key("notes.txt"))
	assert.Equal(t, "", s.listPrefix())

	name, ok := s.nameFromKey("notes.txt")
	assert.True(t, ok)
	assert.Equal(t, "notes.txt", name)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", &types.NotFound{})))
	assert.False(t, isNotFound(errors.New("connection reset")))
}
