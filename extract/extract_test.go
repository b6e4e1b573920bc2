package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSinglePage(t *testing.T) {
	pages, err := NewPlaintext().Extract(context.Background(), "doc.txt", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, pages)
}

func TestExtractFormFeedPages(t *testing.T) {
	pages, err := NewPlaintext().Extract(context.Background(), "doc.txt", []byte("page one\fpage two\fpage three"))
	require.NoError(t, err)
	assert.Equal(t, []string{"page one", "page two", "page three"}, pages)
}

func TestExtractTrailingFormFeed(t *testing.T) {
	pages, err := NewPlaintext().Extract(context.Background(), "doc.txt", []byte("page one\f"))
	require.NoError(t, err)
	assert.Equal(t, []string{"page one"}, pages)
}

func TestExtractInvalidUTF8(t *testing.T) {
	_, err := NewPlaintext().Extract(context.Background(), "doc.bin", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := NewPlaintext().Extract(context.Background(), "doc.txt", []byte("   \n  "))
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}
