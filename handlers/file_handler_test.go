package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoredFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "1700000000000-report.pdf", storedFileName(now, "report.pdf"))
}

func TestStoredFileName_StripsDirectories(t *testing.T) {
	now := time.UnixMilli(42)

	// Client-supplied paths must not escape the upload directory.
	assert.Equal(t, "42-evil.sh", storedFileName(now, "../../evil.sh"))
	assert.Equal(t, "42-photo.png", storedFileName(now, "some/dir/photo.png"))
}

func TestStoredFileName_UniquePerMillisecond(t *testing.T) {
	a := storedFileName(time.UnixMilli(1), "a.txt")
	b := storedFileName(time.UnixMilli(2), "a.txt")

	assert.NotEqual(t, a, b)
}
