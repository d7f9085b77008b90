package file

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFileName(t *testing.T) {
	name := buildFileName("screenshot.PNG")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 18+len(".png"))

	assert.True(t, strings.HasSuffix(buildFileName("noext"), ".dat"))
	assert.NotEqual(t, buildFileName("a.jpg"), buildFileName("a.jpg"))
}

func TestValidateUpload(t *testing.T) {
	allowed := []string{"png", "pdf"}

	assert.NoError(t, validateUpload("cv.pdf", 1024, allowed, 10))
	assert.NoError(t, validateUpload("Cover.PNG", 1024, allowed, 10))

	assert.Error(t, validateUpload("script.sh", 1024, allowed, 10))
	assert.Error(t, validateUpload("noext", 1024, allowed, 10))
	assert.Error(t, validateUpload("big.png", 11*1024*1024, allowed, 10))
	assert.NoError(t, validateUpload("big.png", 11*1024*1024, allowed, 0))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "a-b_c.png", safeName("a-b_c.png"))
	assert.Equal(t, "passwd", safeName("../../etc/passwd"))
	assert.Equal(t, "", safeName("a b.png"))
	assert.Equal(t, "", safeName(""))
}

func TestNormalizeType(t *testing.T) {
	assert.Equal(t, "image", normalizeType(" Image "))
	assert.Equal(t, "", normalizeType("../image"))
	assert.Equal(t, "image", normalizeTypeDefault("", "image"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "text/plain", detectContentType("a.bin", nil, "text/plain"))
	assert.Contains(t, detectContentType("a.png", nil, ""), "image/png")
	assert.Equal(t, "application/octet-stream", detectContentType("a", nil, ""))
}
