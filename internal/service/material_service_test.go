package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
)

// pngHeader 最小 PNG 文件头，足以让 MIME 嗅探识别为 image/png
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func newMaterialEnv(t *testing.T, env *testEnv) *MaterialService {
	t.Helper()
	env.cfg.Storage = config.StorageConfig{Type: "local", LocalPath: t.TempDir()}
	storage := &StorageService{Provider: &LocalStorageProvider{Config: &env.cfg.Storage}}
	return NewMaterialService(env.repo.material, env.repo.category, storage, zap.NewNop())
}

func TestUploadMaterialStoresUnderGeneratedName(t *testing.T) {
	env := newTestEnv(t)
	materials := newMaterialEnv(t, env)

	category := &model.Category{Name: "Handouts"}
	require.NoError(t, env.repo.category.Create(category))

	header := multipartFile(t, "file", "диаграмма.png", pngHeader)
	material, err := materials.Upload(context.Background(), 1, MaterialReq{
		Name:       "Intro diagram",
		CategoryID: category.ID,
	}, header)
	require.NoError(t, err)
	assert.Equal(t, "image/png", material.MimeType)

	// 存储文件名不沿用原始文件名，而是生成的 UUID
	base := filepath.Base(material.URL)
	require.True(t, strings.HasSuffix(base, ".png"))
	_, err = uuid.Parse(strings.TrimSuffix(base, ".png"))
	assert.NoError(t, err)
}

func TestUploadMaterialRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	materials := newMaterialEnv(t, env)

	category := &model.Category{Name: "Handouts"}
	require.NoError(t, env.repo.category.Create(category))

	header := multipartFile(t, "file", "archive.zip", []byte("PK\x03\x04not-really-a-zip"))
	_, err := materials.Upload(context.Background(), 1, MaterialReq{
		Name:       "Archive",
		CategoryID: category.ID,
	}, header)
	assert.Error(t, err)
}
