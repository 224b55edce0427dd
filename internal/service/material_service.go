package service

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type MaterialService struct {
	MaterialRepo *repository.MaterialRepository
	CategoryRepo *repository.CategoryRepository
	Storage      *StorageService
	Logger       *zap.Logger
}

func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	categoryRepo *repository.CategoryRepository,
	storage *StorageService,
	logger *zap.Logger,
) *MaterialService {
	return &MaterialService{
		MaterialRepo: materialRepo,
		CategoryRepo: categoryRepo,
		Storage:      storage,
		Logger:       logger,
	}
}

type MaterialReq struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	CategoryID  uint   `form:"categoryId" binding:"required"`
	ModuleID    *uint  `form:"moduleId"`
}

type CategoryReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Upload 校验附件类型后入库，视频附件会探测时长并生成缩略图
func (s *MaterialService) Upload(ctx context.Context, uploaderID uint, req MaterialReq, fileHeader *multipart.FileHeader) (*model.Material, error) {
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage, util.MimeVideo, util.MimePDF})
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := model.GenerateUUID() + ext

	material := &model.Material{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ModuleID:    req.ModuleID,
		UploaderID:  uploaderID,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
	}

	if util.IsVideo(mimeType) {
		url, err := s.uploadVideo(ctx, filename, file, fileHeader.Size, mimeType, material)
		if err != nil {
			return nil, err
		}
		material.URL = url
	} else {
		url, err := s.Storage.Upload(ctx, filename, file, fileHeader.Size, mimeType)
		if err != nil {
			return nil, err
		}
		material.URL = url
	}

	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// uploadVideo 先落临时文件供 ffmpeg 探测，探测失败不阻断上传
func (s *MaterialService) uploadVideo(ctx context.Context, filename string, file multipart.File, size int64, mimeType string, material *model.Material) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(file); err != nil {
		return "", err
	}

	if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
		s.Logger.Warn("视频探测失败", zap.String("file", filename), zap.Error(err))
	} else {
		material.Duration = info.Duration
	}

	thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.jpg"
	thumbPath := filepath.Join(os.TempDir(), thumbName)
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, 1); err != nil {
		s.Logger.Warn("缩略图生成失败", zap.String("file", filename), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		if thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
			material.ThumbnailURL = thumbURL
		}
	}

	return s.Storage.UploadFile(ctx, filename, tmp.Name(), mimeType)
}

func (s *MaterialService) GetByID(id uint) (*model.Material, error) {
	return s.MaterialRepo.FindByID(id)
}

func (s *MaterialService) List(page, limit int, categoryID, moduleID uint) ([]model.Material, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.MaterialRepo.List(page, limit, categoryID, moduleID)
}

func (s *MaterialService) Update(id uint, name, description string, categoryID uint) (*model.Material, error) {
	material, err := s.MaterialRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	material.Name = name
	material.Description = description
	if categoryID > 0 {
		if _, err := s.CategoryRepo.FindByID(categoryID); err != nil {
			return nil, err
		}
		material.CategoryID = categoryID
	}
	if err := s.MaterialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

// Delete 删除记录并尽力清理存储对象
func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	material, err := s.MaterialRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.MaterialRepo.Delete(id); err != nil {
		return err
	}
	if material.URL != "" {
		if err := s.Storage.Delete(ctx, filepath.Base(material.URL)); err != nil {
			s.Logger.Warn("存储对象清理失败", zap.String("url", material.URL), zap.Error(err))
		}
	}
	return nil
}

func (s *MaterialService) CreateCategory(req CategoryReq) (*model.Category, error) {
	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *MaterialService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.ListAll()
}

func (s *MaterialService) UpdateCategory(id uint, req CategoryReq) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *MaterialService) DeleteCategory(id uint) error {
	return s.CategoryRepo.Delete(id)
}
