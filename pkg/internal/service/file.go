package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/configs"
	ctxPkg "github.com/yeisme/ecolevault/pkg/context"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/mq"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/queue"
)

// FileService 文件元数据与对象负载的管理.
type FileService struct {
	dbClient  *db.Client
	objects   storage.ObjectStore
	mqClient  *mq.Client
	uploadCfg *configs.UploadConfig
}

// NewFileService 从请求上下文取存储句柄并构建服务.
func NewFileService(c context.Context) *FileService {
	return &FileService{
		dbClient:  ctxPkg.GetDBClient(c),
		objects:   ctxPkg.GetObjectStore(c),
		mqClient:  ctxPkg.GetMQClient(c),
		uploadCfg: &configs.GetConfig().Upload,
	}
}

// ListFilter 文件列表过滤条件，多个条件按 AND 组合.
type ListFilter struct {
	EcoleID  string // 按学校 ID
	FileType string // 按文件类型
	MyFiles  bool   // 只看当前账户上传的
	UserID   uint   // MyFiles 生效时的账户 ID
}

// List 按过滤条件返回文件列表（精简字段），按上传时间倒序.
func (s *FileService) List(ctx context.Context, filter *ListFilter) ([]types.FileListItem, error) {
	q := s.dbClient.WithContext(ctx).Model(&model.File{}).
		Preload("Ecole").Preload("UploadedBy").
		Order("uploaded_at DESC")

	if filter.EcoleID != "" {
		id, err := strconv.ParseUint(filter.EcoleID, 10, 64)
		if err != nil {
			return nil, apperr.Validation("invalid ecole filter")
		}

		q = q.Where("ecole_id = ?", id)
	}

	if filter.FileType != "" {
		q = q.Where("file_type = ?", filter.FileType)
	}

	if filter.MyFiles {
		q = q.Where("uploaded_by_id = ?", filter.UserID)
	}

	var files []model.File
	if err := q.Find(&files).Error; err != nil {
		return nil, err
	}

	out := make([]types.FileListItem, 0, len(files))
	for i := range files {
		out = append(out, toFileListItem(&files[i]))
	}

	return out, nil
}

// Get 按 ID 返回文件详情.
func (s *FileService) Get(ctx context.Context, id uint) (*types.FileResponse, error) {
	file, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toFileResponse(file)

	return &resp, nil
}

// Update 更新文件. 只有描述与所属学校可变，派生的元数据字段保持只读.
// 迁移到另一所学校时对象负载同步换键.
func (s *FileService) Update(ctx context.Context, id uint, req *types.FileUpdateRequest) (*types.FileResponse, error) {
	file, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		file.Description = *req.Description
	}

	if req.Ecole != nil && *req.Ecole != file.EcoleID {
		if err := s.moveToEcole(ctx, file, *req.Ecole); err != nil {
			return nil, err
		}
	}

	// 只写标量列，避免 gorm 自动保存预加载的 Ecole 关联
	updates := map[string]any{
		"description": file.Description,
		"ecole_id":    file.EcoleID,
		"object_key":  file.ObjectKey,
		"file_name":   file.FileName,
	}
	if err := s.dbClient.WithContext(ctx).Model(&model.File{}).
		Where("id = ?", file.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 关联可能已换校，重新加载后再渲染
	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toFileResponse(updated)

	return &resp, nil
}

// Delete 删除文件记录并移除对象负载. 负载已不存在时静默跳过.
func (s *FileService) Delete(ctx context.Context, id uint) error {
	file, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.dbClient.WithContext(ctx).Delete(&model.File{}, id).Error; err != nil {
		return err
	}

	if err := s.objects.Remove(ctx, file.ObjectKey); err != nil {
		// 记录已删，负载留给孤儿清理任务兜底
		log.Logger().Warn().Err(err).Str("object_key", file.ObjectKey).Msg("remove payload failed")
	}

	s.publishDeleted(file)

	return nil
}

// moveToEcole 把文件迁移到另一所学校：校验目标存在，负载复制到新键后删除旧键.
func (s *FileService) moveToEcole(ctx context.Context, file *model.File, ecoleID uint) error {
	var count int64
	if err := s.dbClient.WithContext(ctx).Model(&model.Ecole{}).
		Where("id = ?", ecoleID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return apperr.NotFound("ecole not found")
	}

	oldKey := file.ObjectKey

	newName, newKey, err := s.resolveStoredName(ctx, ecoleID, file.FileName)
	if err != nil {
		return err
	}

	reader, err := s.objects.Get(ctx, oldKey)
	if err == nil {
		defer func() { _ = reader.Close() }()

		if err := s.objects.Put(ctx, newKey, reader, file.FileSize, file.MimeType); err != nil {
			return err
		}

		if err := s.objects.Remove(ctx, oldKey); err != nil {
			log.Logger().Warn().Err(err).Str("object_key", oldKey).Msg("remove old payload after move failed")
		}
	}

	file.EcoleID = ecoleID
	file.ObjectKey = newKey
	file.FileName = newName

	return nil
}

func (s *FileService) find(ctx context.Context, id uint) (*model.File, error) {
	var file model.File

	err := s.dbClient.WithContext(ctx).
		Preload("Ecole").Preload("UploadedBy").
		First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("file not found")
	}

	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (s *FileService) publishDeleted(file *model.File) {
	if s.mqClient == nil {
		return
	}

	payload := queue.FileDeletedPayload{
		FileID:  file.ID,
		EcoleID: file.EcoleID,
		Object: queue.ObjectRef{
			Bucket:    configs.GetConfig().S3.BucketName,
			ObjectKey: file.ObjectKey,
			Size:      file.FileSize,
		},
	}

	if err := queue.PublishFileDeleted(s.mqClient.Publisher(), payload,
		queue.WithProducer("ecolevault")); err != nil {
		log.Logger().Warn().Err(err).Msg("publish file deleted event failed")
	}
}

func toFileListItem(f *model.File) types.FileListItem {
	return types.FileListItem{
		ID:                 f.ID,
		FileName:           f.FileName,
		FileType:           f.FileType,
		FileSize:           f.FileSize,
		Ecole:              f.EcoleID,
		EcoleName:          f.Ecole.Name,
		UploadedByUsername: f.UploadedBy.Username,
		UploadedAt:         f.UploadedAt,
	}
}

func toFileResponse(f *model.File) types.FileResponse {
	return types.FileResponse{
		ID:                 f.ID,
		Ecole:              f.EcoleID,
		EcoleName:          f.Ecole.Name,
		File:               f.ObjectKey,
		FileURL:            "/files/" + strconv.FormatUint(uint64(f.ID), 10) + "/download/",
		FileName:           f.FileName,
		FileType:           f.FileType,
		FileSize:           f.FileSize,
		FileSizeDisplay:    FormatFileSize(f.FileSize),
		MimeType:           f.MimeType,
		Description:        f.Description,
		UploadedBy:         f.UploadedByID,
		UploadedByUsername: f.UploadedBy.Username,
		UploadedAt:         f.UploadedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}
