package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/storage/s3"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/queue"
)

// UploadInput 单个上传项：文件名、负载流与声明的大小.
type UploadInput struct {
	FileName    string
	Reader      io.Reader
	Size        int64
	Description string
}

// Upload 上传单个文件：校验学校存在与负载限制，推导元数据，
// 负载写入对象存储后元数据落库，最后发布事件.
func (s *FileService) Upload(ctx context.Context, ecoleID, uploaderID uint, in *UploadInput) (*types.FileResponse, error) {
	var ecole model.Ecole

	err := s.dbClient.WithContext(ctx).First(&ecole, ecoleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("ecole not found")
	}

	if err != nil {
		return nil, err
	}

	filename := filepath.Base(in.FileName)
	if reasons := ValidateUpload(s.uploadCfg, filename, in.Size); len(reasons) > 0 {
		return nil, apperr.ValidationFields("invalid upload", map[string]string{
			"file": strings.Join(reasons, "; "),
		})
	}

	storedName, objectKey, err := s.resolveStoredName(ctx, ecoleID, filename)
	if err != nil {
		return nil, err
	}

	file := model.File{
		EcoleID:      ecoleID,
		UploadedByID: uploaderID,
		ObjectKey:    objectKey,
		FileName:     storedName,
		FileType:     DetermineFileType(filename),
		FileSize:     in.Size,
		MimeType:     GuessMimeType(filename),
		Description:  in.Description,
	}

	if err := s.objects.Put(ctx, file.ObjectKey, in.Reader, in.Size, file.MimeType); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithContext(ctx).Create(&file).Error; err != nil {
		// 元数据落库失败时回收已写入的负载
		if rmErr := s.objects.Remove(ctx, file.ObjectKey); rmErr != nil {
			log.Logger().Warn().Err(rmErr).Str("object_key", file.ObjectKey).Msg("rollback payload failed")
		}

		return nil, err
	}

	s.publishStored(&file)

	stored, err := s.find(ctx, file.ID)
	if err != nil {
		return nil, err
	}

	resp := toFileResponse(stored)

	return &resp, nil
}

// UploadMultiple 批量上传到同一所学校. 单项失败不影响其他项，
// 至少一项成功时整体视为创建成功.
func (s *FileService) UploadMultiple(ctx context.Context, ecoleID, uploaderID uint,
	inputs []*UploadInput,
) (*types.MultipleUploadResponse, error) {
	var count int64
	if err := s.dbClient.WithContext(ctx).Model(&model.Ecole{}).
		Where("id = ?", ecoleID).Count(&count).Error; err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, apperr.NotFound("ecole not found")
	}

	resp := &types.MultipleUploadResponse{Files: []types.FileResponse{}}

	for _, in := range inputs {
		uploaded, err := s.Upload(ctx, ecoleID, uploaderID, in)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, types.UploadError{
				FileName: in.FileName,
				Errors:   uploadErrorReasons(err),
			})

			continue
		}

		resp.Uploaded++
		resp.Files = append(resp.Files, *uploaded)
	}

	return resp, nil
}

// Download 打开文件负载流. 记录或负载缺失都按 404 处理.
func (s *FileService) Download(ctx context.Context, id uint) (*types.FileResponse, io.ReadCloser, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.objects.Get(ctx, file.File)
	if errors.Is(err, s3.ErrObjectNotFound) {
		return nil, nil, apperr.NotFound("file payload not found")
	}

	if err != nil {
		return nil, nil, err
	}

	return file, reader, nil
}

// resolveStoredName 确定落盘文件名与对象键. 目标学校下已有同名对象时
// 换成带随机后缀的别名，直到键空闲为止.
func (s *FileService) resolveStoredName(ctx context.Context, ecoleID uint, filename string) (string, string, error) {
	name := filename

	for {
		key := BuildObjectKey(ecoleID, name)

		exists, err := s.objects.Exists(ctx, key)
		if err != nil {
			return "", "", err
		}

		if !exists {
			return name, key, nil
		}

		name = AlternativeFileName(filename)
	}
}

// uploadErrorReasons 把上传错误展开为可读的原因列表.
func uploadErrorReasons(err error) []string {
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		reasons := make([]string, 0, len(fields))
		for _, v := range fields {
			reasons = append(reasons, v)
		}

		return reasons
	}

	return []string{err.Error()}
}

func (s *FileService) publishStored(file *model.File) {
	if s.mqClient == nil {
		return
	}

	payload := queue.FileStoredPayload{
		FileID:  file.ID,
		EcoleID: file.EcoleID,
		Object: queue.ObjectRef{
			Bucket:      configs.GetConfig().S3.BucketName,
			ObjectKey:   file.ObjectKey,
			Size:        file.FileSize,
			ContentType: file.MimeType,
		},
		FileName: file.FileName,
		FileType: file.FileType,
	}

	if err := queue.PublishFileStored(s.mqClient.Publisher(), payload,
		queue.WithProducer("ecolevault")); err != nil {
		log.Logger().Warn().Err(err).Msg("publish file stored event failed")
	}
}
