package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/ecolevault/pkg/apperr"
	ctxPkg "github.com/yeisme/ecolevault/pkg/context"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/storage"
	"github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/mq"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/queue"
)

// EcoleService 学校记录的增删改查.
type EcoleService struct {
	dbClient *db.Client
	objects  storage.ObjectStore
	mqClient *mq.Client
}

// NewEcoleService 从请求上下文取存储句柄并构建服务.
func NewEcoleService(c context.Context) *EcoleService {
	return &EcoleService{
		dbClient: ctxPkg.GetDBClient(c),
		objects:  ctxPkg.GetObjectStore(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// List 返回全部学校.
func (s *EcoleService) List(ctx context.Context) ([]types.EcoleResponse, error) {
	var ecoles []model.Ecole
	if err := s.dbClient.WithContext(ctx).Find(&ecoles).Error; err != nil {
		return nil, err
	}

	out := make([]types.EcoleResponse, 0, len(ecoles))
	for i := range ecoles {
		out = append(out, toEcoleResponse(&ecoles[i]))
	}

	return out, nil
}

// Create 创建学校，StudentsCount 由服务端维护，始终从 0 起.
func (s *EcoleService) Create(ctx context.Context, req *types.EcoleCreateRequest) (*types.EcoleResponse, error) {
	ecole := model.Ecole{
		Name:       trimName(req.Name),
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
	}

	if err := s.dbClient.WithContext(ctx).Create(&ecole).Error; err != nil {
		return nil, err
	}

	s.publishCreated(&ecole)

	resp := toEcoleResponse(&ecole)

	return &resp, nil
}

// Get 按 ID 查询学校.
func (s *EcoleService) Get(ctx context.Context, id uint) (*types.EcoleResponse, error) {
	ecole, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toEcoleResponse(ecole)

	return &resp, nil
}

// Update 更新学校. 请求中缺省的字段保留存量值，StudentsCount 不可由客户端设置.
func (s *EcoleService) Update(ctx context.Context, id uint, req *types.EcoleUpdateRequest) (*types.EcoleResponse, error) {
	ecole, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ecole.Name = trimName(*req.Name)
	}

	if req.Address != nil {
		ecole.Address = *req.Address
	}

	if req.City != nil {
		ecole.City = *req.City
	}

	if req.PostalCode != nil {
		ecole.PostalCode = *req.PostalCode
	}

	if req.Phone != nil {
		ecole.Phone = *req.Phone
	}

	if err := s.dbClient.WithContext(ctx).Save(ecole).Error; err != nil {
		return nil, err
	}

	resp := toEcoleResponse(ecole)

	return &resp, nil
}

// Delete 删除学校. 文件行在同一事务里显式删除，对象存储中的负载随后一并移除.
func (s *EcoleService) Delete(ctx context.Context, id uint) error {
	ecole, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	var files []model.File
	if err := s.dbClient.WithContext(ctx).Where("ecole_id = ?", id).Find(&files).Error; err != nil {
		return err
	}

	err = s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ecole_id = ?", id).Delete(&model.File{}).Error; err != nil {
			return err
		}

		return tx.Delete(ecole).Error
	})
	if err != nil {
		return err
	}

	// 事务只覆盖数据库行，对象负载需要显式清理；失败留给孤儿清理任务兜底
	for i := range files {
		if err := s.objects.Remove(ctx, files[i].ObjectKey); err != nil {
			log.Logger().Warn().Err(err).
				Str("object_key", files[i].ObjectKey).
				Msg("remove payload after ecole delete failed")
		}
	}

	s.publishDeleted(id, len(files))

	return nil
}

func (s *EcoleService) find(ctx context.Context, id uint) (*model.Ecole, error) {
	var ecole model.Ecole

	err := s.dbClient.WithContext(ctx).First(&ecole, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("ecole not found")
	}

	if err != nil {
		return nil, err
	}

	return &ecole, nil
}

func (s *EcoleService) publishCreated(ecole *model.Ecole) {
	if s.mqClient == nil {
		return
	}

	payload := queue.EcoleCreatedPayload{EcoleID: ecole.ID, Name: ecole.Name, City: ecole.City}
	if err := queue.PublishEcoleCreated(s.mqClient.Publisher(), payload,
		queue.WithProducer("ecolevault")); err != nil {
		log.Logger().Warn().Err(err).Msg("publish ecole created event failed")
	}
}

func (s *EcoleService) publishDeleted(id uint, filesRemoved int) {
	if s.mqClient == nil {
		return
	}

	payload := queue.EcoleDeletedPayload{EcoleID: id, FilesRemoved: filesRemoved}
	if err := queue.PublishEcoleDeleted(s.mqClient.Publisher(), payload,
		queue.WithProducer("ecolevault")); err != nil {
		log.Logger().Warn().Err(err).Msg("publish ecole deleted event failed")
	}
}

func toEcoleResponse(e *model.Ecole) types.EcoleResponse {
	return types.EcoleResponse{
		ID:            e.ID,
		Name:          e.Name,
		Address:       e.Address,
		City:          e.City,
		PostalCode:    e.PostalCode,
		Phone:         e.Phone,
		StudentsCount: int(e.StudentsCount),
	}
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}
