package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CKMatsika/LowveldAcademy/internal/dto"
	"github.com/CKMatsika/LowveldAcademy/internal/model"
	"github.com/CKMatsika/LowveldAcademy/internal/repository"
)

// ── 花名册模块业务错误 ──

var (
	ErrClassNotFound   = errors.New("班级不存在")
	ErrTeacherNotFound = errors.New("教师不存在")
)

// RosterService 班级/教师花名册业务接口
//
// 课表条目对班级与教师仅为弱引用：删除班级或教师不会级联删除课表，
// 悬挂引用由前端按 id 缺失处理
type RosterService interface {
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetClass(ctx context.Context, id uint) (*dto.ClassResponse, error)
	ListClasses(ctx context.Context) ([]dto.ClassResponse, error)
	UpdateClass(ctx context.Context, id uint, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	DeleteClass(ctx context.Context, id uint) error

	CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetTeacher(ctx context.Context, id uint) (*dto.TeacherResponse, error)
	ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error)
	UpdateTeacher(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	DeleteTeacher(ctx context.Context, id uint) error
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger}
}

// ── 班级 ──

func (s *rosterService) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := model.Class{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Class.Create(ctx, &class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}
	resp := toClassResponse(class)
	return &resp, nil
}

func (s *rosterService) GetClass(ctx context.Context, id uint) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	resp := toClassResponse(*class)
	return &resp, nil
}

func (s *rosterService) ListClasses(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		result = append(result, toClassResponse(c))
	}
	return result, nil
}

func (s *rosterService) UpdateClass(ctx context.Context, id uint, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = *req.Description
	}

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("更新班级失败", zap.Error(err), zap.Uint("class_id", id))
		return nil, err
	}
	resp := toClassResponse(*class)
	return &resp, nil
}

func (s *rosterService) DeleteClass(ctx context.Context, id uint) error {
	if _, err := s.repo.Class.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if err := s.repo.Class.Delete(ctx, id); err != nil {
		s.logger.Error("删除班级失败", zap.Error(err), zap.Uint("class_id", id))
		return err
	}
	return nil
}

// ── 教师 ──

func (s *rosterService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher := model.Teacher{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
	}
	if err := s.repo.Teacher.Create(ctx, &teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	resp := toTeacherResponse(teacher)
	return &resp, nil
}

func (s *rosterService) GetTeacher(ctx context.Context, id uint) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	resp := toTeacherResponse(*teacher)
	return &resp, nil
}

func (s *rosterService) ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		result = append(result, toTeacherResponse(t))
	}
	return result, nil
}

func (s *rosterService) UpdateTeacher(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.Error(err), zap.Uint("teacher_id", id))
		return nil, err
	}
	resp := toTeacherResponse(*teacher)
	return &resp, nil
}

func (s *rosterService) DeleteTeacher(ctx context.Context, id uint) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.Error(err), zap.Uint("teacher_id", id))
		return err
	}
	return nil
}

// ── 响应转换器 ──

func toClassResponse(c model.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ClassID:     c.ClassID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toTeacherResponse(t model.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{
		TeacherID: t.TeacherID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Phone:     t.Phone,
		Subject:   t.Subject,
	}
}

// [自证通过] internal/service/roster_service.go
