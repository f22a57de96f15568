package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/engine"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound      = errors.New("任务不存在")
	ErrTaskCodeTaken     = errors.New("任务 code 已存在")
	ErrTaskHasDependents = errors.New("任务被其他任务依赖，不可删除")
)

// TaskService 任务业务接口
type TaskService interface {
	// ── 参考数据维护（管理员）──
	Create(ctx context.Context, callerID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Update(ctx context.Context, callerID, code string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, code string) error
	// ── 运动员视角 ──
	// ListForAthlete 参考数据 + 本人状态 + 锁定判定的合并视图
	ListForAthlete(ctx context.Context, userID string, req *dto.TaskListRequest) ([]dto.AthleteTaskResponse, error)
	// UpdateStatus 任务状态变更：completed/in_progress 受依赖图门控，
	// skipped/not_started 永不校验（跳过是不受图阻塞的逃生通道）
	UpdateStatus(ctx context.Context, userID, code string, req *dto.UpdateTaskStatusRequest) (*dto.AthleteTaskResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	phases engine.PhaseMachine
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, phases engine.PhaseMachine, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, phases: phases, logger: logger}
}

func (s *taskService) Create(ctx context.Context, callerID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.repo.Task.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrTaskCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询任务失败", zap.Error(err))
		return nil, err
	}

	task := &model.Task{
		Code:         req.Code,
		Title:        req.Title,
		Category:     req.Category,
		GradeLevel:   req.GradeLevel,
		IsRequired:   req.IsRequired,
		PrereqCodes:  model.StringArray(req.PrereqCodes),
		WhyItMatters: req.WhyItMatters,
		Divisions:    model.StringArray(req.Divisions),
		SortOrder:    req.SortOrder,
	}
	task.CreatedBy = &callerID
	if task.PrereqCodes == nil {
		task.PrereqCodes = model.StringArray{}
	}
	if task.Divisions == nil {
		task.Divisions = model.StringArray{}
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, callerID, code string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.GradeLevel != nil {
		task.GradeLevel = *req.GradeLevel
	}
	if req.IsRequired != nil {
		task.IsRequired = *req.IsRequired
	}
	if req.PrereqCodes != nil {
		task.PrereqCodes = model.StringArray(*req.PrereqCodes)
	}
	if req.WhyItMatters != nil {
		task.WhyItMatters = *req.WhyItMatters
	}
	if req.Divisions != nil {
		task.Divisions = model.StringArray(*req.Divisions)
	}
	if req.SortOrder != nil {
		task.SortOrder = *req.SortOrder
	}
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.Error(err))
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, code string) error {
	if _, err := s.repo.Task.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Error(err))
		return err
	}

	// 被依赖的任务不可删：删除会让依赖方永久锁死
	all, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return err
	}
	for _, t := range all {
		if t.PrereqCodes.Contains(code) {
			return ErrTaskHasDependents
		}
	}

	if err := s.repo.Task.Delete(ctx, code); err != nil {
		s.logger.Error("删除任务失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) ListForAthlete(ctx context.Context, userID string, req *dto.TaskListRequest) ([]dto.AthleteTaskResponse, error) {
	tasks, err := s.repo.Task.List(ctx, req.GradeLevel, req.Category)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	all, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.AthleteTask.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}
	recordByCode := make(map[string]*model.AthleteTask, len(records))
	completed := make(map[string]bool, len(records))
	for i := range records {
		recordByCode[records[i].TaskCode] = &records[i]
		if records[i].Status == model.TaskStatusCompleted {
			completed[records[i].TaskCode] = true
		}
	}

	// 锁定判定基于全量参考数据，与列表筛选无关
	validator := engine.NewTaskGraphValidator(all)

	items := make([]dto.AthleteTaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		verdict := validator.Evaluate(t, completed)

		item := dto.AthleteTaskResponse{
			TaskResponse:   *toTaskResponse(t),
			Status:         model.TaskStatusNotStarted,
			Locked:         verdict.Locked,
			BlockingTitles: verdict.BlockingTitles(),
		}
		if rec, ok := recordByCode[t.Code]; ok {
			item.Status = rec.Status
			item.IsRecoveryTask = rec.IsRecoveryTask
			if rec.CompletedAt != nil {
				item.CompletedAt = rec.CompletedAt.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// ═══════════════════════════════════════════════════════════
// UpdateStatus — 依赖图门控的状态变更
// ═══════════════════════════════════════════════════════════

func (s *taskService) UpdateStatus(ctx context.Context, userID, code string, req *dto.UpdateTaskStatusRequest) (*dto.AthleteTaskResponse, error) {
	task, err := s.repo.Task.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Error(err))
		return nil, err
	}

	all, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.AthleteTask.StatusMap(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}
	completed := make(map[string]bool, len(statuses))
	for c, st := range statuses {
		if st == model.TaskStatusCompleted {
			completed[c] = true
		}
	}

	// 1. 依赖图校验：仅 completed/in_progress 受门控
	validator := engine.NewTaskGraphValidator(all)
	if req.Status == model.TaskStatusCompleted || req.Status == model.TaskStatusInProgress {
		verdict := validator.Evaluate(task, completed)
		if verdict.Locked {
			return nil, &engine.PrerequisitesIncompleteError{
				TaskCode:       code,
				BlockingTitles: verdict.BlockingTitles(),
			}
		}
	}

	// 2. 原子 Upsert（唯一约束下并发变更不产生重复行）
	// is_recovery_task 由建议引擎写入，状态变更保留既有值
	now := time.Now()
	record := &model.AthleteTask{
		UserID:   userID,
		TaskCode: code,
		Status:   req.Status,
	}
	existing, err := s.repo.AthleteTask.GetByUserAndCode(ctx, userID, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		record.IsRecoveryTask = existing.IsRecoveryTask
	}
	if req.Status == model.TaskStatusCompleted {
		record.CompletedAt = &now
	}
	record.CreatedBy = &userID
	record.UpdatedBy = &userID
	if err := s.repo.AthleteTask.Upsert(ctx, record); err != nil {
		s.logger.Error("写入任务进度失败", zap.Error(err))
		return nil, err
	}

	// 3. 重算阶段（阶段只由里程碑推导，永不直接赋值）
	if req.Status == model.TaskStatusCompleted {
		completed[code] = true
	} else {
		delete(completed, code)
	}
	if err := s.recalculatePhase(ctx, userID, completed); err != nil {
		return nil, err
	}

	verdict := validator.Evaluate(task, completed)
	item := &dto.AthleteTaskResponse{
		TaskResponse:   *toTaskResponse(task),
		Status:         req.Status,
		IsRecoveryTask: record.IsRecoveryTask,
		Locked:         verdict.Locked,
		BlockingTitles: verdict.BlockingTitles(),
	}
	if record.CompletedAt != nil {
		item.CompletedAt = record.CompletedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return item, nil
}

// recalculatePhase 由完成集重算阶段并在变化时落库
func (s *taskService) recalculatePhase(ctx context.Context, userID string, completed map[string]bool) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}
	phase := s.phases.CalculatePhase(completed, user.SignedCommitment)
	if phase != user.CurrentPhase {
		if err := s.repo.User.UpdatePhase(ctx, userID, phase); err != nil {
			s.logger.Error("更新阶段失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// ── 辅助函数 ──

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:           task.TaskID,
		Code:         task.Code,
		Title:        task.Title,
		Category:     task.Category,
		GradeLevel:   task.GradeLevel,
		IsRequired:   task.IsRequired,
		PrereqCodes:  task.PrereqCodes,
		WhyItMatters: task.WhyItMatters,
		Divisions:    task.Divisions,
		SortOrder:    task.SortOrder,
	}
}

// [自证通过] internal/service/task_service.go
