package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	pkgerrors "recruitpath/backend/pkg/errors"

	"recruitpath/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Version == 0 {
		user.Version = 1
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateVersioned(_ context.Context, user *model.User, expectedVersion int) error {
	existing, ok := m.users[user.UserID]
	if !ok || existing.Version != expectedVersion {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version = expectedVersion + 1
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateStatusSnapshot(_ context.Context, userID string, score int, label string, breakdown model.JSONMap, computedAt time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.StatusScore = &score
	u.StatusLabel = label
	u.StatusBreakdown = breakdown
	u.StatusComputedAt = &computedAt
	return nil
}

func (m *mockUserRepo) UpdatePhase(_ context.Context, userID, phase string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CurrentPhase = phase
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	schools   map[string]*model.School
	idCounter int
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School)}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if school.SchoolID == "" {
		m.idCounter++
		school.SchoolID = fmt.Sprintf("school-%d", m.idCounter)
	}
	school.CreatedAt = time.Now()
	school.UpdatedAt = time.Now()
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.schools, id)
	return nil
}

func (m *mockSchoolRepo) List(_ context.Context, userID, division, status string, offset, limit int) ([]model.School, int64, error) {
	var result []model.School
	for _, s := range m.schools {
		if s.UserID != userID {
			continue
		}
		if division != "" && s.Division != division {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSchoolRepo) ListAllByUser(_ context.Context, userID string) ([]model.School, error) {
	var result []model.School
	for _, s := range m.schools {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task // code → task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		task.TaskID = "task-" + task.Code
	}
	m.tasks[task.Code] = task
	return nil
}

func (m *mockTaskRepo) GetByCode(_ context.Context, code string) (*model.Task, error) {
	if t, ok := m.tasks[code]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.Code] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, code string) error {
	delete(m.tasks, code)
	return nil
}

func (m *mockTaskRepo) ListAll(_ context.Context) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockTaskRepo) List(_ context.Context, gradeLevel int, category string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if gradeLevel != 0 && t.GradeLevel != gradeLevel {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

// ── Mock AthleteTaskRepository ──

type mockAthleteTaskRepo struct {
	records   map[string]*model.AthleteTask // "userID:taskCode" → record
	idCounter int
}

func newMockAthleteTaskRepo() *mockAthleteTaskRepo {
	return &mockAthleteTaskRepo{records: make(map[string]*model.AthleteTask)}
}

func athleteTaskKey(userID, taskCode string) string {
	return userID + ":" + taskCode
}

func (m *mockAthleteTaskRepo) Upsert(_ context.Context, record *model.AthleteTask) error {
	key := athleteTaskKey(record.UserID, record.TaskCode)
	if existing, ok := m.records[key]; ok {
		// is_recovery_task 不在冲突更新列中，保留既有值
		existing.Status = record.Status
		existing.CompletedAt = record.CompletedAt
		existing.UpdatedBy = record.UpdatedBy
		*record = *existing
		return nil
	}
	m.idCounter++
	if record.AthleteTaskID == "" {
		record.AthleteTaskID = fmt.Sprintf("at-%d", m.idCounter)
	}
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAthleteTaskRepo) GetByUserAndCode(_ context.Context, userID, taskCode string) (*model.AthleteTask, error) {
	if r, ok := m.records[athleteTaskKey(userID, taskCode)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAthleteTaskRepo) ListByUser(_ context.Context, userID string) ([]model.AthleteTask, error) {
	var result []model.AthleteTask
	for _, r := range m.records {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAthleteTaskRepo) StatusMap(_ context.Context, userID string) (map[string]string, error) {
	statuses := make(map[string]string)
	for _, r := range m.records {
		if r.UserID == userID {
			statuses[r.TaskCode] = r.Status
		}
	}
	return statuses, nil
}

// ── Mock InteractionRepository ──

type mockInteractionRepo struct {
	interactions map[string]*model.Interaction
	idCounter    int
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{interactions: make(map[string]*model.Interaction)}
}

func (m *mockInteractionRepo) Create(_ context.Context, interaction *model.Interaction) error {
	if interaction.InteractionID == "" {
		m.idCounter++
		interaction.InteractionID = fmt.Sprintf("int-%d", m.idCounter)
	}
	interaction.CreatedAt = time.Now()
	m.interactions[interaction.InteractionID] = interaction
	return nil
}

func (m *mockInteractionRepo) GetByID(_ context.Context, id string) (*model.Interaction, error) {
	if i, ok := m.interactions[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInteractionRepo) Update(_ context.Context, interaction *model.Interaction) error {
	m.interactions[interaction.InteractionID] = interaction
	return nil
}

func (m *mockInteractionRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.interactions, id)
	return nil
}

func (m *mockInteractionRepo) List(_ context.Context, userID, schoolID, channel, sentiment string, offset, limit int) ([]model.Interaction, int64, error) {
	var result []model.Interaction
	for _, i := range m.interactions {
		if i.UserID != userID {
			continue
		}
		if schoolID != "" && (i.SchoolID == nil || *i.SchoolID != schoolID) {
			continue
		}
		if channel != "" && i.Channel != channel {
			continue
		}
		if sentiment != "" && i.Sentiment != sentiment {
			continue
		}
		result = append(result, *i)
	}
	return result, int64(len(result)), nil
}

func (m *mockInteractionRepo) ListAllByUser(_ context.Context, userID string) ([]model.Interaction, error) {
	var result []model.Interaction
	for _, i := range m.interactions {
		if i.UserID == userID {
			result = append(result, *i)
		}
	}
	return result, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events    map[string]*model.Event
	idCounter int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.idCounter++
		event.EventID = fmt.Sprintf("event-%d", m.idCounter)
	}
	event.CreatedAt = time.Now()
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) List(_ context.Context, userID, eventType string, after *time.Time, offset, limit int) ([]model.Event, int64, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.UserID != userID {
			continue
		}
		if eventType != "" && e.EventType != eventType {
			continue
		}
		if after != nil && e.StartsAt.Before(*after) {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockEventRepo) ListAllByUser(_ context.Context, userID string) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock VideoRepository ──

type mockVideoRepo struct {
	videos    map[string]*model.Video
	idCounter int
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{videos: make(map[string]*model.Video)}
}

func (m *mockVideoRepo) Create(_ context.Context, video *model.Video) error {
	if video.VideoID == "" {
		m.idCounter++
		video.VideoID = fmt.Sprintf("video-%d", m.idCounter)
	}
	video.CreatedAt = time.Now()
	m.videos[video.VideoID] = video
	return nil
}

func (m *mockVideoRepo) GetByID(_ context.Context, id string) (*model.Video, error) {
	if v, ok := m.videos[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVideoRepo) Update(_ context.Context, video *model.Video) error {
	m.videos[video.VideoID] = video
	return nil
}

func (m *mockVideoRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.videos, id)
	return nil
}

func (m *mockVideoRepo) ListByUser(_ context.Context, userID string) ([]model.Video, error) {
	var result []model.Video
	for _, v := range m.videos {
		if v.UserID == userID {
			result = append(result, *v)
		}
	}
	return result, nil
}

// ── Mock SuggestionRepository ──

type mockSuggestionRepo struct {
	suggestions []*model.Suggestion
	idCounter   int
}

func newMockSuggestionRepo() *mockSuggestionRepo {
	return &mockSuggestionRepo{}
}

func (m *mockSuggestionRepo) Create(_ context.Context, suggestion *model.Suggestion) error {
	m.idCounter++
	if suggestion.SuggestionID == "" {
		suggestion.SuggestionID = fmt.Sprintf("sug-%d", m.idCounter)
	}
	// 单调递增的创建时间，保证 "最新" 语义在同秒内也稳定
	suggestion.CreatedAt = time.Now().Add(time.Duration(m.idCounter) * time.Millisecond)
	m.suggestions = append(m.suggestions, suggestion)
	return nil
}

func (m *mockSuggestionRepo) GetByID(_ context.Context, id string) (*model.Suggestion, error) {
	for _, s := range m.suggestions {
		if s.SuggestionID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSuggestionRepo) Update(_ context.Context, suggestion *model.Suggestion) error {
	for i, s := range m.suggestions {
		if s.SuggestionID == suggestion.SuggestionID {
			m.suggestions[i] = suggestion
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSuggestionRepo) GetActiveByUserAndRule(_ context.Context, userID, ruleType string) (*model.Suggestion, error) {
	var latest *model.Suggestion
	for _, s := range m.suggestions {
		if s.UserID == userID && s.RuleType == ruleType && !s.Dismissed && !s.Completed {
			if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
				latest = s
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSuggestionRepo) GetLatestHandledByUserAndRule(_ context.Context, userID, ruleType string) (*model.Suggestion, error) {
	var latest *model.Suggestion
	for _, s := range m.suggestions {
		if s.UserID == userID && s.RuleType == ruleType && (s.Dismissed || s.Completed) {
			if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
				latest = s
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSuggestionRepo) List(_ context.Context, userID, urgency string, includeHandled bool, offset, limit int) ([]model.Suggestion, int64, error) {
	var result []model.Suggestion
	for _, s := range m.suggestions {
		if s.UserID != userID || s.PendingSurface {
			continue
		}
		if !includeHandled && (s.Dismissed || s.Completed) {
			continue
		}
		if urgency != "" && s.Urgency != urgency {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSuggestionRepo) SurfaceDue(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, s := range m.suggestions {
		if s.PendingSurface && s.SurfacedAt != nil && !s.SurfacedAt.After(now) {
			s.PendingSurface = false
			count++
		}
	}
	return count, nil
}

// [自证通过] internal/service/mock_repos_test.go
