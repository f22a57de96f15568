package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/engine"
	"recruitpath/backend/internal/model"
	"recruitpath/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestTaskService() (TaskService, *mockUserRepo, *mockTaskRepo, *mockAthleteTaskRepo) {
	userRepo := newMockUserRepo()
	taskRepo := newMockTaskRepo()
	athleteTaskRepo := newMockAthleteTaskRepo()
	repo := &repository.Repository{
		User:        userRepo,
		School:      newMockSchoolRepo(),
		Task:        taskRepo,
		AthleteTask: athleteTaskRepo,
		Interaction: newMockInteractionRepo(),
		Event:       newMockEventRepo(),
		Video:       newMockVideoRepo(),
		Suggestion:  newMockSuggestionRepo(),
	}
	phases := engine.NewPhaseMachine(engine.DefaultPhaseConfig())
	svc := NewTaskService(repo, phases, zap.NewNop())

	userRepo.users["athlete-001"] = &model.User{
		UserID:       "athlete-001",
		Name:         "测试运动员",
		Email:        "athlete@example.com",
		Role:         model.RoleAthlete,
		CurrentPhase: model.PhaseFreshman,
		VersionedModel: model.VersionedModel{
			Version: 1,
		},
	}
	return svc, userRepo, taskRepo, athleteTaskRepo
}

func seedTask(taskRepo *mockTaskRepo, code, title string, prereqs []string, sortOrder int) {
	taskRepo.tasks[code] = &model.Task{
		TaskID:      "task-" + code,
		Code:        code,
		Title:       title,
		Category:    model.TaskCategoryRecruiting,
		GradeLevel:  9,
		IsRequired:  true,
		PrereqCodes: model.StringArray(prereqs),
		Divisions:   model.StringArray{},
		SortOrder:   sortOrder,
	}
}

// ── UpdateStatus 测试 ──

func TestTaskService_UpdateStatus_NoPrereqs(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)

	result, err := svc.UpdateStatus(context.Background(), "athlete-001", "create_target_list",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted})
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if result.Status != model.TaskStatusCompleted {
		t.Errorf("期望Status=completed，实际=%s", result.Status)
	}
	if result.CompletedAt == "" {
		t.Error("完成的任务应带完成时间")
	}
}

func TestTaskService_UpdateStatus_LockedByPrerequisites(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "intro_video", "录制介绍视频", nil, 20)
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"create_target_list", "intro_video"}, 30)

	_, err := svc.UpdateStatus(context.Background(), "athlete-001", "contact_coaches",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted})

	var lockErr *engine.PrerequisitesIncompleteError
	if !errors.As(err, &lockErr) {
		t.Fatalf("期望 PrerequisitesIncompleteError，实际: %v", err)
	}
	if len(lockErr.BlockingTitles) != 2 {
		t.Fatalf("期望列出全部2个未完成前置，实际=%d", len(lockErr.BlockingTitles))
	}
}

func TestTaskService_UpdateStatus_InProgressAlsoGated(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"create_target_list"}, 30)

	_, err := svc.UpdateStatus(context.Background(), "athlete-001", "contact_coaches",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusInProgress})

	var lockErr *engine.PrerequisitesIncompleteError
	if !errors.As(err, &lockErr) {
		t.Fatalf("in_progress 也应受依赖图门控，实际: %v", err)
	}
}

func TestTaskService_UpdateStatus_PreservesRecoveryFlag(t *testing.T) {
	svc, _, taskRepo, athleteTaskRepo := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)

	// 建议引擎插入的补救任务
	athleteTaskRepo.records[athleteTaskKey("athlete-001", "create_target_list")] = &model.AthleteTask{
		AthleteTaskID:  "at-recovery",
		UserID:         "athlete-001",
		TaskCode:       "create_target_list",
		Status:         model.TaskStatusNotStarted,
		IsRecoveryTask: true,
	}

	result, err := svc.UpdateStatus(context.Background(), "athlete-001", "create_target_list",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusInProgress})
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if !result.IsRecoveryTask {
		t.Error("状态变更不应清除补救任务标记（响应）")
	}

	rec, err := athleteTaskRepo.GetByUserAndCode(context.Background(), "athlete-001", "create_target_list")
	if err != nil {
		t.Fatalf("读取任务进度失败: %v", err)
	}
	if rec.Status != model.TaskStatusInProgress {
		t.Errorf("期望Status=in_progress，实际=%s", rec.Status)
	}
	if !rec.IsRecoveryTask {
		t.Error("状态变更不应清除补救任务标记（落库）")
	}
}

func TestTaskService_UpdateStatus_SkippedBypassesGate(t *testing.T) {
	svc, _, taskRepo, athleteTaskRepo := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"create_target_list"}, 30)

	result, err := svc.UpdateStatus(context.Background(), "athlete-001", "contact_coaches",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusSkipped})
	if err != nil {
		t.Fatalf("skipped 不受门控，应成功: %v", err)
	}
	if result.Status != model.TaskStatusSkipped {
		t.Errorf("期望Status=skipped，实际=%s", result.Status)
	}

	rec, err := athleteTaskRepo.GetByUserAndCode(context.Background(), "athlete-001", "contact_coaches")
	if err != nil {
		t.Fatalf("跳过应落库: %v", err)
	}
	if rec.CompletedAt != nil {
		t.Error("跳过的任务不应带完成时间")
	}
}

func TestTaskService_UpdateStatus_UnlockAfterPrereqsComplete(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"create_target_list"}, 30)

	ctx := context.Background()
	if _, err := svc.UpdateStatus(ctx, "athlete-001", "create_target_list",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted}); err != nil {
		t.Fatalf("完成前置应成功: %v", err)
	}
	result, err := svc.UpdateStatus(ctx, "athlete-001", "contact_coaches",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted})
	if err != nil {
		t.Fatalf("前置完成后应解锁: %v", err)
	}
	if result.Locked {
		t.Error("前置完成后任务不应再处于锁定")
	}
}

func TestTaskService_UpdateStatus_Idempotent(t *testing.T) {
	svc, _, taskRepo, athleteTaskRepo := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.UpdateStatus(ctx, "athlete-001", "create_target_list",
			&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted}); err != nil {
			t.Fatalf("第%d次 UpdateStatus 应成功: %v", i+1, err)
		}
	}

	records, _ := athleteTaskRepo.ListByUser(ctx, "athlete-001")
	if len(records) != 1 {
		t.Errorf("重复变更同一任务不应产生重复行，实际行数=%d", len(records))
	}
}

func TestTaskService_UpdateStatus_PhaseRecalculated(t *testing.T) {
	svc, userRepo, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "academic_baseline", "建立学业基线", nil, 20)
	seedTask(taskRepo, "intro_video", "录制介绍视频", nil, 30)

	ctx := context.Background()
	for _, code := range []string{"create_target_list", "academic_baseline", "intro_video"} {
		if _, err := svc.UpdateStatus(ctx, "athlete-001", code,
			&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted}); err != nil {
			t.Fatalf("完成 %s 应成功: %v", code, err)
		}
	}

	if userRepo.users["athlete-001"].CurrentPhase != model.PhaseSophomore {
		t.Errorf("完成全部里程碑后期望阶段=sophomore，实际=%s",
			userRepo.users["athlete-001"].CurrentPhase)
	}
}

func TestTaskService_UpdateStatus_TaskNotFound(t *testing.T) {
	svc, _, _, _ := setupTestTaskService()

	_, err := svc.UpdateStatus(context.Background(), "athlete-001", "nonexistent",
		&dto.UpdateTaskStatusRequest{Status: model.TaskStatusCompleted})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── ListForAthlete 测试 ──

func TestTaskService_ListForAthlete_LockVerdictUsesFullCatalog(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	// 前置任务在年级 10，列表筛选年级 9 时它不在结果中，但锁定判定仍须生效
	taskRepo.tasks["transcript_review"] = &model.Task{
		TaskID:      "task-transcript_review",
		Code:        "transcript_review",
		Title:       "成绩单审查",
		Category:    model.TaskCategoryAcademic,
		GradeLevel:  10,
		IsRequired:  true,
		PrereqCodes: model.StringArray{},
		Divisions:   model.StringArray{},
		SortOrder:   40,
	}
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"transcript_review"}, 30)

	items, err := svc.ListForAthlete(context.Background(), "athlete-001",
		&dto.TaskListRequest{GradeLevel: 9})
	if err != nil {
		t.Fatalf("ListForAthlete 应成功: %v", err)
	}

	var found bool
	for _, item := range items {
		if item.Code == "contact_coaches" {
			found = true
			if !item.Locked {
				t.Error("前置未完成的任务应锁定，即使前置被列表筛选掉")
			}
			if len(item.BlockingTitles) != 1 || item.BlockingTitles[0] != "成绩单审查" {
				t.Errorf("期望阻塞标题=[成绩单审查]，实际=%v", item.BlockingTitles)
			}
		}
		if item.Code == "transcript_review" {
			t.Error("年级筛选不应返回其他年级的任务")
		}
	}
	if !found {
		t.Fatal("结果中应包含 contact_coaches")
	}
}

// ── 参考数据维护测试 ──

func TestTaskService_Create_DuplicateCode(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)

	_, err := svc.Create(context.Background(), "admin-001", &dto.CreateTaskRequest{
		Code:       "create_target_list",
		Title:      "重复任务",
		Category:   model.TaskCategoryRecruiting,
		GradeLevel: 9,
	})
	if !errors.Is(err, ErrTaskCodeTaken) {
		t.Errorf("期望 ErrTaskCodeTaken，实际: %v", err)
	}
}

func TestTaskService_Delete_HasDependents(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "create_target_list", "创建目标学校清单", nil, 10)
	seedTask(taskRepo, "contact_coaches", "联系教练", []string{"create_target_list"}, 30)

	err := svc.Delete(context.Background(), "create_target_list")
	if !errors.Is(err, ErrTaskHasDependents) {
		t.Errorf("被依赖的任务期望 ErrTaskHasDependents，实际: %v", err)
	}
}

func TestTaskService_Delete_Success(t *testing.T) {
	svc, _, taskRepo, _ := setupTestTaskService()
	seedTask(taskRepo, "intro_video", "录制介绍视频", nil, 20)

	if err := svc.Delete(context.Background(), "intro_video"); err != nil {
		t.Fatalf("无依赖任务删除应成功: %v", err)
	}
	if _, ok := taskRepo.tasks["intro_video"]; ok {
		t.Error("删除后任务不应存在")
	}
}

// [自证通过] internal/service/task_service_test.go
