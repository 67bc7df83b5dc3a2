package model

type CourseLevel string

const (
	Beginner     CourseLevel = "Beginner"
	Intermediate CourseLevel = "Intermediate"
	Advanced     CourseLevel = "Advanced"
)

// Course 课程内容由内容服务维护。本服务只关心词汇/练习总数和展示信息
// swagger:model Course
type Course struct {
	UUIDBase
	Name            string      `gorm:"size:200;not null" json:"name"`
	Title           string      `gorm:"size:200" json:"title"`
	Level           CourseLevel `gorm:"size:20;default:'Beginner'" json:"level"`
	VocabularyTotal int         `gorm:"default:0" json:"vocabularyTotal"`
	ExerciseTotal   int         `gorm:"default:0" json:"exerciseTotal"`
}

func (Course) TableName() string {
	return "courses"
}

// DisplayName name 为空时退回 title
func (c *Course) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Title
}

// CourseTotals 新建进度记录时从课程复制的总数
type CourseTotals struct {
	VocabularyTotal int `json:"vocabularyTotal"`
	ExerciseTotal   int `json:"exerciseTotal"`
}

// CourseDisplay 统计页展示用
type CourseDisplay struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Level CourseLevel `json:"level"`
}
