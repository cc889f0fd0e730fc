package model

// swagger:model InterestQuestion
type InterestQuestion struct {
	ID       uint             `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Text     string           `gorm:"type:text;not null" json:"question" yaml:"question"`
	Position int              `gorm:"default:0" json:"position" yaml:"position"`
	Options  []InterestOption `gorm:"foreignKey:QuestionID" json:"options" yaml:"options"`
}

func (InterestQuestion) TableName() string {
	return "interest_questions"
}

// InterestOption 选择该选项即表示对 Category 感兴趣
type InterestOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId" yaml:"-"`
	Text       string `gorm:"size:255;not null" json:"text" yaml:"text"`
	Category   string `gorm:"size:100;not null" json:"category" yaml:"category"`
	Position   int    `gorm:"default:0" json:"position" yaml:"position"`
}

func (InterestOption) TableName() string {
	return "interest_options"
}

// swagger:model TechQuestion
type TechQuestion struct {
	ID         uint         `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Text       string       `gorm:"type:text;not null" json:"question" yaml:"question"`
	Category   string       `gorm:"column:tech_category;size:100;index;not null" json:"tech_category" yaml:"category"`
	Difficulty string       `gorm:"size:32;index" json:"difficulty" yaml:"difficulty"`
	Position   int          `gorm:"default:0" json:"position" yaml:"position"`
	Options    []TechOption `gorm:"foreignKey:QuestionID" json:"options" yaml:"options"`
}

func (TechQuestion) TableName() string {
	return "tech_questions"
}

type TechOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId" yaml:"-"`
	Text       string `gorm:"size:255;not null" json:"text" yaml:"text"`
	IsCorrect  bool   `json:"-" yaml:"correct"`
	Position   int    `gorm:"default:0" json:"position" yaml:"position"`
}

func (TechOption) TableName() string {
	return "tech_options"
}
