package models

// Boss 世界Boss模型，通过完成关联任务造成伤害
type Boss struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	HP           int      `json:"hp"`
	MaxHP        int      `json:"maxHp"`
	ImageURL     string   `json:"imageUrl"`
	Rewards      []Item   `json:"rewards"`
	Stages       int      `json:"stages"`
	CurrentStage int      `json:"currentStage"`
	Active       bool     `json:"active"`
	Defeated     bool     `json:"defeated"`
	Objectives   []string `json:"objectives"`
}
