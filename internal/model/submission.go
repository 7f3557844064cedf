package model

import "time"

// Submission 一次生成请求的存档记录，只追加不修改
// swagger:model
type Submission struct {
	ID         int64      `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Content    string     `json:"content"`
	Simplified string     `json:"simplified"`
	Questions  []Question `json:"questions"`
}

// GenerateResult 返回给调用方的生成结果
// swagger:model
type GenerateResult struct {
	Simplified string     `json:"simplified"`
	Questions  []Question `json:"questions"`
}
