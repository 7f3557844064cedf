package util

// 题目数量约束
const (
	DefaultQuestionCount = 5
	MinQuestionCount     = 1
	MaxQuestionCount     = 20
)

// 提交记录持久化方式
const (
	SubmissionsFile     = "file"
	SubmissionsDatabase = "database"
	SubmissionsRedis    = "redis"
	SubmissionsObject   = "object"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	FormatText = "text"
	FormatHTML = "html"
)

const MimeJSON = "application/json"
