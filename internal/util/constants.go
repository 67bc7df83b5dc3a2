package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// 统计接口的分页与范围限制
const (
	DefaultPageSize   = 10
	MaxPageSize       = 100
	DefaultSeriesDays = 30
	MaxSeriesDays     = 365
	DefaultRecentSize = 10
	MaxRecentSize     = 100
)
