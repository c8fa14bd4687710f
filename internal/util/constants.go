package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 未配置数据库时的演示用户
const DemoUserID = "demo-user-id"

// 仪表盘最近面试条数
const RecentInterviewLimit = 5

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
	MimeZip         = "application/zip"
	MimeText        = "text/plain"
)

var (
	AllowedVideoExtensions  = []string{".mp4", ".mov", ".webm", ".mkv"}
	AllowedResumeExtensions = []string{".pdf", ".doc", ".docx", ".txt"}
)
