package global

import (
	"github.com/modernnotes/modern-notes-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Modern Notes Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
