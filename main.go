// @title Lesson Quiz API
// @version 1.0
// @description 把课文简化为 HTML 摘要并生成练习题的后端服务。

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

package main

import (
	"lesson_quiz_backend/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
