// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件,
// embed.FS 变量必须声明在项目根目录(embed.go)。
// 本包提供包装函数,让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。以 "assets/" 开头的路径从嵌入
// 文件系统读取,其余路径回退到磁盘读取,供测试和外部覆盖配置使用。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	assetsFS    embed.FS
	initialized bool
)

// Init 初始化 embed.FS 变量
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets embed.FS) {
	assetsFS = assets
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除可能的 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// ReadFile 读取文件内容
// "assets/" 前缀走嵌入文件系统,其余路径走磁盘
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)

	if strings.HasPrefix(path, "assets/") {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return fs.ReadFile(assetsFS, path)
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	path = normalize(path)

	if strings.HasPrefix(path, "assets/") {
		if !initialized {
			return false
		}
		f, err := assetsFS.Open(path)
		if err != nil {
			return false
		}
		f.Close()
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

// ReadDir 读取嵌入目录内容
// 路径必须以 "assets/" 开头
func ReadDir(path string) ([]fs.DirEntry, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	path = normalize(path)
	if !strings.HasPrefix(path, "assets/") {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/')", path)
	}
	return assetsFS.ReadDir(path)
}
