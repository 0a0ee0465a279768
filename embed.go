package main

import "embed"

// assetsFS 嵌入全部游戏资源
// embed 指令只能嵌入当前包目录下的文件,所以变量声明在项目根目录,
// 由 main() 交给 embedded 包统一分发
//
//go:embed all:assets
var assetsFS embed.FS
