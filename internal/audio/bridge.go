// Package audio 实现与外部音频引擎的就绪握手
//
// 音频引擎是独立进程,启动后连到本地 websocket 端口,依次发送
// "opened"(引擎进程已起)和 "loaded"(音色加载完毕)两条文本消息。
// 游戏在加载场景里等这两个阶段都完成(有超时上限)才放行,仿真
// tick 内从不等待。
package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// 握手消息
const (
	MsgOpened = "opened" // 引擎进程已启动
	MsgLoaded = "loaded" // 音色加载完毕
)

// DefaultTimeout 等待就绪的默认上限
const DefaultTimeout = 30 * time.Second

// ErrNotReady 音频引擎没能在期限内完成握手
var ErrNotReady = errors.New("audio engine not ready before deadline")

// Bridge 音频就绪桥
// 生命周期: Start(监听) -> AwaitReady(等待) -> Teardown(关闭)。
// 所有状态都在桥对象里,不使用进程级全局标志
type Bridge struct {
	srv      *http.Server
	listener net.Listener

	opened     chan struct{}
	loaded     chan struct{}
	openedOnce sync.Once
	loadedOnce sync.Once
}

// NewBridge 创建音频就绪桥
func NewBridge() *Bridge {
	return &Bridge{
		opened: make(chan struct{}),
		loaded: make(chan struct{}),
	}
}

// Start 在给定地址上开始监听(如 "127.0.0.1:7519";端口 0 表示随机)
// 监听循环在后台运行,方法立即返回
func (b *Bridge) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("audio bridge listen on %s: %w", addr, err)
	}
	b.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/", b.onConnection)
	b.srv = &http.Server{Handler: mux}

	go func() {
		if err := b.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[AudioBridge] 监听结束: %v", err)
		}
	}()

	log.Printf("[AudioBridge] 监听 %s", listener.Addr())
	return nil
}

// Addr 返回实际监听地址(Start 之前为空串)
func (b *Bridge) Addr() string {
	if b.listener == nil {
		return ""
	}
	return b.listener.Addr().String()
}

// onConnection 处理音频引擎的 websocket 连接
// 逐条读文本消息,收齐两个阶段后正常关闭连接
func (b *Bridge) onConnection(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[AudioBridge] 接受连接失败: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "bridge closing")

	ctx := r.Context()
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		switch string(data) {
		case MsgOpened:
			b.openedOnce.Do(func() { close(b.opened) })
		case MsgLoaded:
			b.loadedOnce.Do(func() { close(b.loaded) })
		}

		if b.Opened() && b.Loaded() {
			c.Close(websocket.StatusNormalClosure, "handshake complete")
			return
		}
	}
}

// Opened 报告引擎进程是否已上线
func (b *Bridge) Opened() bool {
	select {
	case <-b.opened:
		return true
	default:
		return false
	}
}

// Loaded 报告音色是否加载完毕
func (b *Bridge) Loaded() bool {
	select {
	case <-b.loaded:
		return true
	default:
		return false
	}
}

// AwaitReady 阻塞等待两个握手阶段都完成
// 超时或 ctx 取消时返回 ErrNotReady;整个程序只在启动时调用一次
func (b *Bridge) AwaitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-b.opened:
	case <-ctx.Done():
		return fmt.Errorf("waiting for engine to open: %w", ErrNotReady)
	}

	select {
	case <-b.loaded:
	case <-ctx.Done():
		return fmt.Errorf("waiting for samples to load: %w", ErrNotReady)
	}
	return nil
}

// Teardown 停止监听并释放端口
func (b *Bridge) Teardown(ctx context.Context) error {
	if b.srv == nil {
		return nil
	}
	if err := b.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("audio bridge shutdown: %w", err)
	}
	return nil
}
