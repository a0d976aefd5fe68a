// Package safe_close 提供多组件协同关闭的控制原语
package safe_close

import (
	"sync"
)

// SafeClose 管理一组常驻子任务的生命周期
// 每个子任务通过 Attach 挂载，收到关闭信号后自行清理并调用 done；
// 任何子任务都可以通过 SendCloseSignal 触发整体关闭
type SafeClose struct {
	mu       sync.Mutex
	once     sync.Once
	closeCh  chan struct{}
	closeErr error
	wg       sync.WaitGroup
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach 挂载一个子任务
// f 在独立 goroutine 中运行，必须在收到 closeSignal 后调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := func() {
		s.wg.Done()
	}
	go f(done, s.closeCh)
}

// SendCloseSignal 发送关闭信号，重复调用只有第一次生效
// err 记录触发关闭的原因，nil 表示正常关闭
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.closeErr = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// WaitClosed 阻塞等待所有子任务退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeCh
}
