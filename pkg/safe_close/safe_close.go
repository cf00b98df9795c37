// Package safe_close coordinates the shutdown of long running workers.
// Package safe_close 协调多个后台工作协程的关闭
package safe_close

import "sync"

// SafeClose broadcasts one close signal to every attached worker and waits for them.
type SafeClose struct {
	once        sync.Once
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeSignal: make(chan struct{})}
}

// Attach runs fn in its own goroutine; fn must call done when it has finished.
// Attach 在独立协程中运行 fn，fn 完成时必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeSignal)
}

// SendCloseSignal closes the signal channel once; the first non-nil err is kept.
// SendCloseSignal 只会关闭一次信号通道，保留第一个非 nil 错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	if s.err == nil && err != nil {
		s.err = err
	}
	s.mu.Unlock()

	s.once.Do(func() {
		close(s.closeSignal)
	})
}

// Closed 返回关闭信号通道
func (s *SafeClose) Closed() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached worker has called done.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
