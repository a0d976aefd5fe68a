// Package livestate 提供可观察值容器，作为实时集合的基础原语
// 订阅者在订阅时立即收到当前快照，之后每次值变更都会再次收到完整快照
package livestate

import "sync"

// State 并发安全的可观察值容器
// 不持有任何 goroutine，通知在 Set 的调用栈上同步完成
type State[T any] struct {
	mu      sync.RWMutex
	value   T
	subs    map[uint64]func(T)
	nextID  uint64
	everSub bool
}

// New 创建持有初始值的 State
func New[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}
}

// Get 返回当前值
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set 存储新值并同步通知全部订阅者
// 订阅者回调的调用顺序不做保证
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	callbacks := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(v)
	}
}

// Update 基于当前值计算新值并发布
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	callbacks := make([]func(T), 0, len(s.subs))
	for _, cb := range s.subs {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(v)
	}
}

// Subscribe 注册订阅者并立即投递当前值
// 返回的函数用于退订，退订后不再收到任何通知，可安全多次调用
func (s *State[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.everSub = true
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SubscriberCount 返回当前订阅者数量
func (s *State[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Idle 判断该值是否曾被订阅且当前已无订阅者
// 存储层用它回收不再被任何人观察的实时查询
func (s *State[T]) Idle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.everSub && len(s.subs) == 0
}
