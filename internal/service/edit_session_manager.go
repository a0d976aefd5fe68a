package service

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/repository"
)

// EditSessionManager 管理活跃的编辑会话
// 每个会话由一个随机令牌标识，供 HTTP 客户端跨请求续用同一份草稿
type EditSessionManager struct {
	noteRepo *repository.NoteRepository
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*EditSession
}

// NewEditSessionManager 创建会话管理器
func NewEditSessionManager(noteRepo *repository.NoteRepository, logger *zap.Logger) *EditSessionManager {
	return &EditSessionManager{
		noteRepo: noteRepo,
		logger:   logger,
		sessions: make(map[string]*EditSession),
	}
}

// Open 创建新会话并返回令牌
func (m *EditSessionManager) Open() (string, *EditSession) {
	token := uuid.NewString()
	session := NewEditSession(m.noteRepo, m.logger)

	m.mu.Lock()
	m.sessions[token] = session
	m.mu.Unlock()

	return token, session
}

// Get 按令牌取会话，不存在返回 false
func (m *EditSessionManager) Get(token string) (*EditSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	return session, ok
}

// Close 关闭会话并丢弃草稿，重复关闭无副作用
func (m *EditSessionManager) Close(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Count 当前活跃会话数
func (m *EditSessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
