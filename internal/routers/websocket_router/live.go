// Package websocket_router 提供 WebSocket 路由处理器
package websocket_router

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/dto"
	"github.com/modernnotes/modern-notes-service/internal/service"
)

const (
	// 心跳超时，客户端 Ping 间隔应小于该值
	liveHeartbeatWait = 60 * time.Second

	// liveClientKey 连接会话里存放客户端状态的键
	liveClientKey = "liveClient"
)

// liveClient 单个连接的实时视图状态
// 每个连接持有独立的视图引擎，搜索词与分类过滤互不干扰
type liveClient struct {
	view   *service.NoteListService
	unsubs []func()
}

// LiveHandler 实时视图 WebSocket 处理器
// 连接建立后推送当前分组视图、分类列表与主题模式，
// 之后任何数据变化即时增量推送完整快照
type LiveHandler struct {
	App      *app.App
	upgrader *gws.Upgrader
}

// NewLiveHandler 创建 LiveHandler 实例
func NewLiveHandler(a *app.App) *LiveHandler {
	h := &LiveHandler{App: a}
	h.upgrader = gws.NewUpgrader(h, &gws.ServerOption{
		CheckUtf8Enabled:  true,
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})
	return h
}

// Serve 返回执行协议升级的 gin 处理函数
func (h *LiveHandler) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request)
		if err != nil {
			h.App.Logger().Error("LiveHandler.Serve upgrade err", zap.Error(err))
			return
		}
		go conn.ReadLoop()
	}
}

// OnOpen 连接建立，创建视图引擎并挂接推送订阅
// livestate 订阅立即投递当前值，客户端无需额外的初始拉取
func (h *LiveHandler) OnOpen(socket *gws.Conn) {
	_ = socket.SetDeadline(time.Now().Add(liveHeartbeatWait))

	client := &liveClient{
		view: service.NewNoteListService(h.App.NoteRepo, h.App.CategoryRepo, h.App.Logger()),
	}

	client.unsubs = append(client.unsubs, client.view.DisplayedGroups().Subscribe(func(groups []domain.NoteGroup) {
		h.push(socket, &dto.WSPush{Event: dto.WSEventGroups, Groups: dto.GroupsToDTO(groups)})
	}))

	client.unsubs = append(client.unsubs, h.subscribeCategoryPushes(func(out []*dto.CategoryDTO) {
		h.push(socket, &dto.WSPush{Event: dto.WSEventCategories, Categories: out})
	})...)

	client.unsubs = append(client.unsubs, h.App.SettingService.ThemeMode().Subscribe(func(mode int) {
		h.push(socket, &dto.WSPush{Event: dto.WSEventThemeMode, ThemeMode: &mode})
	}))

	socket.Session().Store(liveClientKey, client)
}

// categorySnapshot 组装当前分类列表及各分类下的笔记数量
func (h *LiveHandler) categorySnapshot() []*dto.CategoryDTO {
	categories := h.App.CategoryService.Categories().Get()
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		count := h.App.CategoryService.NoteCount(category.ID).Get()
		out = append(out, dto.CategoryToDTO(category, count))
	}
	return out
}

// subscribeCategoryPushes 挂接分类快照推送的上游订阅
// 分类增删改与笔记增删都会改变快照内容（后者影响数量），两路都触发推送
func (h *LiveHandler) subscribeCategoryPushes(push func([]*dto.CategoryDTO)) []func() {
	pushCategories := func() {
		push(h.categorySnapshot())
	}

	var unsubs []func()
	unsubs = append(unsubs, h.App.CategoryService.Categories().Subscribe(func([]*domain.Category) {
		pushCategories()
	}))
	unsubs = append(unsubs, h.App.NoteRepo.All().Subscribe(func([]*domain.Note) {
		pushCategories()
	}))
	return unsubs
}

// OnClose 连接关闭，释放全部订阅与视图引擎
func (h *LiveHandler) OnClose(socket *gws.Conn, err error) {
	if v, ok := socket.Session().Load(liveClientKey); ok {
		client := v.(*liveClient)
		for _, unsub := range client.unsubs {
			unsub()
		}
		client.view.Close()
	}

	if err != nil {
		h.App.Logger().Debug("LiveHandler.OnClose", zap.Error(err))
	}
}

// OnPing 心跳，回应并顺延超时
func (h *LiveHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(liveHeartbeatWait))
	_ = socket.WritePong(payload)
}

// OnPong 忽略
func (h *LiveHandler) OnPong(socket *gws.Conn, payload []byte) {}

// OnMessage 处理客户端命令
func (h *LiveHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	v, ok := socket.Session().Load(liveClientKey)
	if !ok {
		return
	}
	client := v.(*liveClient)

	var cmd dto.WSCommand
	if err := sonic.Unmarshal(message.Bytes(), &cmd); err != nil {
		h.push(socket, &dto.WSPush{Event: dto.WSEventError, Message: "invalid message format"})
		return
	}

	switch cmd.Action {
	case dto.WSActionSearch:
		client.view.SetSearchQuery(cmd.Query)
	case dto.WSActionFilter:
		client.view.SetCategoryFilter(cmd.Category)
	default:
		h.push(socket, &dto.WSPush{Event: dto.WSEventError, Message: "unknown action: " + cmd.Action})
	}
}

// push 序列化并写出一条推送，写失败交由连接关闭流程处理
func (h *LiveHandler) push(socket *gws.Conn, msg *dto.WSPush) {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		h.App.Logger().Error("LiveHandler.push marshal err", zap.Error(err))
		return
	}
	if err := socket.WriteMessage(gws.OpcodeText, payload); err != nil {
		h.App.Logger().Debug("LiveHandler.push write err", zap.Error(err))
	}
}
