package dto

// WS 推送事件类型
const (
	WSEventGroups     = "groups"
	WSEventCategories = "categories"
	WSEventThemeMode  = "themeMode"
	WSEventError      = "error"
)

// WS 客户端命令类型
const (
	WSActionSearch = "search"
	WSActionFilter = "filter"
)

// WSCommand 客户端下行命令
// search 切换搜索词（空串回到浏览模式），filter 切换分类过滤
type WSCommand struct {
	Action   string `json:"action"`
	Query    string `json:"q,omitempty"`
	Category *int64 `json:"category,omitempty"`
}

// WSPush 服务端上行推送，按事件类型携带对应快照
type WSPush struct {
	Event      string          `json:"event"`
	Groups     []*NoteGroupDTO `json:"groups,omitempty"`
	Categories []*CategoryDTO  `json:"categories,omitempty"`
	ThemeMode  *int            `json:"themeMode,omitempty"`
	Message    string          `json:"message,omitempty"`
}
