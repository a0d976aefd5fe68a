package api_router

import (
	"expvar"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 业务指标，经私有路由的 /metrics 暴露
var (
	groupViewCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modern_notes",
		Name:      "group_view_requests_total",
		Help:      "Total number of grouped note view requests.",
	})

	searchCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modern_notes",
		Name:      "search_requests_total",
		Help:      "Total number of note search requests.",
	})

	noteSaveCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modern_notes",
		Name:      "note_saves_total",
		Help:      "Total number of note saves through edit sessions.",
	})

	noteDeleteCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modern_notes",
		Name:      "note_deletes_total",
		Help:      "Total number of note deletions.",
	})
)

// Expvar 导出系统运行时指标
// 将 expvar 导出的 JSON 数据写入响应
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value interface{}) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		if str, ok := value.(string); ok {
			fmt.Fprintf(c.Writer, "%q: %q", key, str)
		} else {
			fmt.Fprintf(c.Writer, "%q: %v", key, value)
		}
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
