package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// APIModule 挂在业务前缀下的模块
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 模块注册表；每个引擎一份，避免重复挂载同一路由
type Registry struct {
	mu      sync.RWMutex
	apiMods []APIModule
}

func (r *Registry) Register(mods ...APIModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apiMods = append(r.apiMods, mods...)
}

// MountAllAPI 按优先级挂载所有 API 模块
func (r *Registry) MountAllAPI(g *gin.RouterGroup) {
	r.mu.RLock()
	mods := append([]APIModule(nil), r.apiMods...)
	r.mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(g)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
