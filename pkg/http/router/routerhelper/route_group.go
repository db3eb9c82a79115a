package routerhelper

import (
	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers handlers on an httprouter.Router under a common path prefix.
type RouteGroup struct {
	r      *httprouter.Router
	prefix string
}

func NewRouteGroup(r *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{r: r, prefix: prefix}
}

func (g *RouteGroup) path(p string) string {
	return g.prefix + p
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.r.GET(g.path(path), handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.r.POST(g.path(path), handle)
}
