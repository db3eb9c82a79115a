package routing

import (
	"fmt"

	"go.uber.org/zap"
)

// Subscribe registers an observer. Observers are called in registration order.
func (re *RoutingEngine) Subscribe(observer RouteRequestObserver) {
	re.obsMu.Lock()
	defer re.obsMu.Unlock()
	re.observers = append(re.observers, observer)
}

func (re *RoutingEngine) notifyRouteRequest(req RouteRequest) {
	re.obsMu.Lock()
	observers := make([]RouteRequestObserver, len(re.observers))
	copy(observers, re.observers)
	re.obsMu.Unlock()

	for i, observer := range observers {
		re.safeNotify(i, observer, req)
	}
}

// safeNotify runs one observer. A panic is logged and swallowed so the query and later observers go on.
func (re *RoutingEngine) safeNotify(i int, observer RouteRequestObserver, req RouteRequest) {
	defer func() {
		if r := recover(); r != nil {
			re.logger.Error("route request observer panicked",
				zap.Int("observer", i),
				zap.String("from", req.From), zap.String("to", req.To), zap.Stringer("mode", req.Mode),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	observer.OnRouteRequest(req)
}
