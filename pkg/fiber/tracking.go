package fiber

import (
	"runtime"
	"sync"
)

// renderContext is the state hooks need while a component renders.
type renderContext struct {
	fiber *Fiber
	sched *Scheduler
}

// renderContexts stores the active render context per goroutine so that
// schedulers on different goroutines do not see each other's components.
var renderContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// The runtime stack starts with "goroutine <id> ".
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// currentRender returns the render context of the current goroutine, or nil.
func currentRender() *renderContext {
	if rc, ok := renderContexts.Load(getGoroutineID()); ok {
		return rc.(*renderContext)
	}
	return nil
}

// setCurrentRender installs rc for the current goroutine and returns the
// previous context so it can be restored.
func setCurrentRender(rc *renderContext) *renderContext {
	gid := getGoroutineID()
	old := currentRender()
	if rc == nil {
		renderContexts.Delete(gid)
	} else {
		renderContexts.Store(gid, rc)
	}
	return old
}
