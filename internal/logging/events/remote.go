package events

import "github.com/mfenwick/couchtv/internal/logging"

type RemoteTracer struct{}

var Remote = RemoteTracer{}

func (RemoteTracer) Push(token, owner string, depth int) {
	logging.Trace("remote.push", map[string]interface{}{"token": token, "owner": owner, "depth": depth})
}

func (RemoteTracer) Remove(token, owner string, depth int) {
	logging.Trace("remote.remove", map[string]interface{}{"token": token, "owner": owner, "depth": depth})
}

func (RemoteTracer) Dispatch(token, owner string, claimed bool) {
	logging.Trace("remote.dispatch", map[string]interface{}{"token": token, "owner": owner, "claimed": claimed})
}

func (RemoteTracer) Unclaimed(depth int) {
	logging.Trace("remote.unclaimed", map[string]interface{}{"depth": depth})
}

func (RemoteTracer) Swallowed(owner string) {
	logging.Trace("remote.swallowed", map[string]interface{}{"owner": owner})
}
