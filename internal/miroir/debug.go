package miroir

import "github.com/golang/glog"

// debugLog is only emitted with -v=2 or higher.
func debugLog(format string, args ...interface{}) {
	glog.V(2).Infof(format, args...)
}
