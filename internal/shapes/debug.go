package shapes

import "github.com/golang/glog"

func debugLog(format string, args ...interface{}) {
	glog.V(2).Infof(format, args...)
}
