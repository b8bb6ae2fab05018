package tools

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func DisableLogger() {
	isEnabled = false
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Prints a progress message on stdout and records it in the glog info log
func LogOutput(val ...interface{}) {
	glog.Infoln(val...)
	if isEnabled {
		if printTimestamp {
			fmt.Print("[" + time.Now().Format("2006-01-02 15.04:05.000") + "] ")
		}
		fmt.Println(val...)
	}
}
