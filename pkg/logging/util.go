package logging

import "unsafe"

// Debug logs through log unless it is nil or a typed nil.
func Debug(log DebugLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Debug(args...)
	}
}

// Info logs through log when it also implements Info.
func Info(log DebugLogger, args ...interface{}) {
	if isNilValue(log) {
		return
	}
	if l, ok := log.(Logger); ok {
		l.Info(args...)
		return
	}
	log.Debug(args...)
}

func isNilValue(i interface{}) bool {
	return (*[2]uintptr)(unsafe.Pointer(&i))[1] == 0
}
