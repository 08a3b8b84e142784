package assert

import "github.com/oomph-ac/motion/oerror"

// IsTrue panics with a formatted MotionError if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
