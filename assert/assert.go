package assert

import "github.com/oomph-ac/fpinertia/oerror"

// IsTrue panics with an *oerror.OomphError when ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

// NotNil panics when v is nil.
func NotNil(v any, name string) {
	IsTrue(v != nil, "%s must not be nil", name)
}
