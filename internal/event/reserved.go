package event

// PrivatePrefix marks attributes internal to the logging facility.
const PrivatePrefix = "_"

// reserved are the standard record attribute names. They are never reported
// as extra fields, even when a caller attaches an attribute with the same name.
var reserved = map[string]struct{}{
	"args":            {},
	"asctime":         {},
	"created":         {},
	"exc_info":        {},
	"exc_text":        {},
	"filename":        {},
	"funcName":        {},
	"id":              {},
	"levelname":       {},
	"levelno":         {},
	"lineno":          {},
	"module":          {},
	"msecs":           {},
	"message":         {},
	"msg":             {},
	"name":            {},
	"pathname":        {},
	"process":         {},
	"processName":     {},
	"relativeCreated": {},
	"stack_info":      {},
	"thread":          {},
	"threadName":      {},
}

// IsReserved reports whether name is a standard record attribute.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Reserved returns the reserved attribute names in no particular order.
func Reserved() []string {
	out := make([]string, 0, len(reserved))
	for k := range reserved {
		out = append(out, k)
	}
	return out
}
