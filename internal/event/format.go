package event

import (
	"fmt"
	"strconv"
	"strings"
)

// percentFormat renders a printf-style record message the way the record's
// logging facility does: %s, %r, %d, %i, %u, %f, %e, %g, %x, %o, %c and %%,
// with optional flags, width and precision, and %(key)s lookups in named.
// Specs without a matching argument are left as written.
func percentFormat(msg string, args []any, named map[string]any) string {
	var b strings.Builder
	next := 0
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(msg) && msg[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}

		spec, end, ok := scanSpec(msg, i+1)
		if !ok {
			b.WriteByte(c)
			continue
		}

		var arg any
		found := false
		if spec.mapped {
			arg, found = named[spec.key]
		} else {
			if spec.starWidth {
				if w, ok := argInt(args, next); ok {
					spec.width, next = strconv.Itoa(w), next+1
				}
			}
			if spec.starPrec {
				if p, ok := argInt(args, next); ok {
					spec.prec, next = "."+strconv.Itoa(p), next+1
				}
			}
			if next < len(args) {
				arg, found = args[next], true
				next++
			}
		}
		if !found {
			b.WriteString(msg[i:end])
			i = end - 1
			continue
		}

		b.WriteString(spec.render(arg))
		i = end - 1
	}
	return b.String()
}

type pctSpec struct {
	key       string
	mapped    bool
	flags     string
	width     string
	prec      string
	verb      byte
	starWidth bool
	starPrec  bool
}

// scanSpec parses a conversion starting right after '%'. end is the index
// just past the conversion character.
func scanSpec(msg string, i int) (spec pctSpec, end int, ok bool) {
	if i < len(msg) && msg[i] == '(' {
		rp := strings.IndexByte(msg[i:], ')')
		if rp < 0 {
			return spec, 0, false
		}
		spec.key = msg[i+1 : i+rp]
		spec.mapped = true
		i += rp + 1
	}

	start := i
	for i < len(msg) && strings.IndexByte("-+ #0", msg[i]) >= 0 {
		i++
	}
	spec.flags = msg[start:i]

	if i < len(msg) && msg[i] == '*' {
		spec.starWidth = true
		i++
	} else {
		start = i
		for i < len(msg) && msg[i] >= '0' && msg[i] <= '9' {
			i++
		}
		spec.width = msg[start:i]
	}

	if i < len(msg) && msg[i] == '.' {
		i++
		if i < len(msg) && msg[i] == '*' {
			spec.starPrec = true
			i++
		} else {
			start = i
			for i < len(msg) && msg[i] >= '0' && msg[i] <= '9' {
				i++
			}
			spec.prec = "." + msg[start:i]
		}
	}

	// length modifiers are accepted and ignored
	for i < len(msg) && strings.IndexByte("hlL", msg[i]) >= 0 {
		i++
	}

	if i >= len(msg) || strings.IndexByte("sradiufFeEgGxXoc", msg[i]) < 0 {
		return spec, 0, false
	}
	spec.verb = msg[i]
	return spec, i + 1, true
}

func (s pctSpec) render(arg any) string {
	layout := "%" + s.flags + s.width + s.prec
	switch s.verb {
	case 's', 'a':
		return fmt.Sprintf(layout+"s", displayString(arg))
	case 'r':
		return fmt.Sprintf(layout+"s", reprString(arg))
	case 'd', 'i', 'u':
		if n, ok := asInt64(arg); ok {
			return fmt.Sprintf(layout+"d", n)
		}
	case 'x', 'X', 'o':
		if n, ok := asInt64(arg); ok {
			return fmt.Sprintf(layout+string(s.verb), n)
		}
	case 'c':
		if n, ok := asInt64(arg); ok {
			return fmt.Sprintf(layout+"c", rune(n))
		}
		if str, ok := arg.(string); ok {
			return fmt.Sprintf(layout+"s", str)
		}
	case 'f', 'F', 'e', 'E', 'g', 'G':
		if f, ok := floatVal(arg); ok {
			verb := s.verb
			if verb == 'F' {
				verb = 'f'
			}
			if s.prec == "" && (verb == 'g' || verb == 'G') {
				layout += ".6"
			}
			return fmt.Sprintf(layout+string(verb), f)
		}
		if b, ok := arg.(bool); ok {
			return fmt.Sprintf(layout+string(s.verb), float64(boolInt(b)))
		}
	}
	// the facility would fail on a type mismatch; keep the value readable
	return fmt.Sprintf(layout+"s", displayString(arg))
}

func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return t
	}
	return fmt.Sprint(v)
}

func reprString(v any) string {
	if s, ok := v.(string); ok {
		if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
			return `"` + s + `"`
		}
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return displayString(v)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case bool:
		return int64(boolInt(n)), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func argInt(args []any, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := asInt64(args[i])
	return int(n), ok
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
