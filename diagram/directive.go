package diagram

import (
	"regexp"

	"github.com/skillsenselab/yumlsvg/logger"
)

// directivePattern matches an embedded configuration comment of the exact
// shape // {key:value}, both tokens restricted to word characters.
var directivePattern = regexp.MustCompile(`^//\s*\{\s*(\w+)\s*:\s*(\w+)\s*\}\s*$`)

// applyDirective recognizes and applies one directive comment line.
// Lines that do not match the directive shape, and directives with
// unrecognized keys, are silently ignored. Invalid values warn on the
// diagnostic logger and leave the configuration untouched.
func (r *Renderer) applyDirective(line string, opts *Options) {
	m := directivePattern.FindStringSubmatch(line)
	if m == nil {
		return
	}
	key, value := m[1], m[2]

	switch key {
	case "type":
		t := DiagramType(value)
		if !t.Known() {
			r.log.Warn("unknown diagram type in directive", logger.Fields(
				logger.FieldDirective, key,
				"value", value,
				"valid_types", KnownTypes(),
			))
			return
		}
		opts.Type = t

	case "direction":
		dir, ok := directionNames[value]
		if !ok {
			r.log.Warn("unknown direction in directive", logger.Fields(
				logger.FieldDirective, key,
				"value", value,
				"valid_directions", []string{"topDown", "leftToRight", "rightToLeft"},
			))
			return
		}
		opts.Dir = dir

	case "generate":
		switch value {
		case "true", "false":
			opts.Generate = value == "true"
			r.log.Warn("the generate option is deprecated and has no effect", logger.Fields(
				logger.FieldDirective, key,
			))
		default:
			r.log.Warn("invalid value for generate directive", logger.Fields(
				logger.FieldDirective, key,
				"value", value,
				"allowed_values", []string{"true", "false"},
			))
		}
	}
}
