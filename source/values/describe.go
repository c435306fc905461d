package values

import (
	"encoding/json"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

func Describe(v Value) string {
	switch v.T {
	case INT:
		return strconv.Itoa(v.V.(int))
	case BOOL:
		if v.V.(bool) {
			return "true"
		}
		return "false"
	case CLOSURE:
		cl := v.V.(Closure)
		return "closure(" + describeLoc(cl.Pc) + ", " + DescribeVector(cl.Env) + ")"
	case REC_FRAME:
		fr := v.V.(RecFrame)
		return "frame(" + describeLocs(fr.Fns) + ", " + DescribeVector(fr.Env) + ")"
	case FOCUSED:
		fc := v.V.(Focused)
		return "focus " + strconv.Itoa(fc.Idx) + " of (" + describeLocs(fc.Fns) + ", " + DescribeVector(fc.Env) + ")"
	case RETURN_ADDRESS:
		return "return " + describeLoc(v.V.(uint32))
	case SAVED_ENV:
		return "saved " + DescribeVector(v.V.(vector.Vector))
	}
	return "undefined"
}

func DescribeVector(vec vector.Vector) string {
	elements := []string{}
	for _, v := range Slice(vec) {
		elements = append(elements, Describe(v))
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

func describeLoc(pc uint32) string {
	return "@" + strconv.Itoa(int(pc))
}

func describeLocs(pcs []uint32) string {
	locs := make([]string, len(pcs))
	for i, pc := range pcs {
		locs[i] = describeLoc(pc)
	}
	return strings.Join(locs, " ")
}

// Values are serialized as tagged objects so that traces can be dumped and diffed.
func (v Value) MarshalJSON() ([]byte, error) {
	obj := map[string]any{"type": v.T.String()}
	switch v.T {
	case INT, BOOL:
		obj["value"] = v.V
	case CLOSURE:
		cl := v.V.(Closure)
		obj["pc"] = cl.Pc
		obj["env"] = Slice(cl.Env)
	case REC_FRAME:
		fr := v.V.(RecFrame)
		obj["fns"] = fr.Fns
		obj["env"] = Slice(fr.Env)
	case FOCUSED:
		fc := v.V.(Focused)
		obj["index"] = fc.Idx
		obj["fns"] = fc.Fns
		obj["env"] = Slice(fc.Env)
	case RETURN_ADDRESS:
		obj["pc"] = v.V.(uint32)
	case SAVED_ENV:
		obj["env"] = Slice(v.V.(vector.Vector))
	}
	return json.Marshal(obj)
}
