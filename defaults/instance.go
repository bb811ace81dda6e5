package defaults

import (
	"github.com/teranos/schemagen/resolve"
	"github.com/teranos/schemagen/schema"
)

// Instance builds a JSON-compatible value of msg with every field at its
// default. Absent fields are omitted; nested messages are not materialized.
// Numbers are float64 and bytes are base64 strings, matching encoding/json.
func Instance(r *resolve.Resolver, msg *schema.Message) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(msg.Fields))
	for i := range msg.Fields {
		f := &msg.Fields[i]
		res, err := r.Resolve(f)
		if err != nil {
			return nil, err
		}
		v := For(f, res)
		if jv, ok := v.JSON(); ok {
			out[f.Name] = jv
		}
	}
	return out, nil
}

// JSON returns v as a decoded-JSON value, or false when v is Absent.
func (v Value) JSON() (interface{}, bool) {
	switch v.Kind {
	case String:
		return v.String, true
	case Integer:
		return float64(v.Integer), true
	case Float:
		return v.Float, true
	case Boolean:
		return v.Boolean, true
	case Bytes:
		return "", true
	case EmptySequence:
		return []interface{}{}, true
	case EnumMember:
		return float64(v.Member.Value), true
	}
	return nil, false
}
