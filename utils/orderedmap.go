package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// OrderedMapToString renders an ordered map as "[k1=v1 k2=v2]", preserving insertion order.
func OrderedMapToString(data *orderedmap.OrderedMap[string, any]) string {
	if data == nil {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for el := data.Front(); el != nil; el = el.Next() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		switch v := el.Value.(type) {
		case float32:
			fmt.Fprintf(&sb, "%s=%.4f", el.Key, v)
		default:
			fmt.Fprintf(&sb, "%s=%v", el.Key, v)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
