package comparer

import (
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// JSONBytes compares []byte payloads as JSON documents, ignoring key order
// and whitespace. Payloads that aren't valid JSON only match byte for byte.
func JSONBytes() cmp.Option {
	return cmp.Comparer(func(x, y []byte) bool {
		if len(x) == 0 && len(y) == 0 {
			return true
		}

		var xObj, yObj interface{}
		if json.Unmarshal(x, &xObj) != nil || json.Unmarshal(y, &yObj) != nil {
			return string(x) == string(y)
		}

		return reflect.DeepEqual(xObj, yObj)
	})
}
