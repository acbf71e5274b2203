package bind

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Text is a string field that also accepts a JSON number or boolean.
// Form widgets that coerce digit-only input to numbers send
// {"tracking_code": 123456789} where the API expects a string.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return fmt.Errorf("bind: expected a string, got %s", b)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// String returns t as a plain string.
func (t Text) String() string { return string(t) }
