package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Duration 可读写为 JSON 字符串的时长
//
// 读入时接受 "1s"、"200ms" 这类字符串，也接受整数纳秒；写出总是字符串。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config: bad duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("config: duration %s is neither a string nor integer nanoseconds", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Std 转为 time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }
