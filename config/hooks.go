package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/eashang1/terminal-s8/model"
)

var coordinateType = reflect.TypeOf(model.Coordinate{})

// coordinateHook decodes the [x, y] pairs used for board cells.
func coordinateHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != coordinateType {
			return data, nil
		}
		pair, ok := data.([]any)
		if !ok {
			return data, nil
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("coordinate needs 2 values, got %d", len(pair))
		}
		x, err := toInt(pair[0])
		if err != nil {
			return nil, fmt.Errorf("coordinate x: %w", err)
		}
		y, err := toInt(pair[1])
		if err != nil {
			return nil, fmt.Errorf("coordinate y: %w", err)
		}
		return model.C(x, y), nil
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("unexpected %T", v)
}
