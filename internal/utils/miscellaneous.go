package utils

import "fmt"

func Must[T any](obj T, err error) T {
	if err != nil {
		panic(err)
	}
	return obj
}

func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%#v", v)
}
