package bridge

import (
	"context"
	"reflect"

	"github.com/n-r-w/asyncdb"
)

// Flatten returns a sequence of the elements of the slice produced by fn.
// fn runs once per subscription.
func Flatten[E any](pool *WorkerPool, buffer int, fn func(ctx context.Context) ([]E, error)) *Sequence[E] {
	return NewSequence(pool, buffer, func(ctx context.Context, sink asyncdb.ISink[E]) {
		items, err := fn(ctx)
		if err != nil {
			sink.Error(err)
			return
		}

		for _, item := range items {
			if err := sink.Next(ctx, item); err != nil {
				sink.Error(err)
				return
			}
		}
		sink.Complete()
	})
}

// FlattenAny returns a sequence built from the value produced by fn:
// slices and arrays emit their elements in order, nil emits nothing, any other value emits itself.
func FlattenAny[T any](pool *WorkerPool, buffer int, fn func(ctx context.Context) (T, error)) *Sequence[any] {
	return NewSequence(pool, buffer, func(ctx context.Context, sink asyncdb.ISink[any]) {
		value, err := fn(ctx)
		if err != nil {
			sink.Error(err)
			return
		}

		for _, item := range elements(value) {
			if err := sink.Next(ctx, item); err != nil {
				sink.Error(err)
				return
			}
		}
		sink.Complete()
	})
}

func elements(value any) []any {
	if value == nil {
		return nil
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// raw bytes are a single value
			return []any{value}
		}
		items := make([]any, 0, v.Len())
		for i := range v.Len() {
			items = append(items, v.Index(i).Interface())
		}
		return items
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		if v.IsNil() {
			return nil
		}
	default:
	}

	return []any{value}
}
