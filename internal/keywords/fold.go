package keywords

import "context"

// collect runs fn over items in order and keeps the successful results.
// A failed item is reported to skip and dropped; it never stops the fold.
// Cancellation of ctx does, and is returned as the error.
func collect[In, Out any](ctx context.Context, items []In, fn func(context.Context, In) (Out, error), skip func(In, error)) ([]Out, error) {
	out := make([]Out, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(ctx, item)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if skip != nil {
				skip(item, err)
			}
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
