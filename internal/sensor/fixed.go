package sensor

import "context"

// Fixed always reports the same sample. Used when no serial device is configured.
type Fixed struct {
	Value uint16
}

func (f Fixed) Read(ctx context.Context) (uint16, error) {
	return f.Value, ctx.Err()
}
