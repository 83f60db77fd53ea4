package api

import "context"

type ctxKey string

const ctxKeyStaff ctxKey = "staff"

// Staff identifies an authenticated back-office operator.
type Staff struct {
	Email string
}

func WithStaff(ctx context.Context, s *Staff) context.Context {
	return context.WithValue(ctx, ctxKeyStaff, s)
}

func StaffFromContext(ctx context.Context) *Staff {
	v := ctx.Value(ctxKeyStaff)
	if v == nil {
		return nil
	}
	s, _ := v.(*Staff)
	return s
}
