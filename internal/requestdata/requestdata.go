package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the per-request session context: who is acting and under
// which token. It is installed by the auth middleware and passed explicitly
// through context, never held in package state.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
