package blob

import (
	"context"
	"io"
)

// Store is the object storage used for customer uploads. Put writes the object
// under the given key (overwriting any previous object at that key) and returns
// a publicly reachable URL.
type Store interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
