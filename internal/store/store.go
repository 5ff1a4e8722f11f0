package store

import (
    "context"
    "errors"
)

// Bucket names mirror the browser-storage keys of the original terminal app.
const (
    BucketProducts = "product-storage"
    BucketCart     = "cart-storage"
    BucketUsers    = "user-storage"
    BucketAuth     = "auth-storage"
)

var (
    // ErrRevisionConflict means another writer moved the bucket revision
    // forward since this process last loaded it.
    ErrRevisionConflict = errors.New("bucket revision conflict")
)

// Store is the named-bucket persistence substrate the POS state is mirrored
// into. Load returns (nil, nil) for a bucket that has never been written,
// which callers treat as a first run.
type Store interface {
    Load(ctx context.Context, bucket string) ([]byte, error)
    Save(ctx context.Context, bucket string, data []byte) error
}
