// Package storage persists exported files.
package storage

import "context"

// Sink stores an exported file under name and returns where it ended up.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
