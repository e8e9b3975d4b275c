package tree

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by stores when no tree is stored under a name.
var ErrNotFound = errors.New("tree not found")

/*
Store is an interface to manage a store where trees can be saved,
loaded and deleted by name.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a name and a node and stores the
	// tree rooted at the node under the name,
	// replacing any tree stored with it before.
	Save(ctx context.Context, name string, n Node) error
	// Load takes a name and returns the tree stored
	// under it, ErrNotFound if there is none or
	// an error if the store cannot be queried.
	Load(ctx context.Context, name string) (Node, error)
	// Delete takes a name and removes the tree stored
	// under it. Deleting a missing tree is not an error.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should
	// free any resources in use before returning
	// (unless the context expires).
	Close(ctx context.Context) error
}
