/*
Package redisstore provides an implementation of tree.Store
that uses a Redis database as backend.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type NodeEncodeDecoder interface {
	Encode(tree.Node) ([]byte, error)
	Decode([]byte) (tree.Node, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec NodeEncodeDecoder
}

// New builds a tree.Store backed by a redis DB that
// stores trees encoded with the given NodeEncodeDecoder
// under keys made of the given prefix and the tree name.
func New(rc *redis.Client, prefix string, nencdec NodeEncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) Save(ctx context.Context, name string, n tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "storing tree %q: encoding tree", key)
	}
	err = rs.rc.Set(key, data, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "storing tree %q in redis", key)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := rs.keyFor(name)
	data, err := rs.rc.Get(key).Bytes()
	if err == redis.Nil {
		return nil, tree.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", key)
	}
	n, err := rs.nencdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q: decoding", key)
	}
	return n, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	err := rs.rc.Del(key).Err()
	if err != nil {
		return errors.Wrapf(err, "deleting tree %q from redis", key)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
