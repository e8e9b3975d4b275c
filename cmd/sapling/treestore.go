package main

import (
	"context"
	"io/ioutil"
	"os"

	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	treejson "github.com/pbanos/sapling/tree/json"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

/*
redisConfig holds the flags to connect to a Redis database where trees
are stored.
*/
type redisConfig struct {
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
}

func (rc *redisConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&(rc.redisAddr), "redis-addr", "", "address (host:port) of a Redis server to store trees on")
	cmd.PersistentFlags().StringVar(&(rc.redisPassword), "redis-password", "", "password for the Redis server")
	cmd.PersistentFlags().IntVar(&(rc.redisDB), "redis-db", 0, "number of the Redis database to store trees on")
	cmd.PersistentFlags().StringVar(&(rc.redisPrefix), "redis-prefix", "sapling", "prefix for the keys trees are stored under on Redis")
}

// client returns a client connected to the configured Redis database.
func (rc *redisConfig) client() (*redis.Client, error) {
	if rc.redisAddr == "" {
		return nil, errors.New("required redis-addr flag was not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     rc.redisAddr,
		Password: rc.redisPassword,
		DB:       rc.redisDB,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", rc.redisAddr)
	}
	return client, nil
}

/*
store returns a tree.Store on the configured Redis database, decoding
trees against the given registry, which may be nil.
*/
func (rc *redisConfig) store(reg *feature.Registry) (tree.Store, error) {
	client, err := rc.client()
	if err != nil {
		return nil, err
	}
	return redisstore.New(client, rc.redisPrefix, treejson.NewExtendingNodeEncodeDecoder(reg)), nil
}

/*
treeOutputConfig holds the flags telling where grown trees are saved to:
a JSON file, a tree name on Redis, both or none.
*/
type treeOutputConfig struct {
	redisConfig
	output string
	name   string
}

func (toc *treeOutputConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(toc.output), "output", "o", "", "path to a file to which the tree will be written in JSON format")
	cmd.PersistentFlags().StringVar(&(toc.name), "save-as", "", "name to store the tree under on Redis (requires redis-addr)")
	toc.redisConfig.addFlags(cmd)
}

func (toc *treeOutputConfig) Validate() error {
	if toc.name != "" && toc.redisAddr == "" {
		return errors.New("save-as flag requires the redis-addr flag")
	}
	return nil
}

// saveTree writes the tree rooted at n to the configured outputs.
func (toc *treeOutputConfig) saveTree(ctx context.Context, n tree.Node, logf func(string, ...interface{})) error {
	if toc.output != "" {
		logf("Writing tree in JSON to %s...", toc.output)
		f, err := os.Create(toc.output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", toc.output)
		}
		defer f.Close()
		if err = treejson.WriteJSONTree(f, n); err != nil {
			return errors.Wrapf(err, "writing tree in JSON to %s", toc.output)
		}
	}
	if toc.name != "" {
		logf("Storing tree as %s on redis at %s...", toc.name, toc.redisAddr)
		store, err := toc.store(nil)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		if err = store.Save(ctx, toc.name, n); err != nil {
			return err
		}
	}
	return nil
}

/*
treeInputConfig holds the flags telling where a tree is loaded from:
a JSON file or a tree name on Redis.
*/
type treeInputConfig struct {
	redisConfig
	treeInput string
	name      string
}

func (tic *treeInputConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tic.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.PersistentFlags().StringVar(&(tic.name), "tree-name", "", "name of the tree to load from Redis (requires redis-addr)")
	tic.redisConfig.addFlags(cmd)
}

func (tic *treeInputConfig) Validate() error {
	if tic.treeInput == "" && tic.name == "" {
		return errors.New("either the tree or the tree-name flag must be set")
	}
	if tic.treeInput != "" && tic.name != "" {
		return errors.New("cannot set both tree and tree-name flags at the same time")
	}
	if tic.name != "" && tic.redisAddr == "" {
		return errors.New("tree-name flag requires the redis-addr flag")
	}
	return nil
}

/*
loadTree loads the configured tree, resolving its features on reg and
extending their domains with the tree's branches. If reg is nil the tree
gets a registry of its own.
*/
func (tic *treeInputConfig) loadTree(ctx context.Context, reg *feature.Registry, logf func(string, ...interface{})) (tree.Node, error) {
	if tic.treeInput != "" {
		logf("Reading tree in JSON from %s...", tic.treeInput)
		data, err := ioutil.ReadFile(tic.treeInput)
		if err != nil {
			return nil, errors.Wrapf(err, "reading tree in JSON from %s", tic.treeInput)
		}
		n, err := treejson.NewExtendingNodeEncodeDecoder(reg).Decode(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing tree in JSON from %s", tic.treeInput)
		}
		return n, nil
	}
	logf("Loading tree %s from redis at %s...", tic.name, tic.redisAddr)
	store, err := tic.store(reg)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	n, err := store.Load(ctx, tic.name)
	if err == tree.ErrNotFound {
		return nil, errors.Errorf("no tree named %s on redis at %s", tic.name, tic.redisAddr)
	}
	return n, err
}
