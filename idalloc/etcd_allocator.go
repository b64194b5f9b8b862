package idalloc

import (
	"context"
	"fmt"
	"strconv"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdAllocator hands out connection ids from a single counter key shared
// by every server process in a deployment, advanced with a
// compare-and-swap transaction so concurrent minting across processes
// never hands out the same id twice.
type EtcdAllocator struct {
	client *clientv3.Client
	key    string // etcd key holding the decimal counter value
}

// NewEtcdAllocator connects to the given etcd endpoints and allocates
// connection ids under key (e.g. "/obex/gateway-a/connid").
func NewEtcdAllocator(endpoints []string, key string) (*EtcdAllocator, error) {
	c, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, err
	}
	return &EtcdAllocator{client: c, key: key}, nil
}

// Next reads the current counter, advances it by one via a
// compare-and-swap transaction on the key's ModRevision, and re-reads and
// retries when another process won the race.
func (a *EtcdAllocator) Next() (uint32, error) {
	ctx := context.TODO()
	for {
		resp, err := a.client.Get(ctx, a.key)
		if err != nil {
			return 0, fmt.Errorf("idalloc: etcd get: %w", err)
		}

		var cur uint64
		var modRev int64
		if len(resp.Kvs) > 0 {
			cur, err = strconv.ParseUint(string(resp.Kvs[0].Value), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("idalloc: corrupt counter value %q: %w", resp.Kvs[0].Value, err)
			}
			modRev = resp.Kvs[0].ModRevision
		}

		if cur >= 0xFFFFFFFF {
			return 0, ErrExhausted
		}
		next := cur + 1
		nextStr := strconv.FormatUint(next, 10)

		txn := a.client.Txn(ctx).
			If(clientv3.Compare(clientv3.ModRevision(a.key), "=", modRev)).
			Then(clientv3.OpPut(a.key, nextStr))
		txnResp, err := txn.Commit()
		if err != nil {
			return 0, fmt.Errorf("idalloc: etcd txn: %w", err)
		}
		if !txnResp.Succeeded {
			continue // lost the race to another process, re-read and retry
		}
		return uint32(next), nil
	}
}

// Close releases the underlying etcd client connection.
func (a *EtcdAllocator) Close() error {
	return a.client.Close()
}
