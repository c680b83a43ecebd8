package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/seqmin/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB is an in-memory stand-in for the DynamoDB commit table.
type fakeDDB struct {
	items      []map[string]types.AttributeValue
	failPut    error
	queryCalls int
}

func (f *fakeDDB) Query(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryCalls++
	if len(f.items) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	// Newest first, mirroring ScanIndexForward=false with Limit=1.
	latest := f.items[len(f.items)-1]
	return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{latest}}, nil
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	f.items = append(f.items, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func newCommitStore(ddb *fakeDDB) *CommitStore {
	// The S3 side is unused by pointer operations; nil client is fine here.
	return NewCommitStore(NewStore(nil, "bucket", "idx"), ddb, "seqmin-commits", "s3://bucket/idx")
}

func TestCommitStore_CurrentPointer(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyTable", func(t *testing.T) {
		cs := newCommitStore(&fakeDDB{})
		_, err := cs.Open(ctx, CurrentPointer)
		assert.True(t, errors.Is(err, blobstore.ErrNotFound))
	})

	t.Run("CommitThenRead", func(t *testing.T) {
		ddb := &fakeDDB{}
		cs := newCommitStore(ddb)

		require.NoError(t, cs.Commit(ctx, "snapshots/v1.smin"))

		blob, err := cs.Open(ctx, CurrentPointer)
		require.NoError(t, err)
		defer blob.Close()

		data, err := io.ReadAll(blobstore.NewReader(blob))
		require.NoError(t, err)
		assert.Equal(t, "snapshots/v1.smin", string(data))
	})

	t.Run("VersionsIncrease", func(t *testing.T) {
		ddb := &fakeDDB{}
		cs := newCommitStore(ddb)

		require.NoError(t, cs.Commit(ctx, "snapshots/v1.smin"))
		require.NoError(t, cs.Commit(ctx, "snapshots/v2.smin"))

		blob, err := cs.Open(ctx, CurrentPointer)
		require.NoError(t, err)
		data, _ := io.ReadAll(blobstore.NewReader(blob))
		assert.Equal(t, "snapshots/v2.smin", string(data))

		v := ddb.items[1]["version"].(*types.AttributeValueMemberN)
		assert.Equal(t, "2", v.Value)
	})

	t.Run("ConcurrentModification", func(t *testing.T) {
		ddb := &fakeDDB{failPut: &types.ConditionalCheckFailedException{}}
		cs := newCommitStore(ddb)

		err := cs.Commit(ctx, "snapshots/v1.smin")
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("CreateCurrentRejected", func(t *testing.T) {
		cs := newCommitStore(&fakeDDB{})
		_, err := cs.Create(ctx, CurrentPointer)
		assert.Error(t, err)
	})
}
