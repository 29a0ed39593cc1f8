package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nslscan/source"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.HeadObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func keyIs(key string) func(*s3.HeadObjectInput) bool {
	return func(input *s3.HeadObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == key
	}
}

func TestStore_Open(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(keyIs("prefix/foo"))).
			Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(context.Background(), "foo")
		assert.Equal(t, source.ErrNotFound, err)
	})

	t.Run("Success", func(t *testing.T) {
		const body = "//\nsegsites: 1\npositions: 0.5\n0\n1\n"
		size := int64(len(body))

		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(keyIs("prefix/run.ms"))).
			Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(size)}, nil).Once()
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/run.ms"
		})).Return(&s3.GetObjectOutput{
			Body:          io.NopCloser(strings.NewReader(body)),
			ContentLength: aws.Int64(size),
			ContentRange:  aws.String(fmt.Sprintf("bytes 0-%d/%d", size-1, size)),
		}, nil).Once()

		rc, err := store.Open(context.Background(), "run.ms")
		require.NoError(t, err)
		defer rc.Close()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	})

	t.Run("OtherError", func(t *testing.T) {
		boom := errors.New("boom")
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(keyIs("prefix/err"))).
			Return(nil, boom).Once()

		_, err := store.Open(context.Background(), "err")
		assert.ErrorIs(t, err, boom)
	})

	mockClient.AssertExpectations(t)
}

func TestMapError(t *testing.T) {
	assert.Equal(t, source.ErrNotFound, mapError(&types.NoSuchKey{}))
	assert.Equal(t, source.ErrNotFound, mapError(fmt.Errorf("wrapped: %w", &types.NotFound{})))
}
