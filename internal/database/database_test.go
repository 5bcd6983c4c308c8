package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentapi/internal/apperr"
	"contentapi/internal/config"
)

func TestCollectionMissingConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantKey string
	}{
		{
			name:    "missing uri",
			cfg:     &config.Config{DBName: "contentapi"},
			wantKey: "MONGODB_URI",
		},
		{
			name:    "missing db name",
			cfg:     &config.Config{MongoURI: "mongodb://localhost:27017"},
			wantKey: "DB_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := New(tt.cfg)

			_, err := db.Collection(context.Background(), UsersCollection)

			var cfgErr *apperr.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)

			// the failure is sticky: every subsequent call reports it too
			_, err = db.Collection(context.Background(), PostsCollection)
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestCollectionInitializedOnce(t *testing.T) {
	db := New(&config.Config{})

	// concurrent first callers share one initialization attempt and all
	// see the same result
	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.Collection(context.Background(), UsersCollection)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		var cfgErr *apperr.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	}
}

func TestToObjectID(t *testing.T) {
	oid, err := ToObjectID("507f1f77bcf86cd799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", oid.Hex())

	_, err = ToObjectID("not-an-id")
	assert.Error(t, err)
}
