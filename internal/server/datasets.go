package server

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/coocood/freecache"
	"github.com/google/uuid"

	"github.com/iksnae/question-digest/internal"
)

// defaultDatasetMB sizes the dataset store when the cache size is not configured.
const defaultDatasetMB = 64

var (
	// ErrDatasetNotFound is returned for unknown or evicted local datasets.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrDatasetTooLarge is returned when a file does not fit a cache entry.
	ErrDatasetTooLarge = errors.New("dataset too large")
)

// DatasetStore keeps the artifacts of uploaded exports in memory, compressed,
// under a random id. Entries expire with the cache TTL and are never written to disk.
type DatasetStore struct {
	cache      *freecache.Cache
	compressor Compressor
	ttl        int
	stored     atomic.Int64
}

// NewDatasetStore creates a DatasetStore sized from the cache config
func NewDatasetStore(conf *internal.Config, compressor Compressor) *DatasetStore {
	sizeMB := conf.Cache.SizeMB
	if sizeMB <= 0 {
		sizeMB = defaultDatasetMB
	}
	return &DatasetStore{
		cache:      freecache.NewCache(cacheBytes(sizeMB)),
		compressor: compressor,
		ttl:        ttlSeconds(conf),
	}
}

func datasetKey(id, name string) []byte {
	return []byte("ds:" + id + ":" + name)
}

// Put stores every file of sink under a new id.
func (s *DatasetStore) Put(sink *internal.MemorySink) (string, error) {
	id := uuid.NewString()
	names, files := sink.Files()
	for _, name := range names {
		packed, err := s.compressor.Compress(files[name])
		if err != nil {
			return "", fmt.Errorf("failed to compress %s: %w", name, err)
		}
		if err := s.cache.Set(datasetKey(id, name), packed, s.ttl); err != nil {
			s.Delete(id, names)
			if errors.Is(err, freecache.ErrLargeEntry) {
				return "", ErrDatasetTooLarge
			}
			return "", fmt.Errorf("failed to store %s: %w", name, err)
		}
	}
	s.stored.Add(1)
	return id, nil
}

// Get returns one file of a dataset.
func (s *DatasetStore) Get(id, name string) ([]byte, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, ErrDatasetNotFound
	}
	packed, err := s.cache.Get(datasetKey(id, name))
	if err != nil {
		return nil, ErrDatasetNotFound
	}
	return s.compressor.Decompress(packed)
}

// Delete removes the named files of a dataset.
func (s *DatasetStore) Delete(id string, names []string) {
	for _, name := range names {
		s.cache.Del(datasetKey(id, name))
	}
}

// Stored returns how many datasets were accepted since start.
func (s *DatasetStore) Stored() int64 {
	return s.stored.Load()
}
