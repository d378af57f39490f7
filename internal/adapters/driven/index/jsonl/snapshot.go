package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"time"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// normEpsilon guards against division by zero for degenerate vectors.
const normEpsilon = 1e-8

// maxLineBytes bounds a single index line. Chunk text plus a few
// thousand vector components fits comfortably.
const maxLineBytes = 16 * 1024 * 1024

// snapshot is an immutable in-memory copy of the index file.
// Vectors are L2-normalised at load time so search is a dot product.
type snapshot struct {
	records []domain.IndexRecord
	vectors [][]float32
	modTime time.Time
}

// emptySnapshot is served when the index file does not exist yet.
func emptySnapshot() *snapshot {
	return &snapshot{}
}

// loadSnapshot reads and parses the whole index file.
// A missing file yields an empty snapshot; a malformed line is fatal.
func loadSnapshot(path string) (*snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptySnapshot(), nil
		}
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat index file: %w", err)
	}

	snap := &snapshot{modTime: info.ModTime()}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrIndexParse, line, err)
		}

		dr, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		snap.records = append(snap.records, dr)
		snap.vectors = append(snap.vectors, normalise(dr.Vector))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading index file: %v", domain.ErrIndexParse, err)
	}

	return snap, nil
}

// search scores every record against the query and returns the top k,
// ordered by descending similarity. Exact ties keep record order.
func (s *snapshot) search(query []float32, k int) []domain.ScoredRecord {
	if len(s.records) == 0 || k <= 0 {
		return nil
	}

	q := normalise(query)

	scored := make([]domain.ScoredRecord, len(s.records))
	for i, rec := range s.records {
		scored[i] = domain.ScoredRecord{
			Record: rec,
			Score:  float64(dot(q, s.vectors[i])),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// size returns the record count.
func (s *snapshot) size() int {
	return len(s.records)
}

// normalise returns an L2-normalised copy of the vector.
func normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum) + normEpsilon

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the dot product over the shared prefix of two vectors.
func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
