package extract

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/julianshen/chunkmap/internal/project"
)

// FileImports is the extraction result for one file.
type FileImports struct {
	Path    string
	Imports []RawImport
}

// Files extracts imports from every file in paths using at most
// concurrency goroutines (NumCPU when concurrency < 1), consulting cache
// when it is non-nil. Results are returned in the order of paths
// regardless of scheduling. If ctx is cancelled, files not yet started are
// skipped and ctx.Err() is returned.
func Files(ctx context.Context, pc *project.Context, paths []string, concurrency int, cache Cache) ([]FileImports, error) {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	results := make([]FileImports, len(paths))
	p := pool.New().WithMaxGoroutines(concurrency)
	for i, path := range paths {
		p.Go(func() {
			results[i].Path = path
			if ctx.Err() != nil {
				return
			}
			results[i].Imports = cachedFile(ctx, pc, path, cache)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
