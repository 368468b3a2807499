package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/angas/gridhost-go/types"
)

// FileProvider reads the two input series from CSV files on disk. It
// implements types.SeriesProvider.
type FileProvider struct {
	netLoadPath      string
	solarProfilePath string
}

func NewFileProvider(netLoadPath, solarProfilePath string) FileProvider {
	return FileProvider{
		netLoadPath:      netLoadPath,
		solarProfilePath: solarProfilePath,
	}
}

func (p FileProvider) GetNetLoad(ctx context.Context) ([]types.SeriesPoint, error) {
	return p.readFile(ctx, p.netLoadPath)
}

func (p FileProvider) GetSolarProfile(ctx context.Context) ([]types.SeriesPoint, error) {
	return p.readFile(ctx, p.solarProfilePath)
}

func (p FileProvider) readFile(ctx context.Context, path string) ([]types.SeriesPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening series file: %w", err)
	}
	defer f.Close()

	points, err := ParseSeries(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return points, nil
}
