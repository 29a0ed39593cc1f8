package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/nslscan/haplotype"
	"github.com/hupe1980/nslscan/internal/msio"
	"github.com/hupe1980/nslscan/source"
	"github.com/hupe1980/nslscan/source/gcs"
	"github.com/hupe1980/nslscan/source/minio"
	"github.com/hupe1980/nslscan/source/s3"
)

var errNoMinIOEndpoint = errors.New("minio:// input needs --minio-endpoint")

// store returns the Store serving u.
func (a *app) store(ctx context.Context, u source.URI) (source.Store, error) {
	switch u.Scheme {
	case source.SchemeFile:
		return source.NewLocalStore(""), nil
	case source.SchemeS3:
		client, err := s3.NewClient(ctx, a.cfg.S3.Region)
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		return s3.NewStore(client, u.Bucket, ""), nil
	case source.SchemeMinIO:
		if a.cfg.MinIO.Endpoint == "" {
			return nil, errNoMinIOEndpoint
		}
		client, err := minio.NewClient(a.cfg.MinIO.Endpoint, a.cfg.MinIO.AccessKey, a.cfg.MinIO.SecretKey, a.cfg.MinIO.Secure)
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return minio.NewStore(client, u.Bucket, ""), nil
	case source.SchemeGCS:
		client, err := gcs.NewClient(ctx, a.cfg.GCS.CredentialsFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		return gcs.NewStore(client, u.Bucket, ""), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", source.ErrInvalidURI, u.Scheme)
	}
}

// open resolves raw to a store and opens it with decompression.
func (a *app) open(ctx context.Context, raw string) (io.ReadCloser, error) {
	u, err := source.ParseURI(raw)
	if err != nil {
		return nil, err
	}
	st, err := a.store(ctx, u)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "opening input", "uri", u.String(), "compression", source.CompressionFor(u.Key).String())
	return source.Open(ctx, st, u.Key)
}

// replicates parses every ms replicate of the input.
func (a *app) replicates(ctx context.Context, raw string) ([]*haplotype.Matrix, error) {
	rc, err := a.open(ctx, raw)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reps, err := msio.ReadAll(rc, a.cfg.Length)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", raw, err)
	}
	a.logger.InfoContext(ctx, "input loaded", "uri", raw, "replicates", len(reps))
	return reps, nil
}

// geneticMap loads the configured map, or returns nil for physical distances.
func (a *app) geneticMap(ctx context.Context) (haplotype.GeneticMap, error) {
	if a.cfg.GeneticMap == "" {
		return nil, nil
	}

	rc, err := a.open(ctx, a.cfg.GeneticMap)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	gmap, err := msio.ReadGeneticMap(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.cfg.GeneticMap, err)
	}
	return gmap, nil
}
