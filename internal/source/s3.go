// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/ndjdiff/ndjdiff/internal/aws"
	"github.com/ndjdiff/ndjdiff/internal/cacheutil"
	"github.com/ndjdiff/ndjdiff/internal/config"
	"github.com/ndjdiff/ndjdiff/internal/log"
)

// purgeCache drops cache entries older than the configured purge_hours.
func purgeCache() error {
	hours, _ := config.GetInt("purge_hours", 24)
	return cacheutil.Purge(hours)
}

// ObjectVersion is one historical version of the target S3 object, for the
// interactive picker.
type ObjectVersion struct {
	ID           string
	LastModified time.Time
	Size         int64
	IsLatest     bool
}

// s3Source reads a blob from an S3 object, optionally pinned to a version.
type s3Source struct {
	spec Spec
	o    options
}

func (s *s3Source) client(ctx context.Context) (*s3v2.Client, error) {
	var cfgOpts []awsx.Option
	if s.o.profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(s.o.profile))
	}
	if s.o.region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(s.o.region))
	}

	cfg, err := awsx.LoadConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsx.NewS3(cfg), nil
}

func (s *s3Source) ReadAll(ctx context.Context) (string, error) {
	// Version-pinned reads are immutable, so they can come from the disk
	// cache. Latest reads always hit the network.
	cacheKey := s.spec.Key + "@" + s.spec.VersionID
	if s.spec.VersionID != "" {
		if err := purgeCache(); err != nil {
			log.WithError(err).Warnf("failed to purge cache")
		}
		if entry, ok := cacheutil.Read([]string{"remote", s.spec.Bucket}, cacheKey); ok {
			return unsealIfNeeded(entry.Data, s.o.passphrase)
		}
	}

	svc, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.spec.Bucket),
		Key:    awsv2.String(s.spec.Key),
	}
	if s.spec.VersionID != "" {
		input.VersionId = awsv2.String(s.spec.VersionID)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read S3 object body: %w", err)
	}
	log.Debugf("s3 read: bucket=%s key=%s bytes=%d", s.spec.Bucket, s.spec.Key, len(data))

	if s.spec.VersionID != "" {
		if err := cacheutil.Write([]string{"remote", s.spec.Bucket}, cacheKey, data); err != nil {
			log.WithError(err).Warnf("failed to write cache entry")
		}
	}

	return unsealIfNeeded(data, s.o.passphrase)
}

func (s *s3Source) String() string {
	return s.spec.String()
}

// Versions lists the object's versions, newest first. Delete markers hide
// everything older than the most recent one.
func (s *s3Source) Versions(ctx context.Context) ([]ObjectVersion, error) {
	svc, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	paginator := s3v2.NewListObjectVersionsPaginator(svc, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(s.spec.Bucket),
		Prefix: awsv2.String(s.spec.Key),
	})

	var versions []ObjectVersion
	var mostRecentDelete time.Time

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}

		for _, d := range page.DeleteMarkers {
			// The prefix is literal, so siblings (locks, backups) come back
			// too. Only exact key matches count.
			if d.Key == nil || *d.Key != s.spec.Key {
				continue
			}
			if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
				mostRecentDelete = *d.LastModified
			}
		}

		for _, v := range page.Versions {
			if v.Key == nil || *v.Key != s.spec.Key {
				if v.Key != nil {
					log.Debugf("throwing away %s", *v.Key)
				}
				continue
			}
			if v.VersionId == nil || v.LastModified == nil {
				continue
			}

			ov := ObjectVersion{
				ID:           *v.VersionId,
				LastModified: *v.LastModified,
			}
			if v.Size != nil {
				ov.Size = *v.Size
			}
			if v.IsLatest != nil {
				ov.IsLatest = *v.IsLatest
			}
			versions = append(versions, ov)
		}
	}

	// Drop anything older than the most recent delete marker.
	kept := versions[:0]
	for _, v := range versions {
		if !v.LastModified.Before(mostRecentDelete) {
			kept = append(kept, v)
		}
	}
	versions = kept

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].LastModified.After(versions[j].LastModified)
	})

	return versions, nil
}

// Versioned returns a copy of the source pinned to the given version ID.
func (s *s3Source) Versioned(versionID string) Source {
	spec := s.spec
	spec.VersionID = versionID
	return &s3Source{spec: spec, o: s.o}
}

// Versioner is implemented by sources whose backing store keeps object
// history. Only the S3 source does.
type Versioner interface {
	Versions(ctx context.Context) ([]ObjectVersion, error)
	Versioned(versionID string) Source
}
