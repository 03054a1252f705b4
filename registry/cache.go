package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"

	"github.com/crafthub/depcraft/core"
)

// SessionTTL bounds how long cached registry responses are reused. One user
// action (resolve + confirm + download) comfortably fits; nothing depends on
// cross-action freshness.
const SessionTTL = 5 * time.Minute

// CachedClient decorates a Client with a short-lived response cache so a
// single resolution never fetches the same project twice, even when shared
// dependencies fan in from several ancestors. Concurrent fetches of the same
// key are collapsed to one upstream call.
type CachedClient struct {
	inner    Client
	details  *ristretto.Cache[string, *core.ProjectDetail]
	releases *ristretto.Cache[string, []core.VersionRelease]
	group    singleflight.Group
	ttl      time.Duration
}

func NewCachedClient(inner Client) *CachedClient {
	details, _ := ristretto.NewCache(&ristretto.Config[string, *core.ProjectDetail]{
		NumCounters: 1000,
		MaxCost:     1000,
		BufferItems: 64,
	})
	releases, _ := ristretto.NewCache(&ristretto.Config[string, []core.VersionRelease]{
		NumCounters: 1000,
		MaxCost:     1000,
		BufferItems: 64,
	})
	return &CachedClient{
		inner:    inner,
		details:  details,
		releases: releases,
		ttl:      SessionTTL,
	}
}

func (c *CachedClient) FetchProjectDetail(ctx context.Context, projectID string) (*core.ProjectDetail, error) {
	if detail, ok := c.details.Get(projectID); ok {
		return detail, nil
	}
	v, err, _ := c.group.Do("detail:"+projectID, func() (interface{}, error) {
		detail, err := c.inner.FetchProjectDetail(ctx, projectID)
		if err != nil {
			return nil, err
		}
		c.details.SetWithTTL(projectID, detail, 1, c.ttl)
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.ProjectDetail), nil
}

func (c *CachedClient) FetchCompatibleReleases(ctx context.Context, projectID, gameVersion, loader string, packageType core.PackageType) ([]core.VersionRelease, error) {
	key := fmt.Sprintf("releases:%s:%s:%s:%s", projectID, gameVersion, loader, packageType)
	if releases, ok := c.releases.Get(key); ok {
		return releases, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		releases, err := c.inner.FetchCompatibleReleases(ctx, projectID, gameVersion, loader, packageType)
		if err != nil {
			return nil, err
		}
		c.releases.SetWithTTL(key, releases, 1, c.ttl)
		return releases, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]core.VersionRelease), nil
}

// Wait flushes pending cache writes; only needed by tests.
func (c *CachedClient) Wait() {
	c.details.Wait()
	c.releases.Wait()
}
