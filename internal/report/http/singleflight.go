package reporthttp

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

var errNoData = errors.New("report: nothing to export")

var workbookGroup singleflight.Group

func singleflightBuild(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error, bool) {
	resultChan := workbookGroup.DoChan(key, func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}
