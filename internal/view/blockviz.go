package view

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

const (
	// BucketInterval is one sixteenth of a day, in seconds.
	BucketInterval = 86400 / 16
	// BucketCount buckets cover the last seven days.
	BucketCount = 112
)

// Blockviz adds the last seven days of records to page, bucketed by creation time.
func (a *Assembler) Blockviz(ctx context.Context, store Store, page *model.Page) (err error) {
	defer func(started time.Time) { a.metrics.Observe("blockviz", err, started) }(time.Now())

	if err = checkPreconditions(store, page); err != nil {
		return fmt.Errorf("blockviz: %w", err)
	}

	since := a.now().Unix() - BucketInterval*BucketCount
	records, err := store.Timeline(ctx, since)
	if err != nil {
		return fmt.Errorf("load timeline: %w", err)
	}

	page.Blockviz = bucketize(records, since)
	return nil
}

// bucketize consumes records, sorted by creation time ascending, into
// BucketCount consecutive buckets starting at since. Records newer than the
// last bucket are dropped.
func bucketize(records []model.TimelineRecord, since int64) [][]model.BlockvizEntry {
	buckets := make([][]model.BlockvizEntry, 0, BucketCount)
	next := 0
	for i := int64(1); i <= BucketCount; i++ {
		end := since + i*BucketInterval
		bucket := make([]model.BlockvizEntry, 0)
		for next < len(records) && records[next].CreatedAt < end {
			r := records[next]
			bucket = append(bucket, model.BlockvizEntry{
				Mined: r.Mined,
				Power: utf8.RuneCountInString(r.MagicNumber),
				TxID:  r.TxID,
			})
			next++
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}
