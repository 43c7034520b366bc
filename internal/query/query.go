// Package query implements the pagination, sorting and search contract
// shared by every list endpoint. One implementation keeps the semantics
// identical everywhere, in particular the rule that an empty page is a
// success=false result, not an error.
package query

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Params struct {
	Page      int
	Limit     int
	SortOrder string
}

// ParseParams reads page, limit and sortOrder from the query string.
// Non-numeric or non-positive values fall back to the defaults.
func ParseParams(c *gin.Context) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit, SortOrder: c.Query("sortOrder")}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

// Skip returns the number of documents to skip for the requested page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// SortDirection maps sortOrder=asc to ascending creation time; any other
// value, including absent, sorts descending.
func (p Params) SortDirection() int {
	if p.SortOrder == "asc" {
		return 1
	}
	return -1
}

// TotalPages computes ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// SearchFilter builds a case-insensitive substring match over the given
// fields, combined with OR.
func SearchFilter(term string, fields ...string) bson.M {
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: primitive.Regex{Pattern: term, Options: "i"}})
	}
	return bson.M{"$or": or}
}

// Page is one page of entities plus the pagination metadata the envelope
// carries back to the client.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	Total       int64
}

// Find runs the count and the page fetch concurrently and assembles the
// result. The page is sorted by creation time in the requested direction;
// projection, when set, strips sensitive fields from the returned documents.
func Find[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, p Params, projection bson.M) (*Page[T], error) {
	if filter == nil {
		filter = bson.M{}
	}

	var (
		total int64
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		return err
	})
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: p.SortDirection()}}).
			SetSkip(p.Skip()).
			SetLimit(int64(p.Limit))
		if projection != nil {
			opts.SetProjection(projection)
		}
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &items)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:       items,
		CurrentPage: p.Page,
		TotalPages:  TotalPages(total, p.Limit),
		Total:       total,
	}, nil
}
