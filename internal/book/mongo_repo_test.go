package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoFilter(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want bson.D
	}{
		{
			name: "no filters",
			q:    Query{},
			want: bson.D{},
		},
		{
			name: "rating only",
			q:    Query{MinRating: ptr(4.0)},
			want: bson.D{{Key: "average_rating", Value: bson.D{{Key: "$gte", Value: 4.0}}}},
		},
		{
			name: "all filters",
			q:    Query{MinRating: ptr(3.5), NumPages: ptr(412), Title: ptr("dune")},
			want: bson.D{
				{Key: "average_rating", Value: bson.D{{Key: "$gte", Value: 3.5}}},
				{Key: "num_pages", Value: 412},
				{Key: "title", Value: primitive.Regex{Pattern: "dune", Options: "i"}},
			},
		},
		{
			name: "title metacharacters are escaped",
			q:    Query{Title: ptr("C++ (2nd ed.)")},
			want: bson.D{{Key: "title", Value: primitive.Regex{Pattern: `C\+\+ \(2nd ed\.\)`, Options: "i"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mongoFilter(tt.q))
		})
	}
}

func TestMongoFindOptions(t *testing.T) {
	opts := mongoFindOptions(Query{})
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)

	opts = mongoFindOptions(Query{Limit: ptr(10), Skip: ptr(20)})
	if assert.NotNil(t, opts.Skip) && assert.NotNil(t, opts.Limit) {
		assert.Equal(t, int64(20), *opts.Skip)
		assert.Equal(t, int64(10), *opts.Limit)
	}
}

func TestMongoIndexes(t *testing.T) {
	indexes := MongoIndexes()
	assert.Len(t, indexes, 3)

	textIndexes := 0
	for _, idx := range indexes {
		for _, key := range idx.Keys.(bson.D) {
			if key.Value == "text" {
				textIndexes++
				break
			}
		}
	}
	assert.Equal(t, 1, textIndexes, "a collection supports a single text index")
}
