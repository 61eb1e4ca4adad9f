package query

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"studynotes-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func fixtureNotes() []*entity.Note {
	return []*entity.Note{
		{Id: 1, AuthorId: "10000001", AuthorFirstName: "Ada", AuthorLastName: "Lovelace", Title: "Intro to C#", Class: "CPSC 120", Topic: "Programming", Year: 2024, CreatedAt: baseTime},
		{Id: 2, AuthorId: "10000002", AuthorFirstName: "Alan", AuthorLastName: "Turing", Title: "LINQ and collections", Class: "CPSC 120", Topic: "programming", Year: 2025, CreatedAt: baseTime.Add(time.Hour)},
		{Id: 3, AuthorId: "10000001", AuthorFirstName: "Ada", AuthorLastName: "Lovelace", Title: "database design", Class: "CPSC 332", Topic: "Databases", Year: 2025, CreatedAt: baseTime.Add(2 * time.Hour)},
		{Id: 4, AuthorId: "10000003", AuthorFirstName: "Grace", AuthorLastName: "Hopper", Title: "Exception handling in C#", Class: "cpsc 120", Topic: "Programming", Year: 2025, CreatedAt: baseTime.Add(2 * time.Hour)},
		{Id: 5, AuthorId: "10000002", AuthorFirstName: "Alan", AuthorLastName: "Turing", Title: "HTML5 fundamentals", Class: "CPSC 349", Topic: "Web", Year: 2023, CreatedAt: baseTime.Add(3 * time.Hour)},
	}
}

func ids(notes []*entity.Note) []uint {
	out := make([]uint, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Id)
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name     string
		criteria func(c *Criteria)
		want     []uint
	}{
		{name: "no filters newest first", criteria: func(c *Criteria) {}, want: []uint{5, 4, 3, 2, 1}},
		{name: "title substring case-insensitive", criteria: func(c *Criteria) { c.Title = "c#" }, want: []uint{4, 1}},
		{name: "topic exact case-insensitive", criteria: func(c *Criteria) { c.Topic = "PROGRAMMING" }, want: []uint{4, 2, 1}},
		{name: "topic is not substring", criteria: func(c *Criteria) { c.Topic = "Program" }, want: []uint{}},
		{name: "class exact case-insensitive", criteria: func(c *Criteria) { c.Class = "CPSC 120" }, want: []uint{4, 2, 1}},
		{name: "year exact", criteria: func(c *Criteria) { c.Year = intPtr(2025) }, want: []uint{4, 3, 2}},
		{name: "author full name substring", criteria: func(c *Criteria) { c.Author = "A LOV" }, want: []uint{3, 1}},
		{name: "author id", criteria: func(c *Criteria) { c.AuthorID = "10000002" }, want: []uint{5, 2}},
		{name: "conjunctive", criteria: func(c *Criteria) { c.Class = "cpsc 120"; c.Year = intPtr(2025); c.Title = "in" }, want: []uint{4, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCriteria()
			tt.criteria(&c)
			page, err := Apply(fixtureNotes(), c, PolicySearch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page.Items))
			assert.Equal(t, int64(len(tt.want)), page.Total)
		})
	}
}

func TestApply_Sorting(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      []uint
	}{
		{name: "title ascending ignores case", sortBy: "title", sortOrder: "asc", want: []uint{3, 4, 5, 1, 2}},
		{name: "title descending by default", sortBy: "TITLE", sortOrder: "", want: []uint{2, 1, 5, 4, 3}},
		{name: "createdAt ascending ties by id", sortBy: "createdAt", sortOrder: "ASC", want: []uint{1, 2, 3, 4, 5}},
		{name: "createdAt descending ties by id", sortBy: "createdat", sortOrder: "desc", want: []uint{5, 4, 3, 2, 1}},
		{name: "unknown field falls back to newest first", sortBy: "rating", sortOrder: "asc", want: []uint{5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCriteria()
			c.SortBy = tt.sortBy
			c.SortOrder = tt.sortOrder
			page, err := Apply(fixtureNotes(), c, PolicySearch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

func TestApply_Popularity(t *testing.T) {
	notes := fixtureNotes()
	notes[0].RatingCount, notes[0].RatingTotal = 2, 10 // 5.0
	notes[1].RatingCount, notes[1].RatingTotal = 3, 9  // 3.0
	notes[2].RatingCount, notes[2].RatingTotal = 2, 7  // 3.5
	notes[3].RatingCount, notes[3].RatingTotal = 0, 0
	notes[4].RatingCount, notes[4].RatingTotal = 0, 0

	page, err := Apply(notes, NewCriteria(), PolicyPopularity)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1, 3, 5, 4}, ids(page.Items))
}

func TestApply_PaginationReconstructsFullResult(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	topics := []string{"Programming", "Databases", "Web"}

	notes := make([]*entity.Note, 0, 57)
	for i := 1; i <= 57; i++ {
		notes = append(notes, &entity.Note{
			Id:        uint(i),
			Title:     fmt.Sprintf("Note %02d", rng.Intn(20)),
			Topic:     topics[rng.Intn(len(topics))],
			Year:      2020 + rng.Intn(5),
			CreatedAt: baseTime.Add(time.Duration(rng.Intn(10)) * time.Minute),
		})
	}

	for _, sortBy := range []string{"title", "createdAt"} {
		for _, pageSize := range []int{1, 7, 10, 100} {
			c := NewCriteria()
			c.Topic = "programming"
			c.SortBy = sortBy
			c.PageSize = pageSize

			c.Page = 1
			all := c
			all.PageSize = MaxPageSize
			full, err := Apply(notes, all, PolicySearch)
			require.NoError(t, err)

			var collected []uint
			for page := 1; ; page++ {
				c.Page = page
				res, err := Apply(notes, c, PolicySearch)
				require.NoError(t, err)
				assert.Equal(t, full.Total, res.Total)
				if len(res.Items) == 0 {
					break
				}
				collected = append(collected, ids(res.Items)...)
			}

			assert.Equal(t, ids(full.Items), collected, "sortBy=%s pageSize=%d", sortBy, pageSize)
		}
	}
}

func TestApply_PageBeyondEnd(t *testing.T) {
	c := NewCriteria()
	c.Page = 4
	c.PageSize = 2

	page, err := Apply(fixtureNotes(), c, PolicySearch)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 4, page.Page)
}

func TestApply_InvalidPaging(t *testing.T) {
	c := NewCriteria()
	c.Page = 0
	_, err := Apply(fixtureNotes(), c, PolicySearch)
	assert.ErrorIs(t, err, ErrInvalidPage)

	c = NewCriteria()
	c.PageSize = 0
	_, err = Apply(fixtureNotes(), c, PolicySearch)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	c.PageSize = MaxPageSize + 1
	_, err = Apply(fixtureNotes(), c, PolicySearch)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}
