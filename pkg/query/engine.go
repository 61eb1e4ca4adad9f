package query

import (
	"cmp"
	"slices"
	"strings"

	"studynotes-be/internal/entity"
)

// Apply filters, orders and paginates notes without touching the input slice.
func Apply(notes []*entity.Note, c Criteria, policy Policy) (Page[*entity.Note], error) {
	if err := c.Validate(); err != nil {
		return Page[*entity.Note]{}, err
	}

	filtered := Filter(notes, c)
	slices.SortFunc(filtered, Comparator(c, policy))

	total := len(filtered)
	start := min(c.Offset(), total)
	end := min(start+c.PageSize, total)

	items := make([]*entity.Note, end-start)
	copy(items, filtered[start:end])

	return Page[*entity.Note]{
		Items:    items,
		Total:    int64(total),
		Page:     c.Page,
		PageSize: c.PageSize,
	}, nil
}

func Filter(notes []*entity.Note, c Criteria) []*entity.Note {
	out := make([]*entity.Note, 0, len(notes))
	for _, n := range notes {
		if Matches(n, c) {
			out = append(out, n)
		}
	}
	return out
}

func Matches(n *entity.Note, c Criteria) bool {
	if c.Title != "" && !containsFold(n.Title, c.Title) {
		return false
	}
	if c.Topic != "" && !strings.EqualFold(n.Topic, c.Topic) {
		return false
	}
	if c.Class != "" && !strings.EqualFold(n.Class, c.Class) {
		return false
	}
	if c.Year != nil && n.Year != *c.Year {
		return false
	}
	if c.Author != "" && !containsFold(n.AuthorFirstName+" "+n.AuthorLastName, c.Author) {
		return false
	}
	if c.AuthorID != "" && n.AuthorId != c.AuthorID {
		return false
	}
	return true
}

// Comparator returns a total order over notes for the given policy.
func Comparator(c Criteria, policy Policy) func(a, b *entity.Note) int {
	if policy == PolicyPopularity {
		return comparePopularity
	}

	field, desc := c.Sort()
	return func(a, b *entity.Note) int {
		var r int
		switch field {
		case SortByTitle:
			r = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		default:
			r = a.CreatedAt.Compare(b.CreatedAt)
		}
		if r == 0 {
			r = cmp.Compare(a.Id, b.Id)
		}
		if desc {
			return -r
		}
		return r
	}
}

func comparePopularity(a, b *entity.Note) int {
	if r := cmp.Compare(b.RatingCount, a.RatingCount); r != 0 {
		return r
	}
	// equal counts: higher total means higher average
	if r := cmp.Compare(b.RatingTotal, a.RatingTotal); r != 0 {
		return r
	}
	if r := b.CreatedAt.Compare(a.CreatedAt); r != 0 {
		return r
	}
	return cmp.Compare(b.Id, a.Id)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
