package overlay

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
)

func gallery() *content.Tables {
	return &content.Tables{Projects: []content.ProjectRecord{
		{Slug: "a", Title: "A"},
		{Slug: "b", Title: "B"},
	}}
}

func TestSelectSelectDismiss(t *testing.T) {
	g := gallery()
	o := New(g)
	assert.False(t, o.IsOpen())

	p, err := o.Select("a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)

	_, err = o.Select("b")
	require.NoError(t, err)
	require.True(t, o.IsOpen())
	assert.Equal(t, "B", o.Current().Title)

	assert.True(t, o.Dismiss(Scrim))
	assert.False(t, o.IsOpen())
	assert.Nil(t, o.Current())
}

func TestInnerDoesNotDismiss(t *testing.T) {
	o := New(gallery())
	_, err := o.Select("a")
	require.NoError(t, err)

	assert.False(t, o.Dismiss(Inner))
	assert.Equal(t, "A", o.Current().Title)

	assert.True(t, o.Dismiss(Escape))
	assert.False(t, o.Dismiss(CloseButton))
}

func TestUnknownProjectCloses(t *testing.T) {
	o := New(gallery())
	_, err := o.Select("a")
	require.NoError(t, err)

	p, err := o.Select("zzz")
	assert.Nil(t, p)
	assert.Equal(t, ErrUnknownProject, errors.Cause(err))
	assert.False(t, o.IsOpen())
}

func TestOpenIffLastActionSelect(t *testing.T) {
	g := gallery()
	slugs := []string{"a", "b"}
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 100; round++ {
		o := New(g)
		var want string
		for i := 0; i < 20; i++ {
			if rng.Intn(3) == 0 {
				o.Dismiss(Origin(rng.Intn(3)))
				want = ""
			} else {
				slug := slugs[rng.Intn(len(slugs))]
				_, err := o.Select(slug)
				require.NoError(t, err)
				want = slug
			}

			if want == "" {
				assert.False(t, o.IsOpen())
				continue
			}
			require.True(t, o.IsOpen())
			assert.Equal(t, want, o.Current().Slug)
			_, member := g.Project(o.Current().Slug)
			assert.True(t, member)
		}
	}
}

func TestParseOrigin(t *testing.T) {
	assert.Equal(t, CloseButton, ParseOrigin("close"))
	assert.Equal(t, Scrim, ParseOrigin("scrim"))
	assert.Equal(t, Escape, ParseOrigin("escape"))
	assert.Equal(t, Inner, ParseOrigin("link"))
	assert.Equal(t, Inner, ParseOrigin(""))
}
