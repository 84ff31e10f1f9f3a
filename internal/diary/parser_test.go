package diary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMarkers_FindsEditReviewLinksInOrder(t *testing.T) {
	page := `<html><body>
<a class="edit-review-button" data-viewing-date-str="2024-01-02" data-film-name="First"></a>
<div class="edit-review-button" data-viewing-date-str="2024-01-03">not a link</div>
<a class="edit-review-button-large" data-viewing-date-str="2024-01-04">wrong class</a>
<section><a class="has-icon  edit-review-button" data-viewing-date-str="2024-01-05" data-film-name="Second"></a></section>
<a class="other">plain</a>
</body></html>`

	markers, err := ParseMarkers(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, markers, 2)

	name, ok := markers[0].Attr(AttrFilmName)
	require.True(t, ok)
	require.Equal(t, "First", name)

	date, ok := markers[1].Attr(AttrViewingDate)
	require.True(t, ok)
	require.Equal(t, "2024-01-05", date)

	_, ok = markers[1].Attr(AttrRating)
	require.False(t, ok)
}

func TestParseMarkers_EmptyPage(t *testing.T) {
	markers, err := ParseMarkers(strings.NewReader(diaryPage()))
	require.NoError(t, err)
	require.Empty(t, markers)
}

func TestParseMarkers_UnescapesAttributes(t *testing.T) {
	page := diaryPage(map[string]string{
		AttrViewingDate: "2024-02-14",
		AttrFilmName:    `Léon: The "Professional" & Co`,
	})

	markers, err := ParseMarkers(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, markers, 1)

	name, _ := markers[0].Attr(AttrFilmName)
	require.Equal(t, `Léon: The "Professional" & Co`, name)
}

func TestNewMarker_CopiesAttributes(t *testing.T) {
	attrs := map[string]string{AttrFilmName: "Heat"}
	m := NewMarker(attrs)
	attrs[AttrFilmName] = "Changed"

	name, _ := m.Attr(AttrFilmName)
	require.Equal(t, "Heat", name)
}
