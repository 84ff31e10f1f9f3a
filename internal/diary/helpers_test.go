package diary

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// diaryPage renders a minimal diary listing page with one marker per attribute set.
func diaryPage(markers ...map[string]string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Diary</title></head><body><table id="diary-table"><tbody>`)
	for _, attrs := range markers {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(`<tr class="diary-entry-row"><td class="td-actions">`)
		b.WriteString(`<a href="#" class="edit-review-button has-icon icon-16"`)
		for _, k := range keys {
			fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(attrs[k]))
		}
		b.WriteString(`>Edit</a></td></tr>`)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func entryAttrs(date, name, year, rating string, liked, rewatch bool) map[string]string {
	attrs := map[string]string{
		AttrViewingDate: date,
		AttrFilmName:    name,
		AttrFilmYear:    year,
		AttrRating:      rating,
		AttrLiked:       fmt.Sprintf("%t", liked),
		AttrRewatch:     fmt.Sprintf("%t", rewatch),
	}
	return attrs
}
