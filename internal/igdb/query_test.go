package igdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_String(t *testing.T) {
	t.Parallel()

	got := newQuery().
		Search(`the "big" one`).
		Fields("name", "slug").
		Where("id = 7").
		Sort("total_rating", "desc").
		Limit(5).
		String()

	assert.Equal(t,
		`search "the \"big\" one"; fields name, slug; where id = 7; sort total_rating desc; limit 5;`,
		got,
	)
}

func TestWebsiteCategoryName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "official", WebsiteCategoryName(1))
	assert.Equal(t, "steam", WebsiteCategoryName(13))
	assert.Equal(t, "discord", WebsiteCategoryName(18))
	assert.Equal(t, "other", WebsiteCategoryName(7))
	assert.Equal(t, "other", WebsiteCategoryName(999))
	assert.Equal(t, "other", WebsiteCategoryName(0))
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg",
		ImageURL("co1wyy", SizeCoverBig),
	)
}
