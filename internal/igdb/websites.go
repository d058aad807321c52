package igdb

// websiteCategories maps IGDB's numeric website category codes to names.
var websiteCategories = map[int]string{
	1:  "official",
	2:  "wikia",
	3:  "wikipedia",
	4:  "facebook",
	5:  "twitter",
	6:  "twitch",
	8:  "instagram",
	9:  "youtube",
	10: "iphone",
	11: "ipad",
	12: "android",
	13: "steam",
	14: "reddit",
	15: "itch",
	16: "epicgames",
	17: "gog",
	18: "discord",
}

// WebsiteCategoryName returns the name for an IGDB website category code.
// Unrecognized codes map to "other".
func WebsiteCategoryName(code int) string {
	if name, ok := websiteCategories[code]; ok {
		return name
	}
	return "other"
}

// Image size tags understood by the IGDB image CDN.
const (
	SizeCoverSmall    = "cover_small"
	SizeCoverBig      = "cover_big"
	SizeScreenshotMed = "screenshot_med"
	SizeScreenshotBig = "screenshot_big"
	Size720p          = "720p"
	Size1080p         = "1080p"
)

// ImageURL returns the CDN URL for an IGDB image id at the given size tag.
func ImageURL(imageID, size string) string {
	return "https://images.igdb.com/igdb/image/upload/t_" + size + "/" + imageID + ".jpg"
}
