package catalog

// SortKey names one of the catalog's sort orders.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortPopular   SortKey = "popular"
)

// PopularMetric is the column the "popular" sort leads with. Review volume
// was chosen over units sold ("sold"); changing it is a deliberate product
// decision and the sort tests pin the current choice.
const PopularMetric = "review_count"

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortFeatured, SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortRating, SortPopular:
		return SortKey(s), true
	default:
		return "", false
	}
}

// OrderBy maps the sort key to an ORDER BY clause. Every ordering ends in an
// id tie-break so pagination stays stable when leading fields tie. Nullable
// columns sort NULLS LAST so an absent value ranks like its zero default.
func (k SortKey) OrderBy() string {
	switch k {
	case SortNewest:
		return "created_at DESC, id DESC"
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortPriceLow:
		return "price ASC, id ASC"
	case SortPriceHigh:
		return "price DESC, id DESC"
	case SortRating:
		return "rating DESC NULLS LAST, review_count DESC NULLS LAST, id DESC"
	case SortPopular:
		return PopularMetric + " DESC NULLS LAST, rating DESC NULLS LAST, id DESC"
	default:
		return "is_featured DESC NULLS LAST, rating DESC NULLS LAST, id DESC"
	}
}
