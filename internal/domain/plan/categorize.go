package plan

import "sort"

// Section is one of the five display groupings of a plan.
type Section string

const (
	SectionSkincare  Section = "Skincare"
	SectionNow       Section = "Now"
	SectionNextVisit Section = "Add next visit"
	SectionWishlist  Section = "Wishlist"
	SectionCompleted Section = "Completed"
)

// sectionOrder is the fixed rendering order.
var sectionOrder = []Section{
	SectionSkincare, SectionNow, SectionNextVisit, SectionWishlist, SectionCompleted,
}

// ValidSection reports whether s names a known section.
func ValidSection(s Section) bool {
	for _, sec := range sectionOrder {
		if sec == s {
			return true
		}
	}
	return false
}

// SectionGroup is one non-empty bucket of the categorized plan.
type SectionGroup struct {
	Section Section `json:"section"`
	Items   []Item  `json:"items"`
}

// SectionOf returns the section an item displays under. Skincare items
// always land in the Skincare section no matter what their timeline says;
// everything else maps by timeline, with unrecognized or empty values
// defaulting to Wishlist.
func SectionOf(it Item) Section {
	if it.IsSkincare() {
		return SectionSkincare
	}
	switch it.Timeline {
	case TimelineNow:
		return SectionNow
	case TimelineNextVisit:
		return SectionNextVisit
	case TimelineCompleted:
		return SectionCompleted
	default:
		return SectionWishlist
	}
}

// Categorize partitions a plan into its ordered section groups. It is a
// pure function of the item list: no state is kept between calls, empty
// buckets are omitted, the Skincare bucket sorts by product and every other
// bucket by treatment (case-sensitive lexical order).
func Categorize(items []Item) []SectionGroup {
	buckets := make(map[Section][]Item, len(sectionOrder))
	for _, it := range items {
		sec := SectionOf(it)
		buckets[sec] = append(buckets[sec], it)
	}

	var groups []SectionGroup
	for _, sec := range sectionOrder {
		bucket := buckets[sec]
		if len(bucket) == 0 {
			continue
		}
		if sec == SectionSkincare {
			sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Product < bucket[j].Product })
		} else {
			sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Treatment < bucket[j].Treatment })
		}
		groups = append(groups, SectionGroup{Section: sec, Items: bucket})
	}
	return groups
}
