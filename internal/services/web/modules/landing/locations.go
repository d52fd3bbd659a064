package landing

// Location is one fixed location tile. NameKey is a translation key; Count
// is filled by the aggregator.
type Location struct {
	ID       int
	NameKey  string
	ImageURL string
	Count    int
}

// DefaultLocations returns the eight locations shown on the landing page,
// in display order, with zero counts.
func DefaultLocations() []Location {
	return []Location{
		{ID: 1, NameKey: "locations.ghana", ImageURL: "https://cy-747263170.imgix.net/%E5%8A%A0%E7%BA%B3.png"},
		{ID: 2, NameKey: "locations.cambodia", ImageURL: "https://cy-747263170.imgix.net/%E6%9F%AC%E5%9F%94%E5%AF%A8.png"},
		{ID: 3, NameKey: "locations.malaysia", ImageURL: "https://images.unsplash.com/photo-1596422846543-75c6fc197f07?auto=format&fit=crop&w=800&q=80"},
		{ID: 4, NameKey: "locations.indonesia", ImageURL: "https://cy-747263170.imgix.net/%E5%8D%B0%E5%BA%A6%E5%B0%BC%E8%A5%BF%E4%BA%9A.png"},
		{ID: 5, NameKey: "locations.myanmar", ImageURL: "https://cy-747263170.imgix.net/%E7%BC%85%E7%94%B8.png"},
		{ID: 6, NameKey: "locations.dubai", ImageURL: "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&w=800&q=80"},
		{ID: 7, NameKey: "locations.oman", ImageURL: "https://cy-747263170.imgix.net/%E9%98%BF%E6%9B%BC.png"},
		{ID: 8, NameKey: "locations.philippines", ImageURL: "https://cy-747263170.imgix.net/%E8%8F%B2%E5%BE%8B%E5%AE%BE.png"},
	}
}

func copyLocations(in []Location) []Location {
	if in == nil {
		return nil
	}
	out := make([]Location, len(in))
	copy(out, in)
	return out
}
