package domain

// ListQuery carries caller-supplied catalog filters for document listings.
// Zero values mean "no filter". Catalog filters only narrow results; the
// access filter applied by repositories decides what is visible at all.
type ListQuery struct {
	Text     string
	Category string
	Year     int
}
