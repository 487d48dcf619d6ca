package identify

// Record is a resolved online identity, or an explicit no-match when Series
// is empty. A Record with a non-empty Series has always been verified
// relevant to the search term that produced it.
type Record struct {
	Series    string
	RawTitle  string
	Subtitle  string
	Separator string
}

// NullRecord returns the explicit no-match record.
func NullRecord() Record {
	return Record{Separator: defaultSeparator}
}

// Found reports whether the record carries a resolved series.
func (r Record) Found() bool {
	return r.Series != ""
}

const defaultSeparator = " - "
