// Package labeltree maps label subtypes onto their parent categories and builds
// the rows a label hierarchy is stored as. It does no I/O
package labeltree

// Category is the parent table a label belongs to
type Category string

// Categories
const (
	Commercial  Category = "LabelCommercial"
	Content     Category = "LabelContent"
	Disruptions Category = "LabelDisruptions"
)

// Subtype is a leaf label type as exposed by the API
type Subtype string

// Subtypes
const (
	Ad               Subtype = "ad"
	SpotOutsideBreak Subtype = "spotOutsideBreak"
	Promo            Subtype = "promo"
	Program          Subtype = "program"
	Movie            Subtype = "movie"
	Song             Subtype = "song"
	Sports           Subtype = "sports"
	News             Subtype = "news"
	NoVideo          Subtype = "noVideo"
	StandBy          Subtype = "standBy"
)

// children lists each category's subtypes in inspection order
var children = map[Category][]Subtype{
	Commercial:  {Ad, SpotOutsideBreak, Promo},
	Content:     {Program, Movie, Song, Sports, News},
	Disruptions: {NoVideo, StandBy},
}

// categories in fixed order
var categories = []Category{Commercial, Content, Disruptions}

var parentOf = func() map[Subtype]Category {
	m := map[Subtype]Category{}
	for c, subs := range children {
		for _, s := range subs {
			m[s] = c
		}
	}
	return m
}()

// All returns every subtype in inspection order
func All() []Subtype {
	out := make([]Subtype, 0, len(parentOf))
	for _, c := range categories {
		out = append(out, children[c]...)
	}
	return out
}

// Children returns the subtypes of c in inspection order
func Children(c Category) []Subtype { return append([]Subtype(nil), children[c]...) }

// ClassifyParent returns the category owning s
func ClassifyParent(s Subtype) (Category, error) {
	c, ok := parentOf[s]
	if !ok {
		return "", InvalidLabelType(string(s))
	}
	return c, nil
}

// Valid reports whether s is a known subtype
func (s Subtype) Valid() bool {
	_, ok := parentOf[s]
	return ok
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, ok := children[c]
	return ok
}

var tables = map[Subtype]string{
	Ad:               "label_ads",
	SpotOutsideBreak: "label_spots_outside_break",
	Promo:            "label_promos",
	Program:          "label_programs",
	Movie:            "label_movies",
	Song:             "label_songs",
	Sports:           "label_sports",
	News:             "label_news",
	NoVideo:          "label_no_videos",
	StandBy:          "label_standbys",
}

var parentTables = map[Category]string{
	Commercial:  "label_commercials",
	Content:     "label_contents",
	Disruptions: "label_disruptions",
}

var discriminators = map[Category]string{
	Commercial:  "commercial_type",
	Content:     "content_type",
	Disruptions: "disruption_type",
}

// Table returns the subtype table name; "" for unknown subtypes
func Table(s Subtype) string { return tables[s] }

// ParentTable returns the category table name; "" for unknown categories
func ParentTable(c Category) string { return parentTables[c] }

// Discriminator returns the parent column naming the subtype
func Discriminator(c Category) string { return discriminators[c] }
