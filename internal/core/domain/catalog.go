package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTextLength is the hard limit for free-text property values.
const MaxTextLength = 2000

// MaxTopicOptions limits how many topic tags are written per record.
const MaxTopicOptions = 10

// truncationSuffix marks a truncated text value.
const truncationSuffix = "..."

// Catalog property keys. Each Repository attribute maps to exactly one key.
const (
	PropName          = "Name"
	PropFullName      = "Full Name"
	PropDescription   = "Description"
	PropStars         = "Stars"
	PropForks         = "Forks"
	PropOpenIssues    = "Open Issues"
	PropHTMLURL       = "GitHub URL"
	PropHomepage      = "Homepage"
	PropLanguage      = "Language"
	PropLicense       = "License"
	PropEcosystem     = "Ecosystem"
	PropToolCategory  = "Tool Category"
	PropTopics        = "Topics"
	PropCreatedAt     = "Created At"
	PropUpdatedAt     = "Updated At"
	PropFetchedAt     = "Fetched At"
	PropPreviousStars = "Previous Stars"
	PropPreviousForks = "Previous Forks"
)

// PropertyKind is the type of a catalog property.
type PropertyKind string

// Supported property kinds.
const (
	KindTitle       PropertyKind = "title"
	KindText        PropertyKind = "text"
	KindNumber      PropertyKind = "number"
	KindURL         PropertyKind = "url"
	KindDate        PropertyKind = "date"
	KindSelect      PropertyKind = "select"
	KindMultiSelect PropertyKind = "multi_select"
)

// PropertyValue is one typed catalog value. Only the field matching Kind is set.
type PropertyValue struct {
	Kind    PropertyKind `json:"kind"`
	Text    string       `json:"text,omitempty"`
	Number  float64      `json:"number,omitempty"`
	Date    *time.Time   `json:"date,omitempty"`
	Options []string     `json:"options,omitempty"`
}

// Title builds a title value.
func Title(s string) PropertyValue { return PropertyValue{Kind: KindTitle, Text: TruncateText(s)} }

// Text builds a free-text value, truncated to MaxTextLength.
func Text(s string) PropertyValue { return PropertyValue{Kind: KindText, Text: TruncateText(s)} }

// Number builds a numeric value.
func Number(n int) PropertyValue { return PropertyValue{Kind: KindNumber, Number: float64(n)} }

// URL builds a URL value. URLs are never truncated; callers drop values
// longer than MaxTextLength instead (see FitsText).
func URL(s string) PropertyValue { return PropertyValue{Kind: KindURL, Text: s} }

// Select builds a single-select value.
func Select(s string) PropertyValue { return PropertyValue{Kind: KindSelect, Text: s} }

// MultiSelect builds a multi-select value.
func MultiSelect(options []string) PropertyValue {
	return PropertyValue{Kind: KindMultiSelect, Options: append([]string(nil), options...)}
}

// Date builds a date value normalised to UTC.
func Date(t time.Time) PropertyValue {
	utc := NormalizeTime(t)
	return PropertyValue{Kind: KindDate, Date: &utc}
}

// Properties is the flat, typed record exchanged with catalog stores.
type Properties map[string]PropertyValue

// Text returns the text of a title, text, url or select property.
func (p Properties) Text(key string) string {
	return p[key].Text
}

// Number returns the value of a number property, 0 when absent.
func (p Properties) Number(key string) int {
	return int(p[key].Number)
}

// Date returns the value of a date property, nil when absent.
func (p Properties) Date(key string) *time.Time {
	v, ok := p[key]
	if !ok || v.Date == nil {
		return nil
	}
	t := NormalizeTime(*v.Date)
	return &t
}

// Clone returns a deep copy of the properties.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		if v.Date != nil {
			d := *v.Date
			v.Date = &d
		}
		v.Options = append([]string(nil), v.Options...)
		out[k] = v
	}
	return out
}

// TruncateText enforces MaxTextLength on a free-text value, counting runes.
func TruncateText(s string) string {
	if FitsText(s) {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTextLength-len(truncationSuffix)]) + truncationSuffix
}

// FitsText reports whether s is within MaxTextLength runes.
func FitsText(s string) bool {
	return utf8.RuneCountInString(s) <= MaxTextLength
}

// BuildProperties maps a repository to catalog properties.
// previous is the index entry being overwritten; it is nil on create, and
// when set its metrics are recorded as the trend fields.
func BuildProperties(repo Repository, previous *IndexEntry) Properties {
	props := Properties{
		PropName:        Title(repo.Name),
		PropFullName:    Text(repo.FullName),
		PropDescription: Text(repo.Description),
		PropStars:       Number(repo.Stars),
		PropForks:       Number(repo.Forks),
		PropOpenIssues:  Number(repo.OpenIssues),
		PropHTMLURL:     URL(repo.HTMLURL),
		PropEcosystem:   Select(repo.Ecosystem.DisplayName()),
		PropCreatedAt:   Date(repo.CreatedAt),
		PropUpdatedAt:   Date(repo.UpdatedAt),
		PropFetchedAt:   Date(repo.FetchedAt),
	}

	if repo.Language != "" {
		props[PropLanguage] = Select(repo.Language)
	}
	if repo.License != "" {
		props[PropLicense] = Select(repo.License)
	}
	if repo.Homepage != "" && FitsText(repo.Homepage) {
		props[PropHomepage] = URL(repo.Homepage)
	}
	if len(repo.ToolCategories) > 0 {
		props[PropToolCategory] = MultiSelect(repo.ToolCategories)
	}
	if len(repo.Topics) > 0 {
		topics := repo.Topics
		if len(topics) > MaxTopicOptions {
			topics = topics[:MaxTopicOptions]
		}
		props[PropTopics] = MultiSelect(topics)
	}

	if previous != nil {
		props[PropPreviousStars] = Number(previous.Stars)
		props[PropPreviousForks] = Number(previous.Forks)
	}

	return props
}

// CatalogRecord is one persisted record as returned by a store listing.
type CatalogRecord struct {
	ID         string
	Properties Properties
}

// CatalogPage is one page of a store listing.
type CatalogPage struct {
	Records    []CatalogRecord
	NextCursor string
	HasMore    bool
}

// IndexEntry is the sync engine's view of one persisted record.
type IndexEntry struct {
	// RecordID is the store's identifier for the record.
	RecordID string

	// UpdatedAt is the last known upstream update time; nil when the
	// record has no stored timestamp.
	UpdatedAt *time.Time

	// Forks is the last known primary ranking metric.
	Forks int

	// Stars is the last known secondary metric.
	Stars int
}

// Index maps identity to the persisted record's entry.
type Index map[string]IndexEntry

// IndexEntryFromRecord extracts the identity and entry of a stored record.
// Records without an identity are reported with ok=false and are ignored.
func IndexEntryFromRecord(rec CatalogRecord) (fullName string, entry IndexEntry, ok bool) {
	fullName = rec.Properties.Text(PropFullName)
	if fullName == "" {
		return "", IndexEntry{}, false
	}
	return fullName, IndexEntry{
		RecordID:  rec.ID,
		UpdatedAt: rec.Properties.Date(PropUpdatedAt),
		Forks:     rec.Properties.Number(PropForks),
		Stars:     rec.Properties.Number(PropStars),
	}, true
}
