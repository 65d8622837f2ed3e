package notion

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

// toNotion converts catalog properties to Notion page properties.
func toNotion(props domain.Properties) notionapi.Properties {
	out := make(notionapi.Properties, len(props))
	for key, v := range props {
		if p := toNotionProperty(v); p != nil {
			out[key] = p
		}
	}
	return out
}

func toNotionProperty(v domain.PropertyValue) notionapi.Property {
	switch v.Kind {
	case domain.KindTitle:
		return notionapi.TitleProperty{Title: richText(v.Text)}
	case domain.KindText:
		return notionapi.RichTextProperty{RichText: richText(v.Text)}
	case domain.KindNumber:
		return notionapi.NumberProperty{Number: v.Number}
	case domain.KindURL:
		return notionapi.URLProperty{URL: v.Text}
	case domain.KindSelect:
		return notionapi.SelectProperty{Select: notionapi.Option{Name: optionName(v.Text)}}
	case domain.KindMultiSelect:
		options := make([]notionapi.Option, 0, len(v.Options))
		for _, o := range v.Options {
			options = append(options, notionapi.Option{Name: optionName(o)})
		}
		return notionapi.MultiSelectProperty{MultiSelect: options}
	case domain.KindDate:
		if v.Date == nil {
			return notionapi.DateProperty{}
		}
		start := notionapi.Date(v.Date.UTC())
		return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}
	default:
		return nil
	}
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}

// optionName strips commas, which Notion rejects in option names.
func optionName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", " "))
}

// fromNotion converts decoded page properties to catalog properties.
// Property types without a catalog equivalent are dropped.
func fromNotion(props notionapi.Properties) domain.Properties {
	out := make(domain.Properties, len(props))
	for key, p := range props {
		if v, ok := fromNotionProperty(p); ok {
			out[key] = v
		}
	}
	return out
}

func fromNotionProperty(p notionapi.Property) (domain.PropertyValue, bool) {
	switch p := p.(type) {
	case *notionapi.TitleProperty:
		return domain.PropertyValue{Kind: domain.KindTitle, Text: plainText(p.Title)}, true
	case *notionapi.RichTextProperty:
		return domain.PropertyValue{Kind: domain.KindText, Text: plainText(p.RichText)}, true
	case *notionapi.NumberProperty:
		return domain.PropertyValue{Kind: domain.KindNumber, Number: p.Number}, true
	case *notionapi.URLProperty:
		return domain.PropertyValue{Kind: domain.KindURL, Text: p.URL}, true
	case *notionapi.SelectProperty:
		return domain.PropertyValue{Kind: domain.KindSelect, Text: p.Select.Name}, true
	case *notionapi.MultiSelectProperty:
		options := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			options = append(options, o.Name)
		}
		return domain.PropertyValue{Kind: domain.KindMultiSelect, Options: options}, true
	case *notionapi.DateProperty:
		v := domain.PropertyValue{Kind: domain.KindDate}
		if p.Date != nil && p.Date.Start != nil {
			t := domain.NormalizeTime(time.Time(*p.Date.Start))
			v.Date = &t
		}
		return v, true
	default:
		return domain.PropertyValue{}, false
	}
}

func plainText(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, r := range rt {
		switch {
		case r.PlainText != "":
			b.WriteString(r.PlainText)
		case r.Text != nil:
			b.WriteString(r.Text.Content)
		}
	}
	return b.String()
}
