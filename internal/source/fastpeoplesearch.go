package source

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/model"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	digitsRe   = regexp.MustCompile(`\d+`)
)

// FastPeopleSearch scrapes fastpeoplesearch.com public-record listings.
type FastPeopleSearch struct {
	fetch   *Fetcher
	baseURL string
}

// NewFastPeopleSearch creates the FastPeopleSearch adapter.
func NewFastPeopleSearch(f *Fetcher) *FastPeopleSearch {
	return &FastPeopleSearch{
		fetch:   f,
		baseURL: "https://www.fastpeoplesearch.com",
	}
}

func (s *FastPeopleSearch) Name() string     { return "fastpeoplesearch" }
func (s *FastPeopleSearch) Category() string { return CategoryPeople }

func (s *FastPeopleSearch) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldName, model.FieldPhone, model.FieldAddress}
}

func (s *FastPeopleSearch) Search(ctx context.Context, query model.Query) model.SourceResult {
	var records []model.Record
	var errs []string

	collect := func(recs []model.Record, err error) {
		if err != nil {
			zap.L().Debug("fastpeoplesearch: lookup failed", zap.Error(err))
			errs = append(errs, err.Error())
			return
		}
		records = append(records, recs...)
	}

	if query.Name != "" {
		collect(s.byName(ctx, query.Name, query.Location))
	}
	if query.Phone != "" {
		collect(s.byPhone(ctx, query.Phone))
	}
	if query.Address != "" {
		collect(s.byAddress(ctx, query.Address))
	}

	if len(records) == 0 && len(errs) > 0 {
		return model.Failure(s.Name(), eris.New(strings.Join(errs, "; ")))
	}
	return model.SourceResult{
		Source:  s.Name(),
		Records: model.DedupeRecords(records),
	}
}

func (s *FastPeopleSearch) byName(ctx context.Context, name, location string) ([]model.Record, error) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return nil, nil
	}

	path := "/name/" + parts[0] + "-" + strings.Join(parts[1:], "-")
	if location != "" {
		path += "_" + strings.ReplaceAll(strings.ReplaceAll(location, ",", ""), " ", "-")
	}

	doc, err := s.fetch.Document(ctx, s.baseURL+path)
	if err != nil {
		return nil, eris.Wrap(err, "fastpeoplesearch: name lookup")
	}
	return parsePersonCards(doc), nil
}

func (s *FastPeopleSearch) byPhone(ctx context.Context, phone string) ([]model.Record, error) {
	clean := nonDigitRe.ReplaceAllString(phone, "")
	doc, err := s.fetch.Document(ctx, s.baseURL+"/phone/"+clean)
	if err != nil {
		return nil, eris.Wrap(err, "fastpeoplesearch: phone lookup")
	}
	return parsePersonCards(doc), nil
}

func (s *FastPeopleSearch) byAddress(ctx context.Context, address string) ([]model.Record, error) {
	formatted := strings.ReplaceAll(strings.ReplaceAll(address, ",", ""), " ", "-")
	doc, err := s.fetch.Document(ctx, s.baseURL+"/address/"+formatted)
	if err != nil {
		return nil, eris.Wrap(err, "fastpeoplesearch: address lookup")
	}
	return parsePersonCards(doc), nil
}

// parsePersonCards extracts person records from a listing page. The card
// markup is shared by several people-search sites.
func parsePersonCards(doc *goquery.Document) []model.Record {
	var records []model.Record

	doc.Find("div.card").Each(func(_ int, card *goquery.Selection) {
		rec := model.Record{
			Name: firstText(card, ".card-title, .name"),
			Age:  digitsRe.FindString(firstText(card, ".age, .birth-info")),
		}

		card.Find(".address-line, .address, .location").Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			addrType := "previous"
			if strings.Contains(sel.AttrOr("class", ""), "current") {
				addrType = "current"
			}
			rec.Addresses = append(rec.Addresses, model.Address{Full: text, Type: addrType})
		})

		card.Find(".phone, .phone-number").Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			rec.Phones = append(rec.Phones, model.Phone{
				Number: text,
				Type:   phoneType(sel.AttrOr("class", "")),
			})
		})

		card.Find(".relative, .family-member").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				rec.Relatives = append(rec.Relatives, model.Relative{
					Name:         text,
					Relationship: "possible relative",
				})
			}
		})

		card.Find(".associate, .known-associate").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				rec.Associates = append(rec.Associates, text)
			}
		})

		card.Find(".email, .email-address").Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if strings.Contains(text, "@") {
				rec.Emails = append(rec.Emails, text)
			}
		})

		if rec.Name != "" {
			records = append(records, rec)
		}
	})

	return records
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

func phoneType(class string) string {
	class = strings.ToLower(class)
	switch {
	case strings.Contains(class, "mobile"):
		return "mobile"
	case strings.Contains(class, "landline"):
		return "landline"
	case strings.Contains(class, "voip"):
		return "voip"
	}
	return "unknown"
}
