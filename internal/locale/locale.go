// Package locale holds the display-side lookups of the dashboard: quarter
// labels, geography and unit type names, notice texts and value labels.
// Every lookup falls back to the canonical dataset string.
package locale

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rentdash/internal/models"
)

var supported = []language.Tag{language.English, language.French}

var quarterFR = strings.NewReplacer("Q1", "T1", "Q2", "T2", "Q3", "T3", "Q4", "T4")

// Negotiator picks a Localizer from a request's language hints.
type Negotiator struct {
	matcher  language.Matcher
	fallback language.Tag
}

// NewNegotiator builds a negotiator whose default language is def
// ("en" or "fr"; anything else falls back to English).
func NewNegotiator(def string) *Negotiator {
	fallback := language.English
	if tag, err := language.Parse(def); err == nil {
		if base, _ := tag.Base(); base.String() == "fr" {
			fallback = language.French
		}
	}

	tags := []language.Tag{fallback}
	for _, t := range supported {
		if t != fallback {
			tags = append(tags, t)
		}
	}
	return &Negotiator{matcher: language.NewMatcher(tags), fallback: fallback}
}

// Pick matches the explicit choice first, then the Accept-Language header.
func (n *Negotiator) Pick(hints ...string) *Localizer {
	tag, _ := language.MatchStrings(n.matcher, hints...)
	return For(tag)
}

// Default is the Localizer used when no hint is given.
func (n *Negotiator) Default() *Localizer {
	return For(n.fallback)
}

// Localizer renders display strings in one language.
type Localizer struct {
	french  bool
	printer *message.Printer
}

// For returns the Localizer for tag, English unless tag is French.
func For(tag language.Tag) *Localizer {
	base, _ := tag.Base()
	if base.String() == "fr" {
		return &Localizer{french: true, printer: message.NewPrinter(language.French)}
	}
	return &Localizer{printer: message.NewPrinter(language.English)}
}

// Code is the two-letter language code.
func (l *Localizer) Code() string {
	if l.french {
		return "fr"
	}
	return "en"
}

// TranslateQuarter rewrites the Q1..Q4 tokens of a quarter key
// ("Q3 2021" -> "T3 2021" in French).
func (l *Localizer) TranslateQuarter(key string) string {
	if l.french {
		return quarterFR.Replace(key)
	}
	return key
}

func (l *Localizer) Geography(name string) string {
	if l.french {
		if v, ok := frenchGeography[name]; ok {
			return v
		}
	}
	return name
}

func (l *Localizer) UnitType(code string) string {
	if l.french {
		if v, ok := frenchUnitTypes[code]; ok {
			return v
		}
	}
	return code
}

// Province names are shown as they appear in the dataset.
func (l *Localizer) Province(name string) string {
	if name == "all" {
		return l.pick("All Provinces", "Toutes les provinces")
	}
	return name
}

// Amount formats a rent in whole dollars with locale digit grouping.
func (l *Localizer) Amount(v float64) string {
	n := int64(math.Round(v))
	if l.french {
		return l.printer.Sprintf("%d $", n)
	}
	return l.printer.Sprintf("$%d", n)
}

// ValueLabel is the tooltip text for one classified cell.
func (l *Localizer) ValueLabel(cv models.ClassifiedValue) string {
	if cv.Numeric == nil {
		return l.pick("No data", "Données non disponibles")
	}
	s := l.Amount(*cv.Numeric)
	if cv.Estimated {
		s += l.pick(" (estimated)", " (estimé)")
	}
	return s
}

// PointLabel is the tooltip text for a series point.
func (l *Localizer) PointLabel(p models.Point) string {
	if p.Y == nil {
		return l.pick("No data", "Données non disponibles")
	}
	s := p.Label + ": " + l.Amount(*p.Y)
	if p.Estimated {
		s += l.pick(" (estimated)", " (estimé)")
	}
	return s
}

// SeriesResponse wraps s with its title, point tooltips and notices.
func (l *Localizer) SeriesResponse(s models.Series) models.SeriesResponse {
	tips := make([]string, len(s.Points))
	for i, p := range s.Points {
		tips[i] = l.PointLabel(p)
	}
	return models.SeriesResponse{
		Language: l.Code(),
		Title:    l.SeriesTitle(),
		Series:   s,
		Tooltips: tips,
		Notices:  l.SeriesNotices(s.Annotations),
	}
}

// CrossSectionResponse wraps cs with its title, value tooltips and notices.
func (l *Localizer) CrossSectionResponse(cs models.CrossSection) models.CrossSectionResponse {
	tips := make(map[string][]string, len(cs.PerType))
	for ut, values := range cs.PerType {
		out := make([]string, len(values))
		for i, cv := range values {
			out[i] = l.ValueLabel(cv)
		}
		tips[ut] = out
	}
	return models.CrossSectionResponse{
		Language: l.Code(),
		Title:    l.CrossSectionTitle(),
		Data:     cs,
		Tooltips: tips,
		Notices:  l.CrossSectionNotices(cs.Annotations),
	}
}

// SeriesNotices maps time-series annotations to banner texts.
func (l *Localizer) SeriesNotices(a models.Annotations) models.Notices {
	var n models.Notices
	if a.AnyMissing {
		n.Missing = l.pick(
			"Note: The line has gaps because of unavailable data (marked '..').",
			"Remarque : La ligne contient des lacunes en raison de données indisponibles (marquées par '..').")
	}
	if a.AnyEstimated {
		n.Estimated = l.pick(
			"⚠️ Some data points are estimated and should be used with caution (marked 'E').",
			"⚠️ Certains points de données sont estimés et doivent être utilisés avec prudence (marqués par 'E').")
	}
	return n
}

// CrossSectionNotices maps comparison annotations to banner texts.
func (l *Localizer) CrossSectionNotices(a models.Annotations) models.Notices {
	var n models.Notices
	if a.AnyMissing {
		n.Missing = l.pick(
			"Note: Some bars have missing data marked as '..'.",
			"Remarque : Certaines barres n'ont pas de données (marquées par '..').")
	}
	if a.AnyEstimated {
		n.Estimated = l.pick(
			"⚠️ Some bars have estimated data (marked with 'E'). Use with caution.",
			"⚠️ Certaines barres contiennent des données estimées (marquées par 'E'). À utiliser avec prudence.")
	}
	return n
}

func (l *Localizer) SeriesTitle() string {
	return l.pick("Average rent by quarter in each area", "Prix moyen des loyers par trimestre dans chaque région")
}

func (l *Localizer) CrossSectionTitle() string {
	return l.pick("Comparison of rent by Geography", "Comparaison des loyers par région")
}

func (l *Localizer) SeriesName() string { return l.pick("Rent Price ($)", "Prix du Loyer ($)") }
func (l *Localizer) SeriesYAxis() string { return l.pick("Average asking rent ($)", "Loyer moyen demandé ($)") }
func (l *Localizer) SeriesXAxis() string { return l.pick("Reference period (quarter)", "Période de référence (trimestre)") }
func (l *Localizer) AreaAxis() string { return l.pick("Area", "Région") }
func (l *Localizer) AmountAxis() string { return l.pick("Rent Price ($)", "Prix du loyer ($)") }

func (l *Localizer) EstimatedLegend() string {
	return l.pick("Estimated Data (Use Caution)", "Données estimées (à utiliser avec prudence)")
}

func (l *Localizer) pick(en, fr string) string {
	if l.french {
		return fr
	}
	return en
}
