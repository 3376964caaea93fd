// Package classify implements the deterministic keyword fallback used when
// the completion service is unavailable or returns garbage.
package classify

import "strings"

// Match is a scored folder candidate. Score counts keyword hits.
type Match struct {
	Folder string
	Score  int
}

type folderKeywords struct {
	folder   string
	keywords []string
}

// defaultTable maps canonical folder names to the keyword vocabulary of the
// documents this system files (German household paperwork plus the common
// English terms). Table order breaks score ties.
var defaultTable = []folderKeywords{
	{"Rechnungen", []string{"rechnung", "invoice", "betrag", "eur", "€", "ustid", "mwst"}},
	{"Bank", []string{"iban", "bic", "überweisung", "konto", "bank", "sparkasse"}},
	{"Vertraege", []string{"vertrag", "contract", "vereinbarung", "bedingungen"}},
	{"Auto", []string{"kfz", "auto", "fahrzeug", "versicherung", "werkstatt", "tüv"}},
	{"Arbeit", []string{"arbeit", "gehalt", "firma", "unternehmen", "job", "lohn"}},
}

// Classifier scores text against a static keyword table. Identical inputs
// always yield identical ordered output.
type Classifier struct {
	table []folderKeywords
}

// NewClassifier creates a Classifier with the default keyword table.
func NewClassifier() *Classifier {
	return &Classifier{table: defaultTable}
}

// Classify scores every folder in the table that is also present in
// available, counting case-insensitive substring hits of its keywords in
// text. Folders with zero hits are excluded. The result is sorted by
// descending score; ties keep table order.
func (c *Classifier) Classify(text string, available []string) []Match {
	textLower := strings.ToLower(text)

	availableSet := make(map[string]bool, len(available))
	for _, folder := range available {
		availableSet[folder] = true
	}

	var matches []Match
	for _, entry := range c.table {
		if !availableSet[entry.folder] {
			continue
		}
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(textLower, keyword) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, Match{Folder: entry.folder, Score: score})
		}
	}

	// Insertion sort keeps the tie order stable over the table.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Score > matches[j-1].Score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	return matches
}
