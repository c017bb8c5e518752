package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PersonEntry is one person as the Directory Service lists it, annotated with
// the company and organization it was nested under.
type PersonEntry struct {
	FirstName    string   `json:"firstname"`
	LastName     string   `json:"lastname"`
	PersonID     string   `json:"personid"`
	ConcernID    string   `json:"concerned"`
	PhoneNumbers []string `json:"phoneNumbers"`

	Company      string `json:"-"`
	Organization string `json:"-"`
}

// FullName returns the display name used for matching.
func (p PersonEntry) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PersonRecord is the resolved identity handed to the scheduling lookup and
// echoed in the final response.
type PersonRecord struct {
	PersonID    string `json:"personId"`
	ConcernID   string `json:"concernId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// flattenDataset decodes the three-level company -> organization -> people
// nesting into a flat slice. It walks the token stream instead of decoding
// into maps: the first matching person in source order wins a lookup, and Go
// map iteration would destroy that ordering.
func flattenDataset(data []byte) ([]PersonEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("dataset root: %w", err)
	}

	var entries []PersonEntry
	for dec.More() {
		company, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("company %q: %w", company, err)
		}
		for dec.More() {
			org, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			if err := expectDelim(dec, '['); err != nil {
				return nil, fmt.Errorf("organization %q: %w", org, err)
			}
			for dec.More() {
				var entry PersonEntry
				if err := dec.Decode(&entry); err != nil {
					return nil, fmt.Errorf("person entry in %q/%q: %w", company, org, err)
				}
				entry.Company = company
				entry.Organization = org
				entries = append(entries, entry)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
